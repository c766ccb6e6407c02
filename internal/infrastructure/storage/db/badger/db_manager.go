package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keygen/internal/core/domain"
	"github.com/tdex-network/keygen/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const (
	addressListDir = "addresses"
	gcInterval     = 30 * time.Minute
	gcDiscardRatio = 0.5
)

// RepoManager holds the badgerhold stores of the keygen repositories.
type RepoManager struct {
	store                 *badgerhold.Store
	addressListRepository domain.AddressListRepository
	stopGC                chan struct{}
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger. An empty data dir makes
// the store live in memory.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, addressListDir)
	}

	stopGC := make(chan struct{})
	store, err := createDb(dbDir, logger, stopGC)
	if err != nil {
		return nil, fmt.Errorf("opening address db: %w", err)
	}

	return &RepoManager{
		store:                 store,
		addressListRepository: NewAddressListRepositoryImpl(store),
		stopGC:                stopGC,
	}, nil
}

func (d *RepoManager) AddressListRepository() domain.AddressListRepository {
	return d.addressListRepository
}

func (d *RepoManager) Close() {
	close(d.stopGC)
	d.store.Close()
}

func createDb(
	dbDir string, logger badger.Logger, stopGC chan struct{},
) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(gcInterval)

		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := db.Badger().RunValueLogGC(gcDiscardRatio); err != nil &&
						err != badger.ErrNoRewrite {
						log.Error(err)
					}
				case <-stopGC:
					return
				}
			}
		}()
	}

	return db, nil
}
