package application

import (
	"fmt"
	"runtime"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tdex-network/keygen/internal/core/ports"
	dbbadger "github.com/tdex-network/keygen/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/keygen/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/keygen/pkg/addrgen"
)

const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBInMemory: {},
	}
)

type Config struct {
	DBType   string
	DBConfig interface{}

	Network            *chaincfg.Params
	NoAccelerator      bool
	AcceleratorPath    string
	AcceleratorTimeout time.Duration
	// CheckpointInterval set to 0 disables the checkpoint cache.
	CheckpointInterval uint32
	MaxCheckpoints     int64
	Concurrency        int

	repo        ports.RepoManager
	checkpoints *addrgen.CheckpointCache
	keygen      KeygenService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedDBType, c.DBType)
	}
	if c.Network == nil {
		return ErrNullNetwork
	}
	if c.Concurrency < 0 {
		return ErrInvalidConcurrency
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.checkpointCache(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	repo, _ := c.repoManager()
	return repo
}

func (c *Config) KeygenService() KeygenService {
	svc, _ := c.keygenService()
	return svc
}

// Close releases the resources held by the repositories and the cache.
func (c *Config) Close() {
	if c.repo != nil {
		c.repo.Close()
	}
	if c.checkpoints != nil {
		c.checkpoints.Close()
	}
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			datadir, _ := c.DBConfig.(string)
			repoManager, err := dbbadger.NewRepoManager(datadir, nil)
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = inmemory.NewRepoManager()
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedDBType, c.DBType)
		}
	}
	return c.repo, nil
}

func (c *Config) checkpointCache() (*addrgen.CheckpointCache, error) {
	if c.checkpoints == nil && c.CheckpointInterval > 0 {
		maxCheckpoints := c.MaxCheckpoints
		if maxCheckpoints <= 0 {
			maxCheckpoints = addrgen.DefaultMaxCheckpoints
		}
		cache, err := addrgen.NewCheckpointCache(addrgen.CheckpointOpts{
			Interval:       c.CheckpointInterval,
			MaxCheckpoints: maxCheckpoints,
		})
		if err != nil {
			return nil, err
		}
		c.checkpoints = cache
	}
	return c.checkpoints, nil
}

func (c *Config) keygenService() (KeygenService, error) {
	if c.keygen == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		checkpoints, err := c.checkpointCache()
		if err != nil {
			return nil, err
		}
		concurrency := c.Concurrency
		if concurrency <= 0 {
			concurrency = runtime.NumCPU()
		}

		c.keygen = NewKeygenService(KeygenServiceOpts{
			Repo:        repo,
			Checkpoints: checkpoints,
			Network:     c.Network,
			Concurrency: concurrency,
			Converter: addrgen.SelectOpts{
				Network:            c.Network,
				NoAccelerator:      c.NoAccelerator,
				AcceleratorPath:    c.AcceleratorPath,
				AcceleratorTimeout: c.AcceleratorTimeout,
			},
		})
	}
	return c.keygen, nil
}
