package application

import (
	"context"
	"errors"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keygen/internal/core/domain"
	"github.com/tdex-network/keygen/internal/core/ports"
	"github.com/tdex-network/keygen/pkg/addrgen"
	"github.com/tdex-network/keygen/pkg/stats"
	"golang.org/x/sync/errgroup"
)

// KeygenService generates the key/address datasets of a seed and keeps track
// of the address lists generated so far.
type KeygenService interface {
	GenerateAddresses(
		ctx context.Context, req GenerateRequest,
	) (*GenerateResult, error)
	GetAddressLists(
		ctx context.Context, seedChecksum string,
	) ([]domain.AddressList, error)
}

type GenerateRequest struct {
	Seed       []byte
	Ranges     []addrgen.IndexRange
	Compressed bool
	// Persist stores the addresses of every range not yet in the repository.
	Persist bool
	// OnRecord is never called concurrently.
	OnRecord func(addrgen.KeyRecord)
}

type GenerateResult struct {
	RunID     string
	Converter string
	// Datasets are sorted like the request's ranges.
	Datasets []*addrgen.AddressDataset
}

type KeygenServiceOpts struct {
	Repo        ports.RepoManager
	Checkpoints *addrgen.CheckpointCache
	Network     *chaincfg.Params
	Concurrency int
	Converter   addrgen.SelectOpts
}

type keygenService struct {
	repo        ports.RepoManager
	checkpoints *addrgen.CheckpointCache
	network     *chaincfg.Params
	concurrency int
	selectOpts  addrgen.SelectOpts
}

func NewKeygenService(opts KeygenServiceOpts) KeygenService {
	selectOpts := opts.Converter
	if selectOpts.Network == nil {
		selectOpts.Network = opts.Network
	}
	if selectOpts.OnFallback == nil {
		selectOpts.OnFallback = func(error) {
			stats.AcceleratorFallbacks.Inc()
		}
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &keygenService{
		repo:        opts.Repo,
		checkpoints: opts.Checkpoints,
		network:     opts.Network,
		concurrency: concurrency,
		selectOpts:  selectOpts,
	}
}

func (s *keygenService) GenerateAddresses(
	ctx context.Context, req GenerateRequest,
) (*GenerateResult, error) {
	if len(req.Ranges) <= 0 {
		return nil, ErrMissingIndexRanges
	}
	if len(req.Seed) <= 0 {
		return nil, addrgen.ErrInvalidSeed
	}

	runID := uuid.New().String()
	converter := addrgen.SelectConverter(s.selectOpts)
	logger := log.WithFields(log.Fields{
		"run_id":        runID,
		"seed_checksum": addrgen.SeedChecksum(req.Seed),
		"ranges":        addrgen.FormatIndexList(req.Ranges),
		"converter":     converter.Name(),
	})
	logger.Debug("generation started")

	counter := stats.KeysGenerated.WithLabelValues(converter.Name())
	var lock sync.Mutex
	onRecord := func(r addrgen.KeyRecord) {
		counter.Inc()
		if req.OnRecord == nil {
			return
		}
		lock.Lock()
		defer lock.Unlock()
		req.OnRecord(r)
	}

	datasets := make([]*addrgen.AddressDataset, len(req.Ranges))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, r := range req.Ranges {
		i, r := i, r
		g.Go(func() error {
			ds, err := addrgen.Generate(gctx, addrgen.GeneratorOpts{
				Seed:        req.Seed,
				Start:       r.Start,
				End:         r.End,
				Compressed:  req.Compressed,
				Network:     s.network,
				Converter:   converter,
				Checkpoints: s.checkpoints,
			}, onRecord)
			if err != nil {
				return err
			}
			datasets[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.WithError(err).Warn("generation failed")
		return nil, err
	}

	if err := s.checkAddressLists(
		ctx, datasets, converter.Name(), runID, req.Persist,
	); err != nil {
		logger.WithError(err).Warn("address list check failed")
		return nil, err
	}

	logger.Debug("generation completed")
	return &GenerateResult{
		RunID:     runID,
		Converter: converter.Name(),
		Datasets:  datasets,
	}, nil
}

func (s *keygenService) GetAddressLists(
	ctx context.Context, seedChecksum string,
) ([]domain.AddressList, error) {
	repo := s.repo.AddressListRepository()
	if seedChecksum == "" {
		return repo.GetAllAddressLists(ctx)
	}
	return repo.GetAddressListsBySeed(ctx, seedChecksum)
}

// checkAddressLists compares every dataset with its stored address list, if
// any, and stores the missing ones when persist is set.
func (s *keygenService) checkAddressLists(
	ctx context.Context, datasets []*addrgen.AddressDataset,
	converter, runID string, persist bool,
) error {
	repo := s.repo.AddressListRepository()
	for _, ds := range datasets {
		id := domain.MakeAddressListID(
			ds.SeedChecksum, ds.Start, ds.End, ds.Network, ds.Compressed,
		)
		stored, err := repo.GetAddressList(ctx, id)
		if err != nil && !errors.Is(err, domain.ErrAddressListNotFound) {
			return err
		}
		if stored != nil {
			if err := stored.Verify(ds); err != nil {
				return err
			}
			log.Debugf("address list %s verified", id)
			continue
		}
		if !persist {
			continue
		}

		list, err := domain.NewAddressList(ds, converter, runID)
		if err != nil {
			return err
		}
		if err := repo.AddAddressList(ctx, list); err != nil {
			return err
		}
		log.Debugf("address list %s stored", id)
	}
	return nil
}
