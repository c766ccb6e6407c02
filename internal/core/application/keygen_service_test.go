package application_test

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/keygen/internal/core/application"
	"github.com/tdex-network/keygen/internal/core/domain"
	"github.com/tdex-network/keygen/pkg/addrgen"
)

var (
	ctx      = context.Background()
	testSeed = func() []byte {
		seed := sha256.Sum256([]byte("test"))
		return seed[:]
	}()
	mainnetAddresses = []string{
		"1B6cSoyfTL6jSYvpDSG8buvFHoRoFcRDBU",
		"1JhXmGASsV2HmSXwQy7bc7d9dDWqjhw5Pu",
		"14PRGBHpkhYY2Pvy1oZF2STkK3jVPAqu1q",
	}
)

func newTestConfig(t *testing.T) *application.Config {
	cfg := &application.Config{
		DBType:             application.DBInMemory,
		Network:            &chaincfg.MainNetParams,
		NoAccelerator:      true,
		CheckpointInterval: 2,
		Concurrency:        2,
	}
	require.NoError(t, cfg.Validate())
	t.Cleanup(cfg.Close)
	return cfg
}

func TestGenerateAddresses(t *testing.T) {
	cfg := newTestConfig(t)
	svc := cfg.KeygenService()

	var indexes []uint32
	res, err := svc.GenerateAddresses(ctx, application.GenerateRequest{
		Seed:   testSeed,
		Ranges: []addrgen.IndexRange{{Start: 1, End: 1}, {Start: 2, End: 3}},
		OnRecord: func(r addrgen.KeyRecord) {
			indexes = append(indexes, r.Index)
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)
	require.Equal(t, "secp256k1", res.Converter)
	require.Len(t, res.Datasets, 2)
	require.ElementsMatch(t, []uint32{1, 2, 3}, indexes)

	got := append(res.Datasets[0].Addresses(), res.Datasets[1].Addresses()...)
	require.Equal(t, mainnetAddresses, got)

	lists, err := svc.GetAddressLists(ctx, "")
	require.NoError(t, err)
	require.Empty(t, lists)
}

func TestGenerateAddressesPersist(t *testing.T) {
	cfg := newTestConfig(t)
	svc := cfg.KeygenService()
	req := application.GenerateRequest{
		Seed:    testSeed,
		Ranges:  []addrgen.IndexRange{{Start: 1, End: 3}},
		Persist: true,
	}

	res, err := svc.GenerateAddresses(ctx, req)
	require.NoError(t, err)

	lists, err := svc.GetAddressLists(ctx, "BE2EF497")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Equal(t, "BE2EF497[1-3]:mainnet", lists[0].ID)
	require.Equal(t, mainnetAddresses, lists[0].Addresses)
	require.Equal(t, res.RunID, lists[0].RunID)

	// Regenerating a stored range verifies it and leaves the store untouched.
	again, err := svc.GenerateAddresses(ctx, req)
	require.NoError(t, err)
	require.NotEqual(t, res.RunID, again.RunID)

	lists, err = svc.GetAddressLists(ctx, "")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Equal(t, res.RunID, lists[0].RunID)

	lists, err = svc.GetAddressLists(ctx, "00000000")
	require.NoError(t, err)
	require.Empty(t, lists)
}

func TestGenerateAddressesMismatch(t *testing.T) {
	cfg := newTestConfig(t)
	repo := cfg.RepoManager().AddressListRepository()

	tampered := append([]string{}, mainnetAddresses...)
	tampered[1] = "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm"
	err := repo.AddAddressList(ctx, &domain.AddressList{
		ID:           "BE2EF497[1-3]:mainnet",
		SeedChecksum: "BE2EF497",
		Start:        1,
		End:          3,
		Network:      "mainnet",
		Addresses:    tampered,
	})
	require.NoError(t, err)

	_, err = cfg.KeygenService().GenerateAddresses(ctx, application.GenerateRequest{
		Seed:   testSeed,
		Ranges: []addrgen.IndexRange{{Start: 1, End: 3}},
	})
	require.ErrorIs(t, err, domain.ErrAddressMismatch)

	// The compressed list of the same range is a different one.
	_, err = cfg.KeygenService().GenerateAddresses(ctx, application.GenerateRequest{
		Seed:       testSeed,
		Ranges:     []addrgen.IndexRange{{Start: 1, End: 3}},
		Compressed: true,
	})
	require.NoError(t, err)
}

func TestFailingGenerateAddresses(t *testing.T) {
	svc := newTestConfig(t).KeygenService()

	tests := []struct {
		name        string
		req         application.GenerateRequest
		expectedErr error
	}{
		{
			name:        "missing ranges",
			req:         application.GenerateRequest{Seed: testSeed},
			expectedErr: application.ErrMissingIndexRanges,
		},
		{
			name: "missing seed",
			req: application.GenerateRequest{
				Ranges: []addrgen.IndexRange{{Start: 1, End: 1}},
			},
			expectedErr: addrgen.ErrInvalidSeed,
		},
		{
			name: "invalid range",
			req: application.GenerateRequest{
				Seed:   testSeed,
				Ranges: []addrgen.IndexRange{{Start: 0, End: 1}},
			},
			expectedErr: addrgen.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateAddresses(ctx, tt.req)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}

	t.Run("canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.GenerateAddresses(cctx, application.GenerateRequest{
			Seed:   testSeed,
			Ranges: []addrgen.IndexRange{{Start: 1, End: 100}},
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestFailingConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfg         application.Config
		expectedErr error
	}{
		{
			name:        "unsupported db",
			cfg:         application.Config{DBType: "postgres", Network: &chaincfg.MainNetParams},
			expectedErr: application.ErrUnsupportedDBType,
		},
		{
			name:        "missing network",
			cfg:         application.Config{DBType: application.DBInMemory},
			expectedErr: application.ErrNullNetwork,
		},
		{
			name: "negative concurrency",
			cfg: application.Config{
				DBType: application.DBInMemory, Network: &chaincfg.MainNetParams,
				Concurrency: -1,
			},
			expectedErr: application.ErrInvalidConcurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.cfg.Validate(), tt.expectedErr)
		})
	}
}
