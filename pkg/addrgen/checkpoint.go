package addrgen

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dgraph-io/ristretto"
)

const (
	// DefaultCheckpointInterval ...
	DefaultCheckpointInterval = 1000
	// DefaultMaxCheckpoints ...
	DefaultMaxCheckpoints = 1 << 16

	fingerprintTag = "keygen/checkpoint"
)

var (
	// ErrInvalidCheckpointInterval ...
	ErrInvalidCheckpointInterval = errors.New("checkpoint interval must be positive")
	// ErrInvalidMaxCheckpoints ...
	ErrInvalidMaxCheckpoints = errors.New("max number of checkpoints must be positive")
)

// CheckpointOpts configures a CheckpointCache.
type CheckpointOpts struct {
	Interval       uint32
	MaxCheckpoints int64
}

func (o CheckpointOpts) validate() error {
	if o.Interval == 0 {
		return ErrInvalidCheckpointInterval
	}
	if o.MaxCheckpoints <= 0 {
		return ErrInvalidMaxCheckpoints
	}
	return nil
}

// CheckpointCache keeps intermediate SHA512 accumulators so that a later
// generation run over the same seed can skip the rounds already computed.
// Entries are keyed by a one-way fingerprint of the seed and the round
// number. It is safe for concurrent use by several generators.
type CheckpointCache struct {
	cache    *ristretto.Cache
	interval uint32
}

// NewCheckpointCache returns a cache storing one accumulator every
// opts.Interval rounds, holding at most opts.MaxCheckpoints of them.
func NewCheckpointCache(opts CheckpointOpts) (*CheckpointCache, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        opts.MaxCheckpoints * 10,
		MaxCost:            opts.MaxCheckpoints,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &CheckpointCache{cache, opts.Interval}, nil
}

// Interval returns the number of rounds between two checkpoints.
func (c *CheckpointCache) Interval() uint32 {
	return c.interval
}

// Store records the accumulator of the given round if the round falls on a
// checkpoint boundary. The accumulator is copied.
func (c *CheckpointCache) Store(fingerprint []byte, round uint32, acc []byte) {
	if round == 0 || round%c.interval != 0 {
		return
	}
	value := make([]byte, len(acc))
	copy(value, acc)
	c.cache.Set(checkpointKey(fingerprint, round), value, 1)
}

// Lookup returns the highest cached round in (floor, target] together with
// a copy of its accumulator. Rounds at or below floor are never probed.
func (c *CheckpointCache) Lookup(
	fingerprint []byte, floor, target uint32,
) (uint32, []byte, bool) {
	for round := target - target%c.interval; round > floor; round -= c.interval {
		value, ok := c.cache.Get(checkpointKey(fingerprint, round))
		if !ok {
			continue
		}
		cached := value.([]byte)
		acc := make([]byte, len(cached))
		copy(acc, cached)
		return round, acc, true
	}
	return 0, nil, false
}

// Wait blocks until all pending writes are visible to Lookup.
func (c *CheckpointCache) Wait() {
	c.cache.Wait()
}

// Close releases the resources held by the cache.
func (c *CheckpointCache) Close() {
	c.cache.Close()
}

// seedFingerprint identifies a seed in the cache without making the seed or
// its public checksum recoverable from the key.
func seedFingerprint(seed []byte) []byte {
	h := sha256.New()
	h.Write([]byte(fingerprintTag))
	h.Write(seed)
	return h.Sum(nil)
}

func checkpointKey(fingerprint []byte, round uint32) string {
	return fmt.Sprintf("%s:%d", hex.EncodeToString(fingerprint), round)
}
