package addrgen

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// hashChain is the SHA512 accumulator of one generation run. Round i holds
// SHA512^i(seed); the secret key of index i is SHA256(SHA256(round i)).
type hashChain struct {
	acc         []byte
	round       uint32
	fingerprint []byte
	checkpoints *CheckpointCache
}

func newHashChain(seed []byte, checkpoints *CheckpointCache) *hashChain {
	acc := make([]byte, len(seed))
	copy(acc, seed)

	chain := &hashChain{acc: acc, checkpoints: checkpoints}
	if checkpoints != nil {
		chain.fingerprint = seedFingerprint(seed)
	}
	return chain
}

// advance moves the accumulator forward until it holds the given round.
func (h *hashChain) advance(ctx context.Context, target uint32) error {
	if target < h.round {
		return fmt.Errorf(
			"%w: chain at round %d cannot go back to %d",
			ErrInvalidRange, h.round, target,
		)
	}

	if h.checkpoints != nil && target > h.round {
		if round, acc, ok := h.checkpoints.Lookup(
			h.fingerprint, h.round, target,
		); ok {
			h.round, h.acc = round, acc
		}
	}

	for h.round < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		sum := sha512.Sum512(h.acc)
		h.acc = sum[:]
		h.round++

		if h.checkpoints != nil {
			h.checkpoints.Store(h.fingerprint, h.round, h.acc)
		}
	}
	return nil
}

// secret returns the double round of the current accumulator.
func (h *hashChain) secret() []byte {
	first := sha256.Sum256(h.acc)
	second := sha256.Sum256(first[:])
	return second[:]
}

// validateSecret makes sure the secret is a usable secp256k1 private key,
// that is a scalar in [1, N-1].
func validateSecret(secret []byte) error {
	if len(secret) != 32 {
		return ErrInvalidSecretKey
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(secret); overflow || scalar.IsZero() {
		return ErrInvalidSecretKey
	}
	return nil
}
