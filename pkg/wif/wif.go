// Package wif converts raw 32-byte secp256k1 private keys to and from the
// Wallet Import Format.
package wif

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/tdex-network/keygen/pkg/base58"
)

const (
	// KeyLength is the length in bytes of a raw private key.
	KeyLength = 32
	// CompressMagic is appended to the key when the corresponding public key
	// must be serialized in compressed form.
	CompressMagic byte = 0x01

	checksumLength = 4
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrInvalidKeyLength ...
	ErrInvalidKeyLength = fmt.Errorf("private key must be %d bytes long", KeyLength)
	// ErrChecksumMismatch is returned when the trailing 4 bytes of a decoded
	// WIF string don't match the double SHA256 of the payload. This is what
	// catches transcription errors in manually copied keys.
	ErrChecksumMismatch = errors.New("wif checksum mismatch")
	// ErrInvalidLength ...
	ErrInvalidLength = errors.New("invalid wif payload length")
	// ErrInvalidCompressionFlag ...
	ErrInvalidCompressionFlag = errors.New("invalid wif compression flag")
	// ErrInvalidVersion is returned when the network version byte of the WIF
	// doesn't belong to the expected network.
	ErrInvalidVersion = errors.New("wif version byte does not match network")
)

// PrivateKey is the decoded content of a WIF string.
type PrivateKey struct {
	Key        []byte
	Compressed bool
}

// Encode serializes the given 32-byte private key into WIF for the provided
// network.
func Encode(key []byte, compressed bool, net *chaincfg.Params) (string, error) {
	if net == nil {
		return "", ErrNullNetwork
	}
	if len(key) != KeyLength {
		return "", ErrInvalidKeyLength
	}

	size := 1 + KeyLength + checksumLength
	if compressed {
		size++
	}
	payload := make([]byte, 0, size)
	payload = append(payload, net.PrivateKeyID)
	payload = append(payload, key...)
	if compressed {
		payload = append(payload, CompressMagic)
	}
	payload = append(payload, checksum(payload)...)

	return base58.Encode(payload), nil
}

// Decode parses the given WIF string and verifies its checksum, length and
// network version byte.
func Decode(s string, net *chaincfg.Params) (*PrivateKey, error) {
	if net == nil {
		return nil, ErrNullNetwork
	}

	buf, err := base58.Decode(s)
	if err != nil {
		return nil, err
	}
	if len(buf) <= checksumLength {
		return nil, ErrInvalidLength
	}

	payload, sum := buf[:len(buf)-checksumLength], buf[len(buf)-checksumLength:]
	if !bytes.Equal(checksum(payload), sum) {
		return nil, ErrChecksumMismatch
	}

	compressed := false
	switch len(payload) {
	case 1 + KeyLength:
	case 1 + KeyLength + 1:
		if payload[len(payload)-1] != CompressMagic {
			return nil, ErrInvalidCompressionFlag
		}
		compressed = true
	default:
		return nil, ErrInvalidLength
	}

	if payload[0] != net.PrivateKeyID {
		return nil, fmt.Errorf(
			"%w: got 0x%02x, expected 0x%02x for %s",
			ErrInvalidVersion, payload[0], net.PrivateKeyID, net.Name,
		)
	}

	key := make([]byte, KeyLength)
	copy(key, payload[1:1+KeyLength])

	return &PrivateKey{Key: key, Compressed: compressed}, nil
}

func checksum(payload []byte) []byte {
	return chainhash.DoubleHashB(payload)[:checksumLength]
}
