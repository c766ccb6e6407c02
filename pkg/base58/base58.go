// Package base58 implements the Bitcoin flavour of base58 encoding, with
// explicit validation of the input alphabet on decode.
package base58

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Alphabet is the Bitcoin base58 alphabet. It omits 0, O, I and l.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ZeroSymbol encodes a single leading zero byte.
const ZeroSymbol = '1'

var (
	// ErrInvalidCharacter is returned when decoding a string that contains a
	// character outside of Alphabet.
	ErrInvalidCharacter = errors.New("invalid base58 character")
)

// Encode returns the base58 representation of b. Every leading zero byte of
// b is rendered as one ZeroSymbol.
func Encode(b []byte) string {
	return base58.Encode(b)
}

// Decode returns the bytes represented by the base58 string s, restoring one
// zero byte for every leading ZeroSymbol.
func Decode(s string) ([]byte, error) {
	for i, r := range s {
		if r > 127 || strings.IndexByte(Alphabet, byte(r)) < 0 {
			return nil, fmt.Errorf("%w %q at position %d", ErrInvalidCharacter, r, i)
		}
	}
	return base58.Decode(s), nil
}

// LeadingZeros returns the number of leading zero bytes of b, which is also
// the number of leading ZeroSymbols of Encode(b).
func LeadingZeros(b []byte) int {
	n := 0
	for n < len(b) && b[n] == 0 {
		n++
	}
	return n
}
