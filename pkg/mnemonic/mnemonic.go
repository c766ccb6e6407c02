// Package mnemonic encodes 128, 192 and 256 bit seeds as lists of words.
//
// The seed is read as a big endian integer and written in base N, N being the
// length of the wordlist, using the minimum number of words able to
// represent any seed of that length. A trailing checksum word, taken from the
// double SHA256 of the seed, catches transcription errors.
package mnemonic

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// SeedLengths lists the supported seed lengths in bytes.
var SeedLengths = []int{16, 24, 32}

func validateSeedLength(l int) error {
	for _, n := range SeedLengths {
		if l == n {
			return nil
		}
	}
	return fmt.Errorf("%w: got %d bytes", ErrInvalidSeedLength, l)
}

// WordCount returns the number of words, checksum word excluded, needed to
// encode a seed of seedLen bytes with a wordlist of wordlistLen words.
func WordCount(seedLen, wordlistLen int) int {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(8*seedLen))
	base := big.NewInt(int64(wordlistLen))
	n, pow := 0, big.NewInt(1)
	for pow.Cmp(limit) < 0 {
		pow.Mul(pow, base)
		n++
	}
	return n
}

// SeedToWords encodes the seed as a list of words of wl, followed by one
// checksum word.
func SeedToWords(seed []byte, wl *Wordlist) ([]string, error) {
	if wl == nil {
		return nil, ErrNullWordlist
	}
	if err := validateSeedLength(len(seed)); err != nil {
		return nil, err
	}

	n := WordCount(len(seed), wl.Len())
	words := make([]string, n+1)

	base := big.NewInt(int64(wl.Len()))
	value := new(big.Int).SetBytes(seed)
	mod := new(big.Int)
	for i := n - 1; i >= 0; i-- {
		value.DivMod(value, base, mod)
		words[i] = wl.Word(int(mod.Int64()))
	}
	words[n] = wl.Word(checksumIndex(seed, wl.Len()))

	return words, nil
}

// WordsToSeed decodes a list of words produced by SeedToWords.
func WordsToSeed(words []string, wl *Wordlist) ([]byte, error) {
	if wl == nil {
		return nil, ErrNullWordlist
	}

	seedLen := seedLengthForWords(len(words), wl.Len())
	if seedLen < 0 {
		return nil, fmt.Errorf(
			"%w: got %d words", ErrInvalidMnemonicLength, len(words),
		)
	}

	indexes := make([]int, len(words))
	for i, w := range words {
		index, ok := wl.Index(w)
		if !ok {
			return nil, fmt.Errorf(
				"%w %q at position %d", ErrInvalidWord, w, i+1,
			)
		}
		indexes[i] = index
	}

	base := big.NewInt(int64(wl.Len()))
	value := new(big.Int)
	for _, index := range indexes[:len(indexes)-1] {
		value.Mul(value, base)
		value.Add(value, big.NewInt(int64(index)))
	}
	if value.BitLen() > 8*seedLen {
		return nil, fmt.Errorf(
			"%w: value exceeds %d bits", ErrChecksumMismatch, 8*seedLen,
		)
	}

	seed := value.FillBytes(make([]byte, seedLen))
	if expected := checksumIndex(seed, wl.Len()); expected != indexes[len(indexes)-1] {
		return nil, fmt.Errorf(
			"%w: expected %q as last word", ErrChecksumMismatch, wl.Word(expected),
		)
	}
	return seed, nil
}

// ParseMnemonic splits a space separated mnemonic into its words.
func ParseMnemonic(mnemonic string) []string {
	return strings.Fields(mnemonic)
}

func seedLengthForWords(numWords, wordlistLen int) int {
	for _, l := range SeedLengths {
		if WordCount(l, wordlistLen)+1 == numWords {
			return l
		}
	}
	return -1
}

func checksumIndex(seed []byte, wordlistLen int) int {
	sum := chainhash.DoubleHashB(seed)
	return int(binary.BigEndian.Uint32(sum[:4]) % uint32(wordlistLen))
}
