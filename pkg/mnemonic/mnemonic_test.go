package mnemonic_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/keygen/pkg/mnemonic"
	"golang.org/x/text/unicode/norm"
	"pgregory.net/rapid"
)

var fixtures = []struct {
	wordlist string
	seed     string
	mnemonic string
}{
	{
		wordlist: "english",
		seed:     "00000000000000000000000000000000",
		mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon caution",
	},
	{
		wordlist: "english",
		seed:     "000102030405060708090a0b0c0d0e0f",
		mnemonic: "abandon above amount gauge agree coral search bamboo pass maid crouch sea milk",
	},
	{
		wordlist: "english",
		seed:     "ffffffffffffffffffffffffffffffff",
		mnemonic: "avocado zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo axis",
	},
	{
		wordlist: "english",
		seed:     "000000000000000000000000000000000000000000000000",
		mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon alcohol",
	},
	{
		wordlist: "english",
		seed:     "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		mnemonic: "above wire reflect adapt luggage dirt nose echo turkey alert find parent focus text detect grace argue badge crowd river scout such scan donate napkin",
	},
	{
		wordlist: "english",
		seed:     "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		mnemonic: "abstract zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo ankle",
	},
	{
		wordlist: "japanese",
		seed:     "000102030405060708090a0b0c0d0e0f",
		mnemonic: "あいこくしん あかちゃん いくぶん さんせい あらし きおん はさみ いんしょう てぬぐい たいねつ きつね はこぶ たべる",
	},
	{
		wordlist: "electrum",
		seed:     "00000000000000000000000000000000",
		mnemonic: "like like like like like like like like like like like like speak",
	},
	{
		wordlist: "electrum",
		seed:     "000102030405060708090a0b0c0d0e0f",
		mnemonic: "like need ghost awe slept sad eat shield thank cold large stole choice",
	},
}

func TestSeedToWords(t *testing.T) {
	for _, f := range fixtures {
		wl, err := mnemonic.LoadWordlist(f.wordlist)
		require.NoError(t, err)

		seed, _ := hex.DecodeString(f.seed)
		words, err := mnemonic.SeedToWords(seed, wl)
		require.NoError(t, err)
		assert.Equal(
			t, norm.NFKD.String(f.mnemonic),
			norm.NFKD.String(strings.Join(words, " ")),
		)
	}
}

func TestWordsToSeed(t *testing.T) {
	for _, f := range fixtures {
		wl, err := mnemonic.LoadWordlist(f.wordlist)
		require.NoError(t, err)

		seed, err := mnemonic.WordsToSeed(mnemonic.ParseMnemonic(f.mnemonic), wl)
		require.NoError(t, err)
		assert.Equal(t, f.seed, hex.EncodeToString(seed))
	}
}

func TestWordsToSeedNormalization(t *testing.T) {
	wl, err := mnemonic.LoadWordlist("japanese")
	require.NoError(t, err)

	f := fixtures[6]
	require.Equal(t, "japanese", f.wordlist)

	for _, form := range []norm.Form{norm.NFC, norm.NFD, norm.NFKC, norm.NFKD} {
		words := mnemonic.ParseMnemonic(form.String(f.mnemonic))
		seed, err := mnemonic.WordsToSeed(words, wl)
		require.NoError(t, err)
		require.Equal(t, f.seed, hex.EncodeToString(seed))
	}
}

func TestFailingSeedToWords(t *testing.T) {
	wl, err := mnemonic.LoadWordlist("english")
	require.NoError(t, err)

	for _, l := range []int{0, 1, 15, 17, 20, 33, 64} {
		words, err := mnemonic.SeedToWords(make([]byte, l), wl)
		require.Nil(t, words)
		require.ErrorIs(t, err, mnemonic.ErrInvalidSeedLength)
	}

	_, err = mnemonic.SeedToWords(make([]byte, 16), nil)
	require.ErrorIs(t, err, mnemonic.ErrNullWordlist)
}

func TestFailingWordsToSeed(t *testing.T) {
	wl, err := mnemonic.LoadWordlist("english")
	require.NoError(t, err)

	valid := mnemonic.ParseMnemonic(fixtures[1].mnemonic)
	replace := func(i int, w string) []string {
		words := append([]string{}, valid...)
		words[i] = w
		return words
	}

	tests := []struct {
		name  string
		words []string
		err   error
	}{
		{"empty", nil, mnemonic.ErrInvalidMnemonicLength},
		{"missing checksum word", valid[:12], mnemonic.ErrInvalidMnemonicLength},
		{"extra word", append(append([]string{}, valid...), "zoo"), mnemonic.ErrInvalidMnemonicLength},
		{"unknown word", replace(3, "bitcoin"), mnemonic.ErrInvalidWord},
		{"upper case word", replace(0, "ABANDON"), mnemonic.ErrInvalidWord},
		{"wrong checksum word", replace(12, "zoo"), mnemonic.ErrChecksumMismatch},
		{"swapped words", replace(1, valid[2]), mnemonic.ErrChecksumMismatch},
		{
			"value out of range",
			mnemonic.ParseMnemonic("zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo"),
			mnemonic.ErrChecksumMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := mnemonic.WordsToSeed(tt.words, wl)
			require.Nil(t, seed)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		seedLen     int
		wordlistLen int
		expected    int
	}{
		{16, mnemonic.WordlistLength, 12},
		{24, mnemonic.WordlistLength, 18},
		{32, mnemonic.WordlistLength, 24},
		{16, mnemonic.ShortWordlistLength, 12},
		{24, mnemonic.ShortWordlistLength, 18},
		{32, mnemonic.ShortWordlistLength, 24},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mnemonic.WordCount(tt.seedLen, tt.wordlistLen))
	}
}

func TestRoundTrip(t *testing.T) {
	english, err := mnemonic.LoadWordlist("english")
	require.NoError(t, err)
	korean, err := mnemonic.LoadWordlist("korean")
	require.NoError(t, err)
	short, err := mnemonic.NewWordlist("short", syntheticWords(mnemonic.ShortWordlistLength))
	require.NoError(t, err)

	wordlists := []*mnemonic.Wordlist{english, korean, short}

	rapid.Check(t, func(t *rapid.T) {
		l := rapid.SampledFrom(mnemonic.SeedLengths).Draw(t, "length")
		seed := rapid.SliceOfN(rapid.Byte(), l, l).Draw(t, "seed")
		wl := rapid.SampledFrom(wordlists).Draw(t, "wordlist")

		words, err := mnemonic.SeedToWords(seed, wl)
		if err != nil {
			t.Fatal(err)
		}
		if len(words) != mnemonic.WordCount(l, wl.Len())+1 {
			t.Fatalf("unexpected number of words %d", len(words))
		}

		decoded, err := mnemonic.WordsToSeed(words, wl)
		if err != nil {
			t.Fatal(err)
		}
		if hex.EncodeToString(decoded) != hex.EncodeToString(seed) {
			t.Fatalf("seed mismatch: %x != %x", decoded, seed)
		}

		reencoded, err := mnemonic.SeedToWords(decoded, wl)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Join(reencoded, " ") != strings.Join(words, " ") {
			t.Fatalf("mnemonic mismatch")
		}
	})
}

func TestWordSubstitution(t *testing.T) {
	english, err := mnemonic.LoadWordlist("english")
	require.NoError(t, err)
	electrum, err := mnemonic.LoadWordlist("electrum")
	require.NoError(t, err)

	wordlists := []*mnemonic.Wordlist{english, electrum}

	rapid.Check(t, func(t *rapid.T) {
		l := rapid.SampledFrom(mnemonic.SeedLengths).Draw(t, "length")
		seed := rapid.SliceOfN(rapid.Byte(), l, l).Draw(t, "seed")
		wl := rapid.SampledFrom(wordlists).Draw(t, "wordlist")

		words, err := mnemonic.SeedToWords(seed, wl)
		if err != nil {
			t.Fatal(err)
		}

		pos := rapid.IntRange(0, len(words)-1).Draw(t, "position")
		index := rapid.IntRange(0, wl.Len()-1).Filter(func(i int) bool {
			return wl.Word(i) != words[pos]
		}).Draw(t, "index")
		words[pos] = wl.Word(index)

		decoded, err := mnemonic.WordsToSeed(words, wl)
		if err != nil {
			if !errors.Is(err, mnemonic.ErrChecksumMismatch) {
				t.Fatalf("unexpected error: %v", err)
			}
			return
		}
		if bytes.Equal(decoded, seed) {
			t.Fatalf("word %d replaced by %q still decodes to %x", pos, words[pos], seed)
		}
	})
}

func syntheticWords(n int) []string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, fmt.Sprintf("w%04d", i))
	}
	return words
}
