package mnemonic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/keygen/pkg/mnemonic"
	"golang.org/x/text/unicode/norm"
)

func TestLoadWordlist(t *testing.T) {
	tests := []struct {
		name     string
		checksum string
		length   int
		sorted   bool
	}{
		{"electrum", "b329cea7", mnemonic.ShortWordlistLength, false},
		{"english", "187db04a", mnemonic.WordlistLength, true},
		{"japanese", "a3c2aa5c", mnemonic.WordlistLength, false},
		{"korean", "e7375c57", mnemonic.WordlistLength, true},
		{"spanish", "2f06d280", mnemonic.WordlistLength, false},
		{"chinese_simplified", "106cc838", mnemonic.WordlistLength, false},
		{"chinese_traditional", "407312f9", mnemonic.WordlistLength, false},
		{"french", "b8caec12", mnemonic.WordlistLength, false},
		{"italian", "ffefe450", mnemonic.WordlistLength, true},
		{"czech", "63a3babb", mnemonic.WordlistLength, false},
	}

	require.Len(t, mnemonic.WordlistNames(), len(tests))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wl, err := mnemonic.LoadWordlist(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.name, wl.Name())
			require.Equal(t, tt.length, wl.Len())
			require.Equal(t, tt.checksum, wl.Checksum())

			stats, err := mnemonic.CheckWordlist(wl)
			require.NoError(t, err)
			require.Equal(t, tt.sorted, stats.Sorted)

			again, err := mnemonic.LoadWordlist(tt.name)
			require.NoError(t, err)
			require.True(t, wl == again)
		})
	}
}

func TestFailingLoadWordlist(t *testing.T) {
	wl, err := mnemonic.LoadWordlist("klingon")
	require.Nil(t, wl)
	require.ErrorIs(t, err, mnemonic.ErrUnknownWordlist)
}

func TestWordlistStats(t *testing.T) {
	wl, err := mnemonic.LoadWordlist("english")
	require.NoError(t, err)

	stats := wl.Stats()
	assert.Equal(t, "english", stats.Name)
	assert.Equal(t, 2048, stats.WordCount)
	assert.Equal(t, "187db04a", stats.Checksum)
	assert.Equal(t, 3, stats.MinWordLength)
	assert.Equal(t, 8, stats.MaxWordLength)
	assert.InDelta(t, 5.404296875, stats.AvgWordLength, 1e-9)
	assert.True(t, stats.Sorted)

	// Lengths are counted in characters.
	zh, err := mnemonic.LoadWordlist("chinese_simplified")
	require.NoError(t, err)
	stats = zh.Stats()
	assert.Equal(t, 1, stats.MinWordLength)
	assert.Equal(t, 1, stats.MaxWordLength)
	assert.InDelta(t, 1.0, stats.AvgWordLength, 1e-9)
}

func TestWordlistAccessors(t *testing.T) {
	wl, err := mnemonic.LoadWordlist("english")
	require.NoError(t, err)

	assert.Equal(t, "abandon", wl.Word(0))
	assert.Equal(t, "zoo", wl.Word(2047))

	i, ok := wl.Index("zoo")
	assert.True(t, ok)
	assert.Equal(t, 2047, i)
	_, ok = wl.Index("bitcoin")
	assert.False(t, ok)

	words := wl.Words()
	words[0] = "changed"
	assert.Equal(t, "abandon", wl.Word(0))
}

func TestElectrumWordlist(t *testing.T) {
	wl, err := mnemonic.LoadWordlist("electrum")
	require.NoError(t, err)

	assert.Equal(t, "like", wl.Word(0))
	assert.Equal(t, "weary", wl.Word(mnemonic.ShortWordlistLength-1))

	stats := wl.Stats()
	assert.Equal(t, 3, stats.MinWordLength)
	assert.Equal(t, 12, stats.MaxWordLength)
	assert.False(t, stats.Sorted)
}

func TestWordlistIndexNormalization(t *testing.T) {
	wl, err := mnemonic.LoadWordlist("japanese")
	require.NoError(t, err)

	// U+3076 composed vs U+3075 U+3099 decomposed.
	nfc := "\u3044\u304f\u3076\u3093"
	nfd := "\u3044\u304f\u3075\u3099\u3093"

	i, ok := wl.Index(nfc)
	require.True(t, ok)
	j, ok := wl.Index(nfd)
	require.True(t, ok)
	require.Equal(t, i, j)
	require.Equal(t, norm.NFKD.String(nfc), norm.NFKD.String(wl.Word(i)))

	// Words equal under NFKD are duplicates.
	words := syntheticWords(mnemonic.WordlistLength)
	words[0], words[1] = nfc, nfd
	_, err = mnemonic.NewWordlist("custom", words)
	require.ErrorIs(t, err, mnemonic.ErrCorruptedWordlist)
}

func TestNewWordlist(t *testing.T) {
	words := syntheticWords(mnemonic.ShortWordlistLength)
	wl, err := mnemonic.NewWordlist("custom", words)
	require.NoError(t, err)

	// The input slice is copied.
	words[0] = "changed"
	require.Equal(t, "w0000", wl.Word(0))

	stats, err := mnemonic.CheckWordlist(wl)
	require.NoError(t, err)
	require.Equal(t, mnemonic.ShortWordlistLength, stats.WordCount)
	require.Equal(t, 5, stats.MinWordLength)
	require.Equal(t, 5, stats.MaxWordLength)
	require.True(t, stats.Sorted)
}

func TestFailingNewWordlist(t *testing.T) {
	duplicate := syntheticWords(mnemonic.WordlistLength)
	duplicate[10] = duplicate[20]

	empty := syntheticWords(mnemonic.WordlistLength)
	empty[5] = ""

	padded := syntheticWords(mnemonic.WordlistLength)
	padded[5] = " w0005"

	tests := []struct {
		name  string
		words []string
	}{
		{"no words", nil},
		{"too few words", syntheticWords(100)},
		{"too many words", syntheticWords(mnemonic.WordlistLength + 1)},
		{"duplicate words", duplicate},
		{"empty word", empty},
		{"padded word", padded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wl, err := mnemonic.NewWordlist("custom", tt.words)
			require.Nil(t, wl)
			require.ErrorIs(t, err, mnemonic.ErrCorruptedWordlist)
		})
	}
}

func TestCheckWordlistPinnedChecksum(t *testing.T) {
	// A custom list can't impersonate a built-in one.
	wl, err := mnemonic.NewWordlist("english", syntheticWords(mnemonic.WordlistLength))
	require.NoError(t, err)

	stats, err := mnemonic.CheckWordlist(wl)
	require.Nil(t, stats)
	require.ErrorIs(t, err, mnemonic.ErrCorruptedWordlist)

	_, err = mnemonic.CheckWordlist(nil)
	require.ErrorIs(t, err, mnemonic.ErrNullWordlist)
}
