package mnemonic

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

const (
	// ShortWordlistLength is the length of the legacy electrum wordlist.
	ShortWordlistLength = 1626
	// WordlistLength is the length of the BIP39 wordlists.
	WordlistLength = 2048

	checksumLength = 8
)

//go:embed wordlists/electrum.txt
var electrumWords string

type builtinWordlist struct {
	words    func() []string
	checksum string
}

var (
	builtins = map[string]builtinWordlist{
		"electrum":            {func() []string { return strings.Fields(electrumWords) }, "b329cea7"},
		"english":             {func() []string { return wordlists.English }, "187db04a"},
		"japanese":            {func() []string { return wordlists.Japanese }, "a3c2aa5c"},
		"korean":              {func() []string { return wordlists.Korean }, "e7375c57"},
		"spanish":             {func() []string { return wordlists.Spanish }, "2f06d280"},
		"chinese_simplified":  {func() []string { return wordlists.ChineseSimplified }, "106cc838"},
		"chinese_traditional": {func() []string { return wordlists.ChineseTraditional }, "407312f9"},
		"french":              {func() []string { return wordlists.French }, "b8caec12"},
		"italian":             {func() []string { return wordlists.Italian }, "ffefe450"},
		"czech":               {func() []string { return wordlists.Czech }, "63a3babb"},
	}

	loaded     = make(map[string]*Wordlist)
	loadedLock = &sync.Mutex{}
)

// DefaultWordlist ...
const DefaultWordlist = "english"

// Wordlist is an immutable ordered list of words with a reverse index.
type Wordlist struct {
	name     string
	words    []string
	index    map[string]int
	checksum string
}

// WordlistStats ...
type WordlistStats struct {
	Name          string
	WordCount     int
	Checksum      string
	MinWordLength int
	MaxWordLength int
	AvgWordLength float64
	Sorted        bool
}

// WordlistNames returns the sorted names of the built-in wordlists.
func WordlistNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadWordlist returns the built-in wordlist with the given name, verified
// against its pinned checksum. Every wordlist is built once and shared.
func LoadWordlist(name string) (*Wordlist, error) {
	loadedLock.Lock()
	defer loadedLock.Unlock()

	if wl, ok := loaded[name]; ok {
		return wl, nil
	}

	builtin, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownWordlist, name)
	}

	wl, err := NewWordlist(name, builtin.words())
	if err != nil {
		return nil, err
	}
	if _, err := CheckWordlist(wl); err != nil {
		return nil, err
	}

	loaded[name] = wl
	return wl, nil
}

// NewWordlist builds a wordlist from the given words, which are copied. The
// list must contain 1626 or 2048 distinct non-empty words. Words are indexed
// in NFKD form so that lookups don't depend on the normalization of the input.
func NewWordlist(name string, words []string) (*Wordlist, error) {
	if len(words) != ShortWordlistLength && len(words) != WordlistLength {
		return nil, fmt.Errorf(
			"%w: %s has %d words, expected %d or %d", ErrCorruptedWordlist,
			name, len(words), ShortWordlistLength, WordlistLength,
		)
	}

	list := make([]string, len(words))
	index := make(map[string]int, len(words))
	for i, w := range words {
		if w == "" || strings.TrimSpace(w) != w {
			return nil, fmt.Errorf(
				"%w: %s has invalid word %q at position %d",
				ErrCorruptedWordlist, name, w, i,
			)
		}
		key := normalizeWord(w)
		if _, ok := index[key]; ok {
			return nil, fmt.Errorf(
				"%w: %s has duplicate word %q", ErrCorruptedWordlist, name, w,
			)
		}
		list[i] = w
		index[key] = i
	}

	return &Wordlist{
		name:     name,
		words:    list,
		index:    index,
		checksum: wordlistChecksum(list),
	}, nil
}

func (w *Wordlist) Name() string {
	return w.name
}

func (w *Wordlist) Len() int {
	return len(w.words)
}

// Word returns the word at position i.
func (w *Wordlist) Word(i int) string {
	return w.words[i]
}

// Index returns the position of word in the list, regardless of its unicode
// normalization form.
func (w *Wordlist) Index(word string) (int, bool) {
	i, ok := w.index[normalizeWord(word)]
	return i, ok
}

// Words returns a copy of the words of the list.
func (w *Wordlist) Words() []string {
	words := make([]string, len(w.words))
	copy(words, w.words)
	return words
}

// Checksum returns the first 8 hex chars of the SHA256 of the words joined
// by newlines.
func (w *Wordlist) Checksum() string {
	return w.checksum
}

// Stats computes the statistics of the wordlist. Word lengths are counted in
// characters, not bytes.
func (w *Wordlist) Stats() WordlistStats {
	stats := WordlistStats{
		Name:      w.name,
		WordCount: len(w.words),
		Checksum:  w.checksum,
		Sorted:    sort.StringsAreSorted(w.words),
	}

	total := 0
	for i, word := range w.words {
		l := utf8.RuneCountInString(word)
		total += l
		if i == 0 || l < stats.MinWordLength {
			stats.MinWordLength = l
		}
		if l > stats.MaxWordLength {
			stats.MaxWordLength = l
		}
	}
	if len(w.words) > 0 {
		stats.AvgWordLength = float64(total) / float64(len(w.words))
	}
	return stats
}

// CheckWordlist verifies the integrity of the wordlist and returns its
// statistics. Built-in lists are also checked against their pinned checksum.
func CheckWordlist(wl *Wordlist) (*WordlistStats, error) {
	if wl == nil {
		return nil, ErrNullWordlist
	}
	if wl.Len() != ShortWordlistLength && wl.Len() != WordlistLength {
		return nil, fmt.Errorf(
			"%w: %s has %d words", ErrCorruptedWordlist, wl.name, wl.Len(),
		)
	}
	if len(wl.index) != wl.Len() {
		return nil, fmt.Errorf(
			"%w: %s has duplicate words", ErrCorruptedWordlist, wl.name,
		)
	}

	if checksum := wordlistChecksum(wl.words); checksum != wl.checksum {
		return nil, fmt.Errorf(
			"%w: %s checksum %s does not match %s",
			ErrCorruptedWordlist, wl.name, checksum, wl.checksum,
		)
	}
	if builtin, ok := builtins[wl.name]; ok && builtin.checksum != wl.checksum {
		return nil, fmt.Errorf(
			"%w: %s checksum %s does not match pinned %s",
			ErrCorruptedWordlist, wl.name, wl.checksum, builtin.checksum,
		)
	}

	stats := wl.Stats()
	return &stats, nil
}

func normalizeWord(word string) string {
	return norm.NFKD.String(word)
}

func wordlistChecksum(words []string) string {
	sum := sha256.Sum256([]byte(strings.Join(words, "\n")))
	return hex.EncodeToString(sum[:])[:checksumLength]
}
