package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdex-network/keygen/internal/config"
	"github.com/tdex-network/keygen/pkg/mnemonic"
	"github.com/urfave/cli/v2"
)

var wordlistFlag = cli.StringFlag{
	Name:  "wordlist",
	Usage: "name of the mnemonic wordlist, defaults to KEYGEN_WORDLIST",
}

var wordlistFileFlag = cli.StringFlag{
	Name:  "wordlist-file",
	Usage: "file with one word per line to use as wordlist, alternative to --wordlist",
}

var wordlistFlags = []cli.Flag{&wordlistFlag, &wordlistFileFlag}

var (
	mnRand128 = newMnRandCommand(128)
	mnRand192 = newMnRandCommand(192)
	mnRand256 = newMnRandCommand(256)
)

var mnStats = cli.Command{
	Name:   "mn-stats",
	Usage:  "check a wordlist and print its statistics",
	Flags:  wordlistFlags,
	Action: mnStatsAction,
}

var mnPrintlist = cli.Command{
	Name:   "mn-printlist",
	Usage:  "print the words of a wordlist",
	Flags:  wordlistFlags,
	Action: mnPrintlistAction,
}

var hex2mn = cli.Command{
	Name:      "hex2mn",
	Usage:     "convert a 16, 24 or 32-byte hexadecimal seed to a mnemonic",
	ArgsUsage: "<hex>",
	Flags:     wordlistFlags,
	Action:    hexToMnAction,
}

var mn2hex = cli.Command{
	Name:      "mn2hex",
	Usage:     "convert a mnemonic to its hexadecimal seed",
	ArgsUsage: "<words...>",
	Flags:     wordlistFlags,
	Action:    mnToHexAction,
}

func newMnRandCommand(bits int) cli.Command {
	return cli.Command{
		Name:   fmt.Sprintf("mn-rand%d", bits),
		Usage:  fmt.Sprintf("generate a random %d-bit mnemonic", bits),
		Flags:  wordlistFlags,
		Action: func(c *cli.Context) error { return mnRandAction(c, bits/8) },
	}
}

func mnRandAction(c *cli.Context, seedLen int) error {
	wl, err := getWordlist(c)
	if err != nil {
		return err
	}
	seed := make([]byte, seedLen)
	if _, err := rand.Read(seed); err != nil {
		return err
	}
	words, err := mnemonic.SeedToWords(seed, wl)
	if err != nil {
		return err
	}
	printLine(c, strings.Join(words, " "))
	return nil
}

func mnStatsAction(c *cli.Context) error {
	wl, err := getWordlist(c)
	if err != nil {
		return err
	}
	stats, err := mnemonic.CheckWordlist(wl)
	if err != nil {
		return err
	}

	printLine(c, fmt.Sprintf("Wordlist: %s", stats.Name))
	printLine(c, fmt.Sprintf("Checksum: %s", stats.Checksum))
	printLine(c, fmt.Sprintf("Words: %d", stats.WordCount))
	printLine(c, fmt.Sprintf("Sorted: %t", stats.Sorted))
	printLine(c, fmt.Sprintf(
		"Word length: min %d, max %d, avg %.2f",
		stats.MinWordLength, stats.MaxWordLength, stats.AvgWordLength,
	))
	return nil
}

func mnPrintlistAction(c *cli.Context) error {
	wl, err := getWordlist(c)
	if err != nil {
		return err
	}
	printLine(c, strings.Join(wl.Words(), "\n"))
	return nil
}

func hexToMnAction(c *cli.Context) error {
	wl, err := getWordlist(c)
	if err != nil {
		return err
	}
	in, err := readInput(c)
	if err != nil {
		return err
	}
	seed, err := hex.DecodeString(in)
	if err != nil {
		return err
	}
	words, err := mnemonic.SeedToWords(seed, wl)
	if err != nil {
		return err
	}
	printLine(c, strings.Join(words, " "))
	return nil
}

func mnToHexAction(c *cli.Context) error {
	wl, err := getWordlist(c)
	if err != nil {
		return err
	}
	in := strings.Join(c.Args().Slice(), " ")
	if in == "" {
		if in, err = readInput(c); err != nil {
			return err
		}
	}
	seed, err := mnemonic.WordsToSeed(mnemonic.ParseMnemonic(in), wl)
	if err != nil {
		return err
	}
	printLine(c, hex.EncodeToString(seed))
	return nil
}

func getWordlist(c *cli.Context) (*mnemonic.Wordlist, error) {
	if path := c.String(wordlistFileFlag.Name); path != "" {
		if c.IsSet(wordlistFlag.Name) {
			return nil, &invalidUsageError{c, c.Command.Name}
		}
		return readWordlistFile(path)
	}

	name := c.String(wordlistFlag.Name)
	if name == "" {
		name = config.GetString(config.WordlistKey)
	}
	return mnemonic.LoadWordlist(name)
}

// readWordlistFile loads a custom wordlist named after the file. Lists named
// like a built-in one must match its pinned checksum.
func readWordlistFile(path string) (*mnemonic.Wordlist, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	wl, err := mnemonic.NewWordlist(name, strings.Fields(string(content)))
	if err != nil {
		return nil, err
	}
	if _, err := mnemonic.CheckWordlist(wl); err != nil {
		return nil, err
	}
	return wl, nil
}
