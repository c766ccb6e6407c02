// Package addrfile formats generated address datasets as the text blocks
// written to address and key files.
package addrfile

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tdex-network/keygen/pkg/addrgen"
)

const (
	ExtAddresses = "addrs"
	ExtKeys      = "keys"
	ExtAllKeys   = "akeys"

	hexKeysTag = "xkeys"
	wifLabel   = " (wif)"
)

var (
	// ErrEmptyDataset ...
	ErrEmptyDataset = errors.New("dataset has no records")
)

// FormatOpts selects the content of the formatted file. By default only
// addresses are listed.
type FormatOpts struct {
	// Secrets adds the WIF of every key next to its address.
	Secrets bool
	// Hex adds the hex encoded secret of every key.
	Hex bool
	// KeysOnly lists keys in place of addresses.
	KeysOnly bool
}

// Format renders the dataset as a block headed by the seed checksum:
//
//	BE2EF497 {
//	  1    1B6cSoyfTL6jSYvpDSG8buvFHoRoFcRDBU
//	  2    1JhXmGASsV2HmSXwQy7bc7d9dDWqjhw5Pu
//	}
func Format(ds *addrgen.AddressDataset, opts FormatOpts) (string, error) {
	if ds == nil || len(ds.Records) <= 0 {
		return "", ErrEmptyDataset
	}

	end := ds.Records[len(ds.Records)-1].Index
	wifMsg := ""
	if (opts.Hex && opts.Secrets) || opts.KeysOnly {
		wifMsg = wifLabel
	}

	indexWidth := len(strconv.FormatUint(uint64(end), 10))
	if !opts.KeysOnly {
		indexWidth++
	}
	labelWidth := 1 + len(wifMsg)
	if opts.Secrets {
		labelWidth = 5 + len(wifMsg)
	}
	line := func(index, label, value string) string {
		return fmt.Sprintf("  %-*s %-*s %s", indexWidth, index, labelWidth, label, value)
	}

	lines := []string{fmt.Sprintf("%s {", strings.ToUpper(ds.SeedChecksum))}
	for _, r := range ds.Records {
		index := strconv.FormatUint(uint64(r.Index), 10)
		switch {
		case opts.KeysOnly:
			if opts.Hex {
				lines = append(lines, line(index, " (hex):", hex.EncodeToString(r.Secret)))
				index = ""
			}
			lines = append(lines, line(index, " (wif):", r.WIF))
			if opts.Hex {
				lines = append(lines, "")
			}
		case opts.Secrets:
			if opts.Hex {
				lines = append(lines, line(index, "sec (hex):", hex.EncodeToString(r.Secret)))
				index = ""
			}
			lines = append(lines, line(index, "sec"+wifMsg+":", r.WIF))
			lines = append(lines, line("", "addr:", r.Address))
			lines = append(lines, "")
		default:
			lines = append(lines, line(index, "", r.Address))
		}
	}
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	lines = append(lines, "}")

	return strings.Join(lines, "\n") + "\n", nil
}

// Extension returns the file extension matching the given options.
func Extension(opts FormatOpts) string {
	ext := ExtAddresses
	if opts.KeysOnly {
		ext = ExtKeys
	} else if opts.Secrets {
		ext = ExtAllKeys
	}
	if opts.Hex {
		ext = strings.Replace(ext, ExtKeys, hexKeysTag, 1)
	}
	return ext
}

// FileName returns the name of the file holding the dataset, in the form
// <CHECKSUM>[<start>-<end>].<ext>.
func FileName(ds *addrgen.AddressDataset, opts FormatOpts) string {
	return fmt.Sprintf(
		"%s[%s].%s", strings.ToUpper(ds.SeedChecksum),
		addrgen.IndexRange{Start: ds.Start, End: ds.End}, Extension(opts),
	)
}
