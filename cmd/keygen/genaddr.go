package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keygen/internal/config"
	"github.com/tdex-network/keygen/internal/core/application"
	"github.com/tdex-network/keygen/pkg/addrfile"
	"github.com/tdex-network/keygen/pkg/addrgen"
	"github.com/tdex-network/keygen/pkg/mnemonic"
	"github.com/urfave/cli/v2"
)

var generateFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "seed",
		Usage: "hex encoded seed",
	},
	&cli.StringFlag{
		Name:  "mnemonic",
		Usage: "mnemonic of the seed, alternative to --seed",
	},
	&wordlistFlag,
	&wordlistFileFlag,
	&compressedFlag,
	&cli.StringFlag{
		Name:  "outdir",
		Usage: "directory where files are written",
		Value: ".",
	},
	&cli.BoolFlag{
		Name:  "stdout",
		Usage: "print to standard output instead of writing files",
	},
	&cli.BoolFlag{
		Name:  "persist",
		Usage: "store the generated addresses to verify future runs",
		Value: true,
	},
}

var genaddr = cli.Command{
	Name:      "genaddr",
	Usage:     "generate the addresses of a seed for a list of indexes",
	ArgsUsage: "<index list, ie. 1-10,15>",
	Flags:     generateFlags,
	Action: func(c *cli.Context) error {
		return generateAction(c, addrfile.FormatOpts{})
	},
}

var genkeys = cli.Command{
	Name:      "genkeys",
	Usage:     "generate the addresses and private keys of a seed for a list of indexes",
	ArgsUsage: "<index list, ie. 1-10,15>",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "hex",
			Usage: "include hex encoded secrets",
		},
		&cli.BoolFlag{
			Name:  "keys-only",
			Usage: "list private keys without addresses",
		},
	}, generateFlags...),
	Action: func(c *cli.Context) error {
		return generateAction(c, addrfile.FormatOpts{
			Secrets:  true,
			Hex:      c.Bool("hex"),
			KeysOnly: c.Bool("keys-only"),
		})
	},
}

func generateAction(c *cli.Context, opts addrfile.FormatOpts) error {
	if c.NArg() != 1 {
		return &invalidUsageError{c, c.Command.Name}
	}
	ranges, err := addrgen.ParseIndexList(c.Args().First())
	if err != nil {
		return err
	}
	seed, err := getSeed(c)
	if err != nil {
		return err
	}

	cfg := config.GetApplicationConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	defer cfg.Close()

	start := time.Now()
	res, err := cfg.KeygenService().GenerateAddresses(
		c.Context, application.GenerateRequest{
			Seed:       seed,
			Ranges:     ranges,
			Compressed: isCompressed(c),
			Persist:    c.Bool("persist"),
			OnRecord: func(r addrgen.KeyRecord) {
				log.Debugf("generated key #%d", r.Index)
			},
		},
	)
	if err != nil {
		return err
	}
	log.Infof(
		"generated %d range(s) with %s converter in %s",
		len(res.Datasets), res.Converter, time.Since(start).Round(time.Millisecond),
	)

	perm := os.FileMode(0644)
	if opts.Secrets || opts.KeysOnly {
		perm = 0600
	}
	for _, ds := range res.Datasets {
		content, err := addrfile.Format(ds, opts)
		if err != nil {
			return err
		}
		if c.Bool("stdout") {
			if _, err := io.WriteString(c.App.Writer, content); err != nil {
				return err
			}
			continue
		}

		path := filepath.Join(c.String("outdir"), addrfile.FileName(ds, opts))
		if err := os.WriteFile(path, []byte(content), perm); err != nil {
			return err
		}
		printLine(c, fmt.Sprintf("Wrote %s", path))
	}
	return nil
}

func getSeed(c *cli.Context) ([]byte, error) {
	seedHex, words := c.String("seed"), c.String("mnemonic")
	if (seedHex == "") == (words == "") {
		return nil, fmt.Errorf("exactly one of --seed or --mnemonic is required")
	}
	if seedHex != "" {
		return hex.DecodeString(seedHex)
	}

	wl, err := getWordlist(c)
	if err != nil {
		return nil, err
	}
	return mnemonic.WordsToSeed(mnemonic.ParseMnemonic(words), wl)
}
