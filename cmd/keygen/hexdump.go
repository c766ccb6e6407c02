package main

import (
	"io"
	"os"

	"github.com/tdex-network/keygen/pkg/hexdump"
	"github.com/urfave/cli/v2"
)

var hexdumpCmd = cli.Command{
	Name:      "hexdump",
	Usage:     "print the hexdump of a file, or of the standard input",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "columns",
			Usage: "number of groups per line",
			Value: hexdump.DefaultColumns,
		},
		&cli.IntFlag{
			Name:  "group-size",
			Usage: "number of bytes per group",
			Value: hexdump.DefaultGroupSize,
		},
		&cli.BoolFlag{
			Name:  "offsets",
			Usage: "prefix every line with its byte offset",
			Value: true,
		},
	},
	Action: hexdumpAction,
}

var unhexdumpCmd = cli.Command{
	Name:      "unhexdump",
	Usage:     "decode a hexdump from a file, or from the standard input",
	ArgsUsage: "[file]",
	Action:    unhexdumpAction,
}

func hexdumpAction(c *cli.Context) error {
	data, err := readFileOrInput(c)
	if err != nil {
		return err
	}
	dump, err := hexdump.Encode(data, hexdump.Opts{
		Columns:     c.Int("columns"),
		GroupSize:   c.Int("group-size"),
		ShowOffsets: c.Bool("offsets"),
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(c.App.Writer, dump)
	return err
}

func unhexdumpAction(c *cli.Context) error {
	dump, err := readFileOrInput(c)
	if err != nil {
		return err
	}
	data, err := hexdump.Decode(string(dump))
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(data)
	return err
}

func readFileOrInput(c *cli.Context) ([]byte, error) {
	if c.NArg() > 0 {
		return os.ReadFile(c.Args().First())
	}
	if c.App.Reader == nil {
		return nil, &invalidUsageError{c, c.Command.Name}
	}
	return io.ReadAll(c.App.Reader)
}
