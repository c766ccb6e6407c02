package main

import (
	"fmt"
	"time"

	"github.com/tdex-network/keygen/internal/config"
	"github.com/urfave/cli/v2"
)

var listAddresses = cli.Command{
	Name:  "list",
	Usage: "list the stored address lists",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "seed-checksum",
			Usage: "show only the lists of the seed with the given checksum",
		},
	},
	Action: listAddressesAction,
}

func listAddressesAction(c *cli.Context) error {
	cfg := config.GetApplicationConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	defer cfg.Close()

	lists, err := cfg.KeygenService().GetAddressLists(
		c.Context, c.String("seed-checksum"),
	)
	if err != nil {
		return err
	}

	for _, l := range lists {
		printLine(c, fmt.Sprintf(
			"%s\t%d addresses\t%s\t%s",
			l.ID, len(l.Addresses), l.Converter,
			time.Unix(l.CreatedAt, 0).UTC().Format(time.RFC3339),
		))
	}
	return nil
}
