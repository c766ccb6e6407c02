package main

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/tdex-network/keygen/internal/config"
	"github.com/tdex-network/keygen/pkg/addrgen"
	"github.com/tdex-network/keygen/pkg/wif"
	"github.com/urfave/cli/v2"
)

var compressedFlag = cli.BoolFlag{
	Name:  "compressed",
	Usage: "use compressed public keys, defaults to KEYGEN_COMPRESSED",
}

var randwif = cli.Command{
	Name:   "randwif",
	Usage:  "generate a random private key in WIF format",
	Flags:  []cli.Flag{&compressedFlag},
	Action: randWifAction,
}

var randpair = cli.Command{
	Name:   "randpair",
	Usage:  "generate a random private key/address pair",
	Flags:  []cli.Flag{&compressedFlag},
	Action: randPairAction,
}

var wif2addr = cli.Command{
	Name:      "wif2addr",
	Usage:     "derive the address of a private key in WIF format",
	ArgsUsage: "<wif>",
	Action:    wifToAddrAction,
}

func randWifAction(c *cli.Context) error {
	key, err := randomWif(c)
	if err != nil {
		return err
	}
	printLine(c, key)
	return nil
}

func randPairAction(c *cli.Context) error {
	key, err := randomWif(c)
	if err != nil {
		return err
	}
	addr, err := wifToAddress(c, key)
	if err != nil {
		return err
	}
	printLine(c, key)
	printLine(c, addr)
	return nil
}

func wifToAddrAction(c *cli.Context) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}
	addr, err := wifToAddress(c, in)
	if err != nil {
		return err
	}
	printLine(c, addr)
	return nil
}

func randomWif(c *cli.Context) (string, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return "", err
	}
	return wif.Encode(key.Serialize(), isCompressed(c), config.GetNetwork())
}

func wifToAddress(c *cli.Context, s string) (string, error) {
	net := config.GetNetwork()
	key, err := wif.Decode(s, net)
	if err != nil {
		return "", err
	}
	return addrgen.NewCurveConverter(net).Convert(c.Context, key.Key, key.Compressed)
}

func isCompressed(c *cli.Context) bool {
	if c.IsSet(compressedFlag.Name) {
		return c.Bool(compressedFlag.Name)
	}
	return config.GetBool(config.CompressedKey)
}
