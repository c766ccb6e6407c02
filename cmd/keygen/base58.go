package main

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/tdex-network/keygen/pkg/base58"
	"github.com/urfave/cli/v2"
)

const randomDataLength = 32

var strtob58 = cli.Command{
	Name:      "strtob58",
	Usage:     "convert a string to base58",
	ArgsUsage: "<string>",
	Action:    strToB58Action,
}

var hextob58 = cli.Command{
	Name:      "hextob58",
	Usage:     "convert hexadecimal data to base58",
	ArgsUsage: "<hex>",
	Action:    hexToB58Action,
}

var b58tohex = cli.Command{
	Name:      "b58tohex",
	Usage:     "convert base58 data to hexadecimal",
	ArgsUsage: "<base58>",
	Action:    b58ToHexAction,
}

var b58randenc = cli.Command{
	Name:   "b58randenc",
	Usage:  "generate a random 32-byte number and encode it in base58",
	Action: b58RandEncAction,
}

func strToB58Action(c *cli.Context) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}
	printLine(c, base58.Encode([]byte(in)))
	return nil
}

func hexToB58Action(c *cli.Context) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(in)
	if err != nil {
		return err
	}
	printLine(c, base58.Encode(data))
	return nil
}

func b58ToHexAction(c *cli.Context) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}
	data, err := base58.Decode(in)
	if err != nil {
		return err
	}
	printLine(c, hex.EncodeToString(data))
	return nil
}

func b58RandEncAction(c *cli.Context) error {
	data := make([]byte, randomDataLength)
	if _, err := rand.Read(data); err != nil {
		return err
	}
	printLine(c, base58.Encode(data))
	return nil
}
