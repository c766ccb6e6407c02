package addrgen

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

const curveConverterName = "secp256k1"

// AddressConverter turns a secret key into the P2PKH address of its public
// key. Implementations must be deterministic: two converters given the same
// secret must return the same address.
type AddressConverter interface {
	Name() string
	Convert(ctx context.Context, secret []byte, compressed bool) (string, error)
}

// CurveConverter derives addresses in process by secp256k1 point
// multiplication, HASH160 and base58check encoding.
type CurveConverter struct {
	net *chaincfg.Params
}

// NewCurveConverter returns a converter producing addresses for net.
func NewCurveConverter(net *chaincfg.Params) *CurveConverter {
	return &CurveConverter{net}
}

func (c *CurveConverter) Name() string {
	return curveConverterName
}

func (c *CurveConverter) Convert(
	_ context.Context, secret []byte, compressed bool,
) (string, error) {
	if c.net == nil {
		return "", ErrNullNetwork
	}
	if err := validateSecret(secret); err != nil {
		return "", err
	}

	_, pubkey := btcec.PrivKeyFromBytes(secret)
	var serialized []byte
	if compressed {
		serialized = pubkey.SerializeCompressed()
	} else {
		serialized = pubkey.SerializeUncompressed()
	}

	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(serialized), c.net)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}
