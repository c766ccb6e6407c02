package addrgen

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const seedChecksumLength = 8

// KeyRecord is the outcome of one derivation step.
type KeyRecord struct {
	Index   uint32
	Secret  []byte
	WIF     string
	Address string
}

// Copy returns a deep copy of the record.
func (r KeyRecord) Copy() KeyRecord {
	secret := make([]byte, len(r.Secret))
	copy(secret, r.Secret)
	r.Secret = secret
	return r
}

// AddressDataset is the ordered list of records produced for a contiguous
// index range of a seed.
type AddressDataset struct {
	SeedChecksum string
	Start        uint32
	End          uint32
	Network      string
	Compressed   bool
	Records      []KeyRecord
}

// Addresses returns the addresses of the dataset in index order.
func (d *AddressDataset) Addresses() []string {
	addresses := make([]string, 0, len(d.Records))
	for _, r := range d.Records {
		addresses = append(addresses, r.Address)
	}
	return addresses
}

// SeedChecksum returns the upper-case first 8 hex chars of the double SHA256
// of the seed, used to label datasets and files.
func SeedChecksum(seed []byte) string {
	sum := chainhash.DoubleHashB(seed)
	return strings.ToUpper(hex.EncodeToString(sum)[:seedChecksumLength])
}
