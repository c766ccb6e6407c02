package domain

import (
	"fmt"
	"time"

	"github.com/tdex-network/keygen/pkg/addrgen"
)

// AddressList is the persisted outcome of a generation run over an index
// range of a seed. Only public data is stored: no secret key ever reaches
// the repository.
type AddressList struct {
	ID           string
	SeedChecksum string
	Start        uint32
	End          uint32
	Network      string
	Compressed   bool
	Converter    string
	Addresses    []string
	RunID        string
	CreatedAt    int64
}

// MakeAddressListID returns the identifier of the address list of the given
// seed, range, network and compression mode, like "BE2EF497[1-3]:mainnet"
// or "BE2EF497[1-3]:mainnet:c" for compressed keys.
func MakeAddressListID(
	seedChecksum string, start, end uint32, network string, compressed bool,
) string {
	id := fmt.Sprintf(
		"%s[%s]:%s", seedChecksum, addrgen.IndexRange{Start: start, End: end}, network,
	)
	if compressed {
		id += ":c"
	}
	return id
}

// NewAddressList extracts the public part of the dataset.
func NewAddressList(
	ds *addrgen.AddressDataset, converter, runID string,
) (*AddressList, error) {
	if ds == nil || len(ds.Records) <= 0 {
		return nil, ErrEmptyAddressList
	}
	if len(ds.Records) != int(ds.End-ds.Start)+1 {
		return nil, fmt.Errorf(
			"%w: expected %d addresses, got %d",
			ErrInvalidAddressList, ds.End-ds.Start+1, len(ds.Records),
		)
	}

	return &AddressList{
		ID: MakeAddressListID(
			ds.SeedChecksum, ds.Start, ds.End, ds.Network, ds.Compressed,
		),
		SeedChecksum: ds.SeedChecksum,
		Start:        ds.Start,
		End:          ds.End,
		Network:      ds.Network,
		Compressed:   ds.Compressed,
		Converter:    converter,
		Addresses:    ds.Addresses(),
		RunID:        runID,
		CreatedAt:    time.Now().Unix(),
	}, nil
}

// Verify makes sure that the addresses of a regenerated dataset match the
// stored ones.
func (l *AddressList) Verify(ds *addrgen.AddressDataset) error {
	if ds.SeedChecksum != l.SeedChecksum {
		return fmt.Errorf(
			"%w: seed checksum %s, expected %s",
			ErrAddressMismatch, ds.SeedChecksum, l.SeedChecksum,
		)
	}
	if len(ds.Records) != len(l.Addresses) {
		return fmt.Errorf(
			"%w: got %d addresses, expected %d",
			ErrAddressMismatch, len(ds.Records), len(l.Addresses),
		)
	}
	for i, r := range ds.Records {
		if r.Address != l.Addresses[i] {
			return fmt.Errorf(
				"%w: index %d has address %s, expected %s",
				ErrAddressMismatch, r.Index, r.Address, l.Addresses[i],
			)
		}
	}
	return nil
}

// Address returns the stored address of the given index.
func (l *AddressList) Address(index uint32) (string, bool) {
	if index < l.Start || index > l.End {
		return "", false
	}
	return l.Addresses[index-l.Start], true
}
