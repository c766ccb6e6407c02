// Package addrgen derives deterministic sequences of secp256k1 keys and P2PKH
// addresses from a seed.
//
// The secret of index i is SHA256(SHA256(SHA512^i(seed))): every index
// depends on all the SHA512 rounds before it, so a range starting at index n
// always costs n rounds, whatever has been generated before.
package addrgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tdex-network/keygen/pkg/wif"
)

// GeneratorOpts ...
type GeneratorOpts struct {
	Seed       []byte
	Start      uint32
	End        uint32
	Compressed bool
	Network    *chaincfg.Params
	// Converter defaults to the curve converter for Network.
	Converter AddressConverter
	// Checkpoints is optional.
	Checkpoints *CheckpointCache
}

func (o GeneratorOpts) validate() error {
	if len(o.Seed) <= 0 {
		return ErrInvalidSeed
	}
	if o.Start < 1 || o.End < o.Start {
		return fmt.Errorf("%w: %d-%d", ErrInvalidRange, o.Start, o.End)
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// Generator produces the records of an index range one at a time. It is not
// safe for concurrent use.
type Generator struct {
	start      uint32
	end        uint32
	compressed bool
	network    *chaincfg.Params
	converter  AddressConverter
	checksum   string

	chain *hashChain
	next  uint32
	done  int
}

// NewGenerator returns a generator for the range [opts.Start, opts.End].
// The seed is copied.
func NewGenerator(opts GeneratorOpts) (*Generator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	converter := opts.Converter
	if converter == nil {
		converter = NewCurveConverter(opts.Network)
	}

	return &Generator{
		start:      opts.Start,
		end:        opts.End,
		compressed: opts.Compressed,
		network:    opts.Network,
		converter:  converter,
		checksum:   SeedChecksum(opts.Seed),
		chain:      newHashChain(opts.Seed, opts.Checkpoints),
		next:       opts.Start,
	}, nil
}

// SeedChecksum returns the checksum of the generator's seed.
func (g *Generator) SeedChecksum() string {
	return g.checksum
}

// Converter returns the address converter in use.
func (g *Generator) Converter() AddressConverter {
	return g.converter
}

// HasNext tells whether Next has records left to produce.
func (g *Generator) HasNext() bool {
	return g.next != 0 && g.next <= g.end
}

// Progress returns the number of indexes consumed so far and the size of the
// range.
func (g *Generator) Progress() (int, int) {
	return g.done, int(g.end-g.start) + 1
}

// Next derives the record of the next index of the range. It returns
// ErrGeneratorDone after the last one. If the secret of the index is not a
// valid private key, ErrInvalidSecretKey is returned and the index is
// skipped.
func (g *Generator) Next(ctx context.Context) (*KeyRecord, error) {
	if !g.HasNext() {
		return nil, ErrGeneratorDone
	}

	index := g.next
	if err := g.chain.advance(ctx, index); err != nil {
		return nil, err
	}
	// Index has been consumed, whatever the outcome of the conversion.
	g.next++
	g.done++

	secret := g.chain.secret()
	if err := validateSecret(secret); err != nil {
		return nil, fmt.Errorf("index %d: %w", index, err)
	}

	wifStr, err := wif.Encode(secret, g.compressed, g.network)
	if err != nil {
		return nil, err
	}
	addr, err := g.converter.Convert(ctx, secret, g.compressed)
	if err != nil {
		return nil, fmt.Errorf("index %d: %w", index, err)
	}

	return &KeyRecord{
		Index:   index,
		Secret:  secret,
		WIF:     wifStr,
		Address: addr,
	}, nil
}

// Generate runs a generator over the whole range and collects its records in
// a dataset. onRecord, if defined, is called after every record.
func Generate(
	ctx context.Context, opts GeneratorOpts, onRecord func(KeyRecord),
) (*AddressDataset, error) {
	g, err := NewGenerator(opts)
	if err != nil {
		return nil, err
	}

	_, total := g.Progress()
	ds := &AddressDataset{
		SeedChecksum: g.SeedChecksum(),
		Start:        opts.Start,
		End:          opts.End,
		Network:      opts.Network.Name,
		Compressed:   opts.Compressed,
		Records:      make([]KeyRecord, 0, total),
	}

	for {
		record, err := g.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrGeneratorDone) {
				break
			}
			return nil, err
		}
		ds.Records = append(ds.Records, *record)
		if onRecord != nil {
			onRecord(record.Copy())
		}
	}

	return ds, nil
}
