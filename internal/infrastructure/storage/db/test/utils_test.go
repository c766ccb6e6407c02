package db_test

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/tdex-network/keygen/internal/core/domain"
)

func makeRandomAddressList(start, end uint32) *domain.AddressList {
	return makeAddressList(randomChecksum(), start, end)
}

func makeAddressList(seedChecksum string, start, end uint32) *domain.AddressList {
	addresses := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		addresses = append(addresses, randomHex(20))
	}
	return &domain.AddressList{
		ID:           domain.MakeAddressListID(seedChecksum, start, end, "mainnet", false),
		SeedChecksum: seedChecksum,
		Start:        start,
		End:          end,
		Network:      "mainnet",
		Converter:    "secp256k1",
		Addresses:    addresses,
		RunID:        randomId(),
		CreatedAt:    time.Now().Unix(),
	}
}

func randomChecksum() string {
	return hex.EncodeToString(randomBytes(4))
}

func randomHex(len int) string {
	return hex.EncodeToString(randomBytes(len))
}

func randomId() string {
	return uuid.New().String()
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}
