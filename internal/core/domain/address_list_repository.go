package domain

import "context"

// AddressListRepository is the abstraction for any kind of database
// intended to persist AddressLists.
type AddressListRepository interface {
	// AddAddressList fails with ErrAddressListAlreadyExists if a list with the
	// same ID is already stored.
	AddAddressList(ctx context.Context, list *AddressList) error
	// GetAddressList fails with ErrAddressListNotFound if the list is not
	// stored.
	GetAddressList(ctx context.Context, id string) (*AddressList, error)
	GetAddressListsBySeed(
		ctx context.Context, seedChecksum string,
	) ([]AddressList, error)
	GetAllAddressLists(ctx context.Context) ([]AddressList, error)
	// DeleteAddressList is a no-op if the list is not stored.
	DeleteAddressList(ctx context.Context, id string) error
}
