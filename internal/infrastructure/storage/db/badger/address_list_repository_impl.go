package dbbadger

import (
	"context"
	"sort"

	"github.com/tdex-network/keygen/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type addressListRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAddressListRepositoryImpl initialize a badger implementation of the
// domain.AddressListRepository
func NewAddressListRepositoryImpl(
	store *badgerhold.Store,
) domain.AddressListRepository {
	return addressListRepositoryImpl{store}
}

func (r addressListRepositoryImpl) AddAddressList(
	ctx context.Context, list *domain.AddressList,
) error {
	if err := r.store.Insert(list.ID, list); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAddressListAlreadyExists
		}
		return err
	}
	return nil
}

func (r addressListRepositoryImpl) GetAddressList(
	ctx context.Context, id string,
) (*domain.AddressList, error) {
	var list domain.AddressList
	if err := r.store.Get(id, &list); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAddressListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (r addressListRepositoryImpl) GetAddressListsBySeed(
	ctx context.Context, seedChecksum string,
) ([]domain.AddressList, error) {
	query := badgerhold.Where("SeedChecksum").Eq(seedChecksum)
	return r.findAddressLists(ctx, query)
}

func (r addressListRepositoryImpl) GetAllAddressLists(
	ctx context.Context,
) ([]domain.AddressList, error) {
	return r.findAddressLists(ctx, nil)
}

func (r addressListRepositoryImpl) DeleteAddressList(
	ctx context.Context, id string,
) error {
	if err := r.store.Delete(id, domain.AddressList{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return err
	}
	return nil
}

func (r addressListRepositoryImpl) findAddressLists(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.AddressList, error) {
	lists := make([]domain.AddressList, 0)
	if err := r.store.Find(&lists, query); err != nil {
		return nil, err
	}
	sort.Slice(lists, func(i, j int) bool {
		return lists[i].ID < lists[j].ID
	})
	return lists, nil
}
