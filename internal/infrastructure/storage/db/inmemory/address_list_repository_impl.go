package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/keygen/internal/core/domain"
)

type addressListInmemoryStore struct {
	lists  map[string]domain.AddressList
	locker *sync.RWMutex
}

type AddressListRepositoryImpl struct {
	store *addressListInmemoryStore
}

// NewAddressListRepositoryImpl returns a new empty AddressListRepositoryImpl
func NewAddressListRepositoryImpl() domain.AddressListRepository {
	return &AddressListRepositoryImpl{
		store: &addressListInmemoryStore{
			lists:  map[string]domain.AddressList{},
			locker: &sync.RWMutex{},
		},
	}
}

func (r AddressListRepositoryImpl) AddAddressList(
	ctx context.Context, list *domain.AddressList,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.lists[list.ID]; ok {
		return domain.ErrAddressListAlreadyExists
	}
	r.store.lists[list.ID] = copyAddressList(*list)
	return nil
}

func (r AddressListRepositoryImpl) GetAddressList(
	ctx context.Context, id string,
) (*domain.AddressList, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	list, ok := r.store.lists[id]
	if !ok {
		return nil, domain.ErrAddressListNotFound
	}
	list = copyAddressList(list)
	return &list, nil
}

func (r AddressListRepositoryImpl) GetAddressListsBySeed(
	ctx context.Context, seedChecksum string,
) ([]domain.AddressList, error) {
	return r.find(func(l domain.AddressList) bool {
		return l.SeedChecksum == seedChecksum
	}), nil
}

func (r AddressListRepositoryImpl) GetAllAddressLists(
	ctx context.Context,
) ([]domain.AddressList, error) {
	return r.find(nil), nil
}

func (r AddressListRepositoryImpl) DeleteAddressList(
	ctx context.Context, id string,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	delete(r.store.lists, id)
	return nil
}

func (r AddressListRepositoryImpl) find(
	filter func(domain.AddressList) bool,
) []domain.AddressList {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	result := make([]domain.AddressList, 0)
	for _, l := range r.store.lists {
		if filter == nil || filter(l) {
			result = append(result, copyAddressList(l))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

func copyAddressList(l domain.AddressList) domain.AddressList {
	addresses := make([]string, len(l.Addresses))
	copy(addresses, l.Addresses)
	l.Addresses = addresses
	return l
}
