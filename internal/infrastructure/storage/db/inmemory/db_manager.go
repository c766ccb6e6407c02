package inmemory

import (
	"github.com/tdex-network/keygen/internal/core/domain"
	"github.com/tdex-network/keygen/internal/core/ports"
)

type RepoManager struct {
	addressListRepository domain.AddressListRepository
}

func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		addressListRepository: NewAddressListRepositoryImpl(),
	}
}

func (d *RepoManager) AddressListRepository() domain.AddressListRepository {
	return d.addressListRepository
}

func (d *RepoManager) Close() {}
