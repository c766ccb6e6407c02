package ports

import "github.com/tdex-network/keygen/internal/core/domain"

// RepoManager interface defines the methods to access the repositories of
// the keygen domain.
type RepoManager interface {
	AddressListRepository() domain.AddressListRepository

	Close()
}
