package repository

import (
	"time"
)

// Repositories 仓库集合
type Repositories struct {
	User    *UserRepository
	Catalog *CatalogRepository
	Ledgers *LedgerRegistry
}

// NewRepositories 初始化全部仓库
func NewRepositories(usersFile string, sessionTTL time.Duration) (*Repositories, error) {
	userRepo, err := NewUserRepository(NewStore(usersFile))
	if err != nil {
		return nil, err
	}

	return &Repositories{
		User:    userRepo,
		Catalog: NewCatalogRepository(),
		Ledgers: NewLedgerRegistry(sessionTTL),
	}, nil
}
