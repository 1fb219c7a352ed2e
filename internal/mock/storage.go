package mock

import (
	"context"

	"errkb/internal/domain"
	"errkb/internal/store"
)

var _ store.Storage = (*Storage)(nil)

// Storage is a mock implementation of store.Storage.
type Storage struct {
	SaveFn   func(ctx context.Context, st *domain.Store) error
	LoadFn   func(ctx context.Context) (*domain.Store, error)
	ExistsFn func(ctx context.Context) (bool, error)
}

func (s *Storage) Save(ctx context.Context, st *domain.Store) error {
	return s.SaveFn(ctx, st)
}

func (s *Storage) Load(ctx context.Context) (*domain.Store, error) {
	return s.LoadFn(ctx)
}

func (s *Storage) Exists(ctx context.Context) (bool, error) {
	return s.ExistsFn(ctx)
}
