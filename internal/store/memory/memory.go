package memory

import (
	"context"
	"sync"

	"errkb/internal/domain"
	"errkb/internal/store"
)

// Ensure Storage implements store.Storage at compile time.
var _ store.Storage = (*Storage)(nil)

// Storage is an in-memory store.Storage. It keeps a private copy of the last
// saved Store and hands out copies on Load.
type Storage struct {
	mu    sync.RWMutex
	saved *domain.Store
	saves int
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Save(ctx context.Context, st *domain.Store) error {
	c := st.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = c
	s.saves++
	return nil
}

func (s *Storage) Load(ctx context.Context) (*domain.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.saved == nil {
		return nil, domain.Errorf(domain.ENOTFOUND, "store has not been saved")
	}
	return s.saved.Clone(), nil
}

func (s *Storage) Exists(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved != nil, nil
}

// Saves returns how many times Save was called.
func (s *Storage) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
