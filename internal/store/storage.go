// Package store persists the code-to-explanation mapping.
package store

import (
	"context"

	"errkb/internal/domain"
)

// Storage persists a Store as a whole. Save replaces the previous content
// atomically; Load returns ENOTFOUND when nothing was saved yet and ECORRUPT
// when the saved content cannot be decoded.
type Storage interface {
	Save(ctx context.Context, st *domain.Store) error
	Load(ctx context.Context) (*domain.Store, error)
	Exists(ctx context.Context) (bool, error)
}
