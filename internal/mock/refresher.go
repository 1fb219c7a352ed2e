package mock

import (
	"context"

	"errkb/internal/domain"
	"errkb/internal/service"
)

var _ service.Refresher = (*Refresher)(nil)

// Refresher is a mock implementation of service.Refresher.
type Refresher struct {
	SnapshotFn func(ctx context.Context) (*domain.Store, error)
	ReloadFn   func(ctx context.Context) (*domain.Store, error)
}

func (r *Refresher) Snapshot(ctx context.Context) (*domain.Store, error) {
	return r.SnapshotFn(ctx)
}

func (r *Refresher) Reload(ctx context.Context) (*domain.Store, error) {
	return r.ReloadFn(ctx)
}
