package mock

import (
	"context"

	"errkb/internal/domain"
)

var _ domain.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of domain.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, doc domain.Document) (*domain.Store, error)
}

func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (*domain.Store, error) {
	return e.ExtractFn(ctx, doc)
}
