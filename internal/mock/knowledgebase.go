package mock

import (
	"context"

	"errkb/internal/chat"
	"errkb/internal/service"
)

var _ chat.Service = (*KnowledgeBase)(nil)

// KnowledgeBase is a mock implementation of chat.Service.
type KnowledgeBase struct {
	LookupFn func(ctx context.Context, code string) (*service.LookupResult, error)
	SearchFn func(ctx context.Context, keyword string) (*service.SearchResult, error)
	ReloadFn func(ctx context.Context, callerID string) (*service.ReloadResult, error)
}

func (k *KnowledgeBase) Lookup(ctx context.Context, code string) (*service.LookupResult, error) {
	return k.LookupFn(ctx, code)
}

func (k *KnowledgeBase) Search(ctx context.Context, keyword string) (*service.SearchResult, error) {
	return k.SearchFn(ctx, keyword)
}

func (k *KnowledgeBase) Reload(ctx context.Context, callerID string) (*service.ReloadResult, error) {
	return k.ReloadFn(ctx, callerID)
}
