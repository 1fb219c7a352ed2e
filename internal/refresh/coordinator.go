// Package refresh decides when the Store must be rebuilt from the source
// document and publishes rebuilt snapshots.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"errkb/internal/domain"
	"errkb/internal/store"
)

// State of the coordinator.
type State int

const (
	// Stale means no snapshot is loaded; the next request builds one.
	Stale State = iota
	// Fresh means a snapshot is loaded and served as is.
	Fresh
)

func (s State) String() string {
	if s == Fresh {
		return "fresh"
	}
	return "stale"
}

// Coordinator owns the current Store snapshot.
//
// While Stale, the first request loads the persisted store, or rebuilds it
// from the source document when the file is missing or corrupt. Reload
// rebuilds unconditionally. Rebuilds are serialized and coalesced, and
// readers keep using the previous snapshot until the new one has been saved
// and swapped in. There is no background refresh.
type Coordinator struct {
	source    domain.Source
	extractor domain.Extractor
	storage   store.Storage
	logger    *slog.Logger

	group   singleflight.Group
	mu      sync.Mutex // serializes load and rebuild
	current atomic.Pointer[domain.Store]
}

// New creates a Stale Coordinator.
func New(source domain.Source, extractor domain.Extractor, storage store.Storage, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{
		source:    source,
		extractor: extractor,
		storage:   storage,
		logger:    logger,
	}
}

// State reports whether a snapshot is loaded.
func (c *Coordinator) State() State {
	if c.current.Load() != nil {
		return Fresh
	}
	return Stale
}

// Snapshot returns the current Store, loading or building it first when the
// coordinator is Stale.
func (c *Coordinator) Snapshot(ctx context.Context) (*domain.Store, error) {
	if st := c.current.Load(); st != nil {
		return st, nil
	}
	return c.do(ctx, "load", c.load)
}

// Reload rebuilds the Store from the source document and returns the new
// snapshot. On failure the previous snapshot stays in place.
func (c *Coordinator) Reload(ctx context.Context) (*domain.Store, error) {
	return c.do(ctx, "rebuild", c.rebuild)
}

// do runs fn once per key for all concurrent callers. The rebuild is not
// canceled when the triggering caller goes away.
func (c *Coordinator) do(ctx context.Context, key string, fn func(context.Context) (*domain.Store, error)) (*domain.Store, error) {
	ctx = context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return fn(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Store), nil
}

func (c *Coordinator) load(ctx context.Context) (*domain.Store, error) {
	// Another caller may have finished a rebuild while we waited for mu.
	if st := c.current.Load(); st != nil {
		return st, nil
	}

	exists, err := c.storage.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		c.logger.Info("store missing, building from source document")
		return c.rebuild(ctx)
	}

	st, err := c.storage.Load(ctx)
	switch code := domain.ErrorCode(err); {
	case err == nil:
		c.current.Store(st)
		return st, nil
	case code == domain.ECORRUPT || code == domain.ENOTFOUND:
		c.logger.Warn("store unusable, rebuilding from source document", "err", err)
		return c.rebuild(ctx)
	default:
		return nil, err
	}
}

func (c *Coordinator) rebuild(ctx context.Context) (*domain.Store, error) {
	doc, err := c.source.Open(ctx)
	if err != nil {
		if domain.ErrorCode(err) == domain.EINTERNAL {
			err = domain.WrapError(domain.EUNREADABLE, err, "cannot open source document")
		}
		return nil, err
	}
	defer doc.Close()

	st, err := c.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}
	if st.Len() == 0 {
		return nil, domain.Errorf(domain.EUNREADABLE, "source document contains no error records")
	}
	if err := c.storage.Save(ctx, st); err != nil {
		return nil, err
	}
	c.current.Store(st)
	return st, nil
}
