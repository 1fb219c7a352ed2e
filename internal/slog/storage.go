package slog

import (
	"context"
	"log/slog"
	"time"

	"errkb/internal/domain"
	"errkb/internal/store"
)

// Ensure LoggingStorage implements store.Storage.
var _ store.Storage = (*LoggingStorage)(nil)

// LoggingStorage wraps a Storage with logging. Saves are logged at info
// level, loads and existence checks at debug.
type LoggingStorage struct {
	next   store.Storage
	logger *slog.Logger
}

// NewLoggingStorage creates a new LoggingStorage.
func NewLoggingStorage(next store.Storage, logger *slog.Logger) *LoggingStorage {
	return &LoggingStorage{next: next, logger: logger}
}

// Save delegates to the wrapped storage and logs the record count and digest.
func (s *LoggingStorage) Save(ctx context.Context, st *domain.Store) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save store",
			"records", st.Len(),
			"digest", store.Digest(st),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, st)
}

// Load delegates to the wrapped storage.
func (s *LoggingStorage) Load(ctx context.Context) (st *domain.Store, err error) {
	defer func(begin time.Time) {
		records := 0
		if st != nil {
			records = st.Len()
		}
		s.logger.Debug("load store",
			"records", records,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Exists delegates to the wrapped storage.
func (s *LoggingStorage) Exists(ctx context.Context) (exists bool, err error) {
	defer func() {
		s.logger.Debug("store exists", "exists", exists, "err", err)
	}()
	return s.next.Exists(ctx)
}
