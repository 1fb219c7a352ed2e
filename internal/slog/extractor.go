// Package slog decorates knowledge-base collaborators with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"errkb/internal/domain"
)

// Ensure LoggingExtractor implements domain.Extractor.
var _ domain.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   domain.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next domain.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs page and record counts.
func (e *LoggingExtractor) Extract(ctx context.Context, doc domain.Document) (st *domain.Store, err error) {
	defer func(begin time.Time) {
		records := 0
		if st != nil {
			records = st.Len()
		}
		e.logger.Info("extract",
			"pages", doc.NumPages(),
			"records", records,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, doc)
}

// Ensure LoggingSource implements domain.Source.
var _ domain.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with debug logging.
type LoggingSource struct {
	next   domain.Source
	name   string
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource. name identifies the document
// in log lines, usually its path.
func NewLoggingSource(next domain.Source, name string, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, name: name, logger: logger}
}

// Open delegates to the wrapped source.
func (s *LoggingSource) Open(ctx context.Context) (doc domain.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("open source document",
			"source", s.name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Open(ctx)
}
