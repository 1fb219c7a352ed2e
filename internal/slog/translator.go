package slog

import (
	"context"
	"log/slog"
	"time"

	"errkb/internal/domain"
)

// Ensure LoggingTranslator implements domain.Translator.
var _ domain.Translator = (*LoggingTranslator)(nil)

// LoggingTranslator wraps a Translator with logging. Failures are logged
// with their diagnostic, which never reaches the user.
type LoggingTranslator struct {
	next   domain.Translator
	logger *slog.Logger
}

// NewLoggingTranslator creates a new LoggingTranslator.
func NewLoggingTranslator(next domain.Translator, logger *slog.Logger) *LoggingTranslator {
	return &LoggingTranslator{next: next, logger: logger}
}

// Translate delegates to the wrapped translator.
func (t *LoggingTranslator) Translate(ctx context.Context, text, targetLocale string) (out string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		t.logger.Log(ctx, level, "translate",
			"locale", targetLocale,
			"chars", len([]rune(text)),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Translate(ctx, text, targetLocale)
}
