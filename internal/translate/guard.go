// Package translate wraps a translation backend with rate limiting and
// bounded retries.
package translate

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"errkb/internal/domain"
)

// Ensure Guard implements domain.Translator at compile time.
var _ domain.Translator = (*Guard)(nil)

// GuardConfig configures a Guard.
type GuardConfig struct {
	// RequestsPerSecond limits calls to the backend. Zero disables the limit.
	RequestsPerSecond float64
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// InitialInterval is the first backoff delay. Defaults to 200ms.
	InitialInterval time.Duration
	// Timeout bounds each attempt. Zero means no per-attempt limit.
	Timeout time.Duration
}

// Guard rate-limits and retries a Translator. Every failure it returns is a
// *domain.TranslationUnavailable.
type Guard struct {
	next            domain.Translator
	limiter         *rate.Limiter
	maxRetries      uint64
	initialInterval time.Duration
	timeout         time.Duration
}

// NewGuard wraps next.
func NewGuard(next domain.Translator, cfg GuardConfig) *Guard {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 200 * time.Millisecond
	}
	return &Guard{
		next:            next,
		limiter:         rate.NewLimiter(limit, 1),
		maxRetries:      uint64(cfg.MaxRetries),
		initialInterval: cfg.InitialInterval,
		timeout:         cfg.Timeout,
	}
}

// Translate calls the wrapped translator, retrying transient failures with
// exponential backoff. Invalid input is not retried.
func (g *Guard) Translate(ctx context.Context, text, targetLocale string) (string, error) {
	var out string
	op := func() error {
		if err := g.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		s, err := g.attempt(ctx, text, targetLocale)
		if err != nil {
			if domain.ErrorCode(err) == domain.EINVALID {
				return backoff.Permanent(err)
			}
			return err
		}
		out = s
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.initialInterval
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 10 * time.Second
	b.RandomizationFactor = 0.1

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, g.maxRetries), ctx)); err != nil {
		return "", domain.NewTranslationUnavailable(err)
	}
	return out, nil
}

func (g *Guard) attempt(ctx context.Context, text, targetLocale string) (string, error) {
	if g.timeout <= 0 {
		return g.next.Translate(ctx, text, targetLocale)
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.next.Translate(ctx, text, targetLocale)
}
