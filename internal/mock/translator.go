package mock

import (
	"context"

	"errkb/internal/domain"
)

var _ domain.Translator = (*Translator)(nil)

// Translator is a mock implementation of domain.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, text, targetLocale string) (string, error)
}

func (t *Translator) Translate(ctx context.Context, text, targetLocale string) (string, error) {
	return t.TranslateFn(ctx, text, targetLocale)
}
