package domain

import "context"

// Document is a read-only, page-addressable source document.
type Document interface {
	// NumPages reports how many pages the document has.
	NumPages() int
	// PageText returns the extracted text of page n (0-based).
	PageText(n int) (string, error)
	Close() error
}

// Source opens the configured source document.
// Returns EUNREADABLE if the document cannot be opened or parsed.
type Source interface {
	Open(ctx context.Context) (Document, error)
}

// Extractor builds a fresh Store from a source document.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (*Store, error)
}

// Translator converts text into the target locale.
// Failures are reported as TranslationUnavailable.
type Translator interface {
	Translate(ctx context.Context, text, targetLocale string) (string, error)
}
