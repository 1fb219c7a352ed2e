package mock

import (
	"context"
	"fmt"

	"errkb/internal/domain"
)

var _ domain.Document = (*Document)(nil)

// Document is a mock implementation of domain.Document.
type Document struct {
	NumPagesFn func() int
	PageTextFn func(n int) (string, error)
	CloseFn    func() error
}

// NewDocument returns a Document serving the given page texts.
func NewDocument(pages ...string) *Document {
	return &Document{
		NumPagesFn: func() int { return len(pages) },
		PageTextFn: func(n int) (string, error) {
			if n < 0 || n >= len(pages) {
				return "", fmt.Errorf("page %d out of range", n)
			}
			return pages[n], nil
		},
	}
}

func (d *Document) NumPages() int {
	return d.NumPagesFn()
}

func (d *Document) PageText(n int) (string, error) {
	return d.PageTextFn(n)
}

func (d *Document) Close() error {
	if d.CloseFn == nil {
		return nil
	}
	return d.CloseFn()
}

var _ domain.Source = (*Source)(nil)

// Source is a mock implementation of domain.Source.
type Source struct {
	OpenFn func(ctx context.Context) (domain.Document, error)
}

func (s *Source) Open(ctx context.Context) (domain.Document, error) {
	return s.OpenFn(ctx)
}
