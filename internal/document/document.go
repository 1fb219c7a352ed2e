// Package document opens source documents (PDF, plain text, HTML) as
// page-addressable text.
package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"errkb/internal/domain"
)

// Format identifies a source document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// Detect returns the document format based on file extension.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".txt", ".text":
		return FormatText, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", ext)
	}
}

// Open opens the document at path. An empty format is detected from the
// extension.
func Open(path string, format Format) (domain.Document, error) {
	if format == "" {
		f, err := Detect(path)
		if err != nil {
			return nil, domain.WrapError(domain.EUNREADABLE, err, "cannot detect format of %s", path)
		}
		format = f
	}

	var (
		doc domain.Document
		err error
	)
	switch format {
	case FormatPDF:
		doc, err = openPDF(path)
	case FormatText:
		doc, err = openText(path)
	case FormatHTML:
		doc, err = openHTML(path)
	default:
		return nil, domain.Errorf(domain.EUNREADABLE, "unsupported document format %q", format)
	}
	if err != nil {
		return nil, domain.WrapError(domain.EUNREADABLE, err, "cannot read source document %s", path)
	}
	return doc, nil
}

// Ensure Source implements domain.Source at compile time.
var _ domain.Source = (*Source)(nil)

// Source opens a fixed document path on every call.
type Source struct {
	Path   string
	Format Format
}

// NewSource creates a Source for path. Format may be empty.
func NewSource(path string, format Format) *Source {
	return &Source{Path: path, Format: format}
}

// Open opens the source document.
func (s *Source) Open(ctx context.Context) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(s.Path, s.Format)
}

// pages is a fully materialized document.
type pages []string

func (p pages) NumPages() int { return len(p) }

func (p pages) PageText(n int) (string, error) {
	if n < 0 || n >= len(p) {
		return "", fmt.Errorf("page %d out of range (document has %d pages)", n+1, len(p))
	}
	return p[n], nil
}

func (p pages) Close() error { return nil }
