// Package extractor turns the text of an error-message manual into a Store.
//
// Record boundaries are found with a line heuristic: a line that starts with
// the code prefix and contains the separator opens a record, and the record's
// explanation is that line plus the following lines of a fixed window. There
// is no end-of-record detection, so short explanations may pick up unrelated
// trailing lines and long ones are cut off at the window.
package extractor

import (
	"context"
	"regexp"
	"strings"

	"errkb/internal/domain"
)

const (
	DefaultPrefix    = "ORA-"
	DefaultSeparator = ":"
	DefaultWindow    = 5
)

// Ensure Extractor implements domain.Extractor at compile time.
var _ domain.Extractor = (*Extractor)(nil)

// Extractor recognizes error records page by page.
type Extractor struct {
	prefix    string
	separator string
	window    int
	leading   *regexp.Regexp
}

// New creates an Extractor. Empty or non-positive arguments fall back to the
// defaults.
func New(prefix, separator string, window int) *Extractor {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if separator == "" {
		separator = DefaultSeparator
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Extractor{
		prefix:    prefix,
		separator: separator,
		window:    window,
		leading:   leadingCode(prefix),
	}
}

// leadingCode matches a canonical code at the start of a token when it is not
// followed by another letter or digit, so "ORA-00904:invalid" yields
// ORA-00904 while "ORA-0090x:" yields nothing.
func leadingCode(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^(` + regexp.QuoteMeta(prefix) + `[0-9]+)(?:$|[^\p{L}\p{N}])`)
}

// Extract builds a fresh Store from doc. Later occurrences of a code
// overwrite earlier ones.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (*domain.Store, error) {
	st := domain.NewStore()
	for n := 0; n < doc.NumPages(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.PageText(n)
		if err != nil {
			return nil, domain.WrapError(domain.EUNREADABLE, err, "cannot read page %d of source document", n+1)
		}
		lines := splitLines(text)
		for i, line := range lines {
			code, ok := e.recordStart(line)
			if !ok {
				continue
			}
			st.Set(code, joinWindow(lines, i, e.window))
		}
	}
	return st, nil
}

// recordStart reports whether line opens a record and returns its code.
func (e *Extractor) recordStart(line string) (string, bool) {
	if !strings.HasPrefix(line, e.prefix) || !strings.Contains(line, e.separator) {
		return "", false
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	m := e.leading.FindStringSubmatch(fields[0])
	if m == nil {
		return "", false
	}
	return m[1], true
}
