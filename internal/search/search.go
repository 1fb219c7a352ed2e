// Package search resolves error codes and keywords against a Store.
//
// Both operations are linear scans in Store iteration order. That is fine for
// a reference manual (a few thousand codes); an inverted keyword index would
// be the place to start if that ever changes.
package search

import (
	"strings"
	"unicode"

	"errkb/internal/domain"
)

// MatchKind tells how a lookup was resolved.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchPartial MatchKind = "partial"
)

// Hit is a resolved lookup.
type Hit struct {
	Code        string
	Explanation string
	Match       MatchKind
}

// Engine runs lookups and keyword searches. Prefix is the code prefix that
// keyword search strips before matching codes (e.g. "ORA-").
type Engine struct {
	prefix string
}

// NewEngine creates an Engine for codes starting with prefix.
func NewEngine(prefix string) *Engine {
	return &Engine{prefix: strings.ToLower(prefix)}
}

// NormalizeCode trims and uppercases a user-supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup resolves code against st. An exact key wins; otherwise the first
// key in iteration order that contains the normalized code is returned. The
// partial match is "first wins", not "most specific wins". An empty code
// never matches.
func (e *Engine) Lookup(st *domain.Store, code string) (Hit, bool) {
	code = NormalizeCode(code)
	if code == "" {
		return Hit{}, false
	}
	if explanation, ok := st.Get(code); ok {
		return Hit{Code: code, Explanation: explanation, Match: MatchExact}, true
	}
	for _, r := range st.Records() {
		if strings.Contains(r.Code, code) {
			return Hit{Code: r.Code, Explanation: r.Explanation, Match: MatchPartial}, true
		}
	}
	return Hit{}, false
}

// Search returns every record matching keyword, in iteration order. A record
// matches when the lowercased keyword occurs in its code or explanation, when
// the keyword without the code prefix occurs in its code, or when the keyword
// is all digits and occurs in the code as written. A blank keyword matches
// nothing; callers are expected to reject it first.
func (e *Engine) Search(st *domain.Store, keyword string) []domain.ErrorRecord {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil
	}
	stripped := kw
	if e.prefix != "" {
		stripped = strings.ReplaceAll(kw, e.prefix, "")
	}
	numeric := isDigits(kw)

	var out []domain.ErrorRecord
	for _, r := range st.Records() {
		code := strings.ToLower(r.Code)
		switch {
		case strings.Contains(code, kw),
			strings.Contains(strings.ToLower(r.Explanation), kw),
			strings.Contains(code, stripped),
			numeric && strings.Contains(r.Code, kw):
			out = append(out, r)
		}
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
