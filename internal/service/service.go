package service

import (
	"context"
	"strings"
	"time"

	"errkb/internal/domain"
	"errkb/internal/search"
	"errkb/internal/store"
)

// Refresher hands out the current Store snapshot and rebuilds it on demand.
type Refresher interface {
	Snapshot(ctx context.Context) (*domain.Store, error)
	Reload(ctx context.Context) (*domain.Store, error)
}

// LookupResult is a resolved error code. TranslationErr is set when a
// translator is configured and failed; the explanation is still valid.
type LookupResult struct {
	Code           string
	Explanation    string
	Match          search.MatchKind
	Translation    string
	TargetLocale   string
	TranslationErr *domain.TranslationUnavailable
}

// SearchResult holds every record matching Keyword. No records is a normal
// outcome.
type SearchResult struct {
	Keyword string
	Records []domain.ErrorRecord
}

// ReloadResult confirms a rebuild.
type ReloadResult struct {
	Records  int
	Digest   string
	Duration time.Duration
}

// Options configures a Service.
type Options struct {
	// OperatorID is the only caller allowed to reload. Empty disables reload.
	OperatorID string
	// TargetLocale is the translation target, e.g. "tr".
	TargetLocale string
}

// Service answers lookups and searches against the knowledge base.
type Service struct {
	refresher    Refresher
	engine       *search.Engine
	translator   domain.Translator
	operatorID   string
	targetLocale string
}

// New creates a Service. translator may be nil to disable translation.
func New(refresher Refresher, engine *search.Engine, translator domain.Translator, opts Options) *Service {
	return &Service{
		refresher:    refresher,
		engine:       engine,
		translator:   translator,
		operatorID:   opts.OperatorID,
		targetLocale: opts.TargetLocale,
	}
}

// Lookup resolves an error code. Returns ENOTFOUND when nothing matches.
func (s *Service) Lookup(ctx context.Context, code string) (*LookupResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domain.Errorf(domain.EINVALID, "error code required")
	}
	st, err := s.refresher.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	hit, ok := s.engine.Lookup(st, code)
	if !ok {
		return nil, domain.Errorf(domain.ENOTFOUND, "error code %q not found", search.NormalizeCode(code))
	}

	res := &LookupResult{Code: hit.Code, Explanation: hit.Explanation, Match: hit.Match}
	if s.translator == nil {
		return res, nil
	}
	res.TargetLocale = s.targetLocale
	text, err := s.translator.Translate(ctx, hit.Explanation, s.targetLocale)
	if err != nil {
		res.TranslationErr = domain.NewTranslationUnavailable(err)
		return res, nil
	}
	res.Translation = text
	return res, nil
}

// Search returns all records matching keyword in store order.
func (s *Service) Search(ctx context.Context, keyword string) (*SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.Errorf(domain.EINVALID, "keyword required")
	}
	st, err := s.refresher.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Keyword: keyword, Records: s.engine.Search(st, keyword)}, nil
}

// Reload rebuilds the knowledge base from the source document. Only the
// operator may reload; anyone else gets EUNAUTHORIZED and nothing changes.
func (s *Service) Reload(ctx context.Context, callerID string) (*ReloadResult, error) {
	if s.operatorID == "" || callerID != s.operatorID {
		return nil, domain.Errorf(domain.EUNAUTHORIZED, "reload is restricted to the operator")
	}
	begin := time.Now()
	st, err := s.refresher.Reload(ctx)
	if err != nil {
		return nil, err
	}
	return &ReloadResult{Records: st.Len(), Digest: store.Digest(st), Duration: time.Since(begin)}, nil
}
