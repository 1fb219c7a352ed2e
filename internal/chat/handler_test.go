package chat_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"errkb/internal/chat"
	"errkb/internal/domain"
	"errkb/internal/mock"
	"errkb/internal/search"
	"errkb/internal/service"
)

func TestHandler_Lookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *service.LookupResult
		err    error
		want   string
	}{
		{
			name:   "original only",
			result: &service.LookupResult{Code: "ORA-00942", Explanation: "ORA-00942: table or view does not exist"},
			want:   "Original:\nORA-00942: table or view does not exist",
		},
		{
			name: "with translation",
			result: &service.LookupResult{
				Code:         "ORA-00942",
				Explanation:  "ORA-00942: table or view does not exist",
				Translation:  "ORA-00942: tablo veya görünüm mevcut değil",
				TargetLocale: "tr",
			},
			want: "Original:\nORA-00942: table or view does not exist\n\nTranslation (tr):\nORA-00942: tablo veya görünüm mevcut değil",
		},
		{
			name: "translation unavailable",
			result: &service.LookupResult{
				Code:           "ORA-00942",
				Explanation:    "ORA-00942: table or view does not exist",
				TargetLocale:   "tr",
				TranslationErr: domain.NewTranslationUnavailable(errors.New("quota exceeded")),
			},
			want: "Original:\nORA-00942: table or view does not exist\n\nWarning: Translation is currently unavailable.",
		},
		{
			name: "not found",
			err:  domain.Errorf(domain.ENOTFOUND, "error code %q not found", "ORA-99999"),
			want: "This error code was not found in the knowledge base.",
		},
		{
			name: "internal failure",
			err:  errors.New("disk on fire"),
			want: "Something went wrong. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotCode string
			kb := &mock.KnowledgeBase{
				LookupFn: func(_ context.Context, code string) (*service.LookupResult, error) {
					gotCode = code
					return tt.result, tt.err
				},
			}
			h := chat.NewHandler(kb, chat.Options{Prefix: "ORA-"}, nil)

			reply := h.Handle(context.Background(), chat.Message{SenderID: "7", Text: "  ora-00942 "})

			assert.Equal(t, tt.want, reply)
			assert.Equal(t, "ora-00942", gotCode)
		})
	}
}

func TestHandler_Search(t *testing.T) {
	t.Parallel()

	t.Run("usage without keyword", func(t *testing.T) {
		t.Parallel()

		h := chat.NewHandler(&mock.KnowledgeBase{}, chat.Options{}, nil)

		reply := h.Handle(context.Background(), chat.Message{Text: "/search"})

		assert.Equal(t, "Please enter a keyword. Example: /search column", reply)
	})

	t.Run("no results", func(t *testing.T) {
		t.Parallel()

		kb := &mock.KnowledgeBase{
			SearchFn: func(_ context.Context, keyword string) (*service.SearchResult, error) {
				return &service.SearchResult{Keyword: keyword}, nil
			},
		}
		h := chat.NewHandler(kb, chat.Options{}, nil)

		reply := h.Handle(context.Background(), chat.Message{Text: "/search   tablespace   quota"})

		assert.Equal(t, "No results found for 'tablespace quota'.", reply)
	})

	t.Run("truncates to display limit and snippet length", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("é", 200)
		var records []domain.ErrorRecord
		for i := 1; i <= 7; i++ {
			records = append(records, domain.ErrorRecord{Code: fmt.Sprintf("ORA-0000%d", i), Explanation: long})
		}
		records[0].Explanation = "short"
		kb := &mock.KnowledgeBase{
			SearchFn: func(_ context.Context, keyword string) (*service.SearchResult, error) {
				assert.Equal(t, "column", keyword)
				return &service.SearchResult{Keyword: keyword, Records: records}, nil
			},
		}
		h := chat.NewHandler(kb, chat.Options{}, nil)

		reply := h.Handle(context.Background(), chat.Message{Text: "/search@errkb_bot column"})

		lines := strings.Split(reply, "\n")
		require.Len(t, lines, 9)
		assert.Equal(t, "Results for 'column':", lines[0])
		assert.Equal(t, "", lines[1])
		assert.Equal(t, "ORA-00001: short", lines[2])
		assert.Equal(t, "ORA-00002: "+strings.Repeat("é", 150)+"...", lines[3])
		assert.Equal(t, "ORA-00005: "+strings.Repeat("é", 150)+"...", lines[6])
		assert.NotContains(t, reply, "ORA-00006")
		assert.Equal(t, "Showing 5 of 7 results.", lines[8])
	})

	t.Run("custom limits", func(t *testing.T) {
		t.Parallel()

		kb := &mock.KnowledgeBase{
			SearchFn: func(_ context.Context, keyword string) (*service.SearchResult, error) {
				return &service.SearchResult{Keyword: keyword, Records: []domain.ErrorRecord{
					{Code: "ORA-00904", Explanation: "ORA-00904: invalid identifier"},
					{Code: "ORA-01400", Explanation: "ORA-01400: cannot insert NULL"},
				}}, nil
			},
		}
		h := chat.NewHandler(kb, chat.Options{DisplayLimit: 1, SnippetChars: 9}, nil)

		reply := h.Handle(context.Background(), chat.Message{Text: "/search ora"})

		assert.Equal(t, "Results for 'ora':\n\nORA-00904: ORA-00904...\n\nShowing 1 of 2 results.", reply)
	})
}

func TestHandler_Reload(t *testing.T) {
	t.Parallel()

	t.Run("operator", func(t *testing.T) {
		t.Parallel()

		kb := &mock.KnowledgeBase{
			ReloadFn: func(_ context.Context, callerID string) (*service.ReloadResult, error) {
				assert.Equal(t, "42", callerID)
				return &service.ReloadResult{Records: 3, Digest: "00ff00ff00ff00ff", Duration: 1500 * time.Millisecond}, nil
			},
		}
		h := chat.NewHandler(kb, chat.Options{}, nil)

		reply := h.Handle(context.Background(), chat.Message{SenderID: "42", Text: "/reload"})

		assert.Equal(t, "Knowledge base rebuilt: 3 records in 1.5s (digest 00ff00ff00ff00ff).", reply)
	})

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()

		kb := &mock.KnowledgeBase{
			ReloadFn: func(context.Context, string) (*service.ReloadResult, error) {
				return nil, domain.Errorf(domain.EUNAUTHORIZED, "reload is restricted to the operator")
			},
		}
		h := chat.NewHandler(kb, chat.Options{}, nil)

		reply := h.Handle(context.Background(), chat.Message{SenderID: "7", Text: "/RELOAD"})

		assert.Equal(t, "You are not allowed to reload the knowledge base.", reply)
	})

	t.Run("unreadable source is generic", func(t *testing.T) {
		t.Parallel()

		kb := &mock.KnowledgeBase{
			ReloadFn: func(context.Context, string) (*service.ReloadResult, error) {
				return nil, domain.Errorf(domain.EUNREADABLE, "cannot open source document")
			},
		}
		h := chat.NewHandler(kb, chat.Options{}, nil)

		reply := h.Handle(context.Background(), chat.Message{SenderID: "42", Text: "/reload"})

		assert.Equal(t, "Something went wrong. Please try again later.", reply)
	})
}

func TestHandler_HelpAndFallback(t *testing.T) {
	t.Parallel()

	h := chat.NewHandler(&mock.KnowledgeBase{}, chat.Options{Prefix: "PLS-"}, nil)
	ctx := context.Background()

	for _, text := range []string{"/start", "/help"} {
		reply := h.Handle(ctx, chat.Message{Text: text})
		assert.Contains(t, reply, "PLS-00904")
		assert.Contains(t, reply, "/search <keyword>")
	}

	for _, text := range []string{"hello", "", "/unknown", "ORA-00904"} {
		reply := h.Handle(ctx, chat.Message{Text: text})
		assert.Equal(t, "Please send a valid error code (e.g. PLS-00904) or use the /search command.", reply, text)
	}
}

func TestHandler_LogsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	kb := &mock.KnowledgeBase{
		LookupFn: func(context.Context, string) (*service.LookupResult, error) {
			return nil, errors.New("permission denied")
		},
	}
	h := chat.NewHandler(kb, chat.Options{}, logger)

	h.Handle(context.Background(), chat.Message{SenderID: "7", Text: "ORA-00904"})

	output := buf.String()
	assert.Contains(t, output, "message failed")
	assert.Contains(t, output, "request_id=")
	assert.Contains(t, output, "sender=7")
	assert.Contains(t, output, "command=lookup")
	assert.Contains(t, output, "err=\"permission denied\"")
}

func TestHandler_WithService(t *testing.T) {
	t.Parallel()

	st := domain.NewStore()
	st.Set("ORA-00904", "ORA-00904: invalid identifier")
	st.Set("ORA-00942", "ORA-00942: table or view does not exist")
	refresher := &mock.Refresher{
		SnapshotFn: func(context.Context) (*domain.Store, error) { return st, nil },
	}
	svc := service.New(refresher, search.NewEngine("ORA-"), nil, service.Options{})
	h := chat.NewHandler(svc, chat.Options{}, nil)
	ctx := context.Background()

	assert.Equal(t, "Original:\nORA-00904: invalid identifier",
		h.Handle(ctx, chat.Message{Text: "ora-00904"}))
	assert.Equal(t, "Results for 'table':\n\nORA-00942: ORA-00942: table or view does not exist",
		h.Handle(ctx, chat.Message{Text: "/search table"}))
}
