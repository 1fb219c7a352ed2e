// Package chat turns inbound chat messages into knowledge-base commands and
// renders the replies. It knows nothing about the transport.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"errkb/internal/domain"
	"errkb/internal/service"
)

// Defaults for Options.
const (
	DefaultDisplayLimit = 5
	DefaultSnippetChars = 150
)

// Message is an inbound chat message.
type Message struct {
	SenderID string
	Text     string
}

// Service is the subset of the knowledge-base service the handler needs.
type Service interface {
	Lookup(ctx context.Context, code string) (*service.LookupResult, error)
	Search(ctx context.Context, keyword string) (*service.SearchResult, error)
	Reload(ctx context.Context, callerID string) (*service.ReloadResult, error)
}

// Options configures a Handler.
type Options struct {
	// Prefix marks a message as a code lookup, matched case-insensitively.
	Prefix string
	// DisplayLimit caps the records shown for a search.
	DisplayLimit int
	// SnippetChars caps each search snippet, in runes.
	SnippetChars int
}

// Handler maps message text to a reply.
type Handler struct {
	svc          Service
	prefix       string
	displayLimit int
	snippetChars int
	logger       *slog.Logger
}

// NewHandler creates a Handler. Zero options fall back to the defaults.
func NewHandler(svc Service, opts Options, logger *slog.Logger) *Handler {
	if opts.Prefix == "" {
		opts.Prefix = "ORA-"
	}
	if opts.DisplayLimit <= 0 {
		opts.DisplayLimit = DefaultDisplayLimit
	}
	if opts.SnippetChars <= 0 {
		opts.SnippetChars = DefaultSnippetChars
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		svc:          svc,
		prefix:       strings.ToUpper(opts.Prefix),
		displayLimit: opts.DisplayLimit,
		snippetChars: opts.SnippetChars,
		logger:       logger,
	}
}

// Handle answers msg. It always returns a reply; failures are logged and
// rendered as user-safe text.
func (h *Handler) Handle(ctx context.Context, msg Message) string {
	logger := h.logger.With("request_id", uuid.NewString(), "sender", msg.SenderID)
	text := strings.TrimSpace(msg.Text)
	command, args := parseCommand(text)

	begin := time.Now()
	var reply string
	var err error
	switch {
	case command == "/search":
		reply, err = h.search(ctx, args)
	case command == "/reload":
		reply, err = h.reload(ctx, msg.SenderID)
	case command == "/start" || command == "/help":
		reply = h.help()
	case command == "" && strings.HasPrefix(strings.ToUpper(text), h.prefix):
		command = "lookup"
		reply, err = h.lookup(ctx, logger, text)
	default:
		reply = h.hint()
	}

	if err != nil {
		logger.Error("message failed", "command", command, "duration", time.Since(begin), "err", err)
		return genericFailure
	}
	logger.Info("message handled", "command", command, "duration", time.Since(begin))
	return reply
}

const genericFailure = "Something went wrong. Please try again later."

// parseCommand splits "/cmd@bot arg1 arg2" into ("/cmd", "arg1 arg2"). Plain
// text yields an empty command.
func parseCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	command, args, _ := strings.Cut(text, " ")
	command, _, _ = strings.Cut(command, "@")
	return strings.ToLower(command), strings.Join(strings.Fields(args), " ")
}

func (h *Handler) lookup(ctx context.Context, logger *slog.Logger, code string) (string, error) {
	res, err := h.svc.Lookup(ctx, code)
	if domain.ErrorCode(err) == domain.ENOTFOUND {
		return "This error code was not found in the knowledge base.", nil
	} else if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Original:\n")
	b.WriteString(res.Explanation)
	switch {
	case res.TranslationErr != nil:
		logger.Warn("translation unavailable", "code", res.Code, "diagnostic", res.TranslationErr.Diagnostic)
		fmt.Fprintf(&b, "\n\nWarning: %s", res.TranslationErr.Message)
	case res.Translation != "":
		fmt.Fprintf(&b, "\n\nTranslation (%s):\n%s", res.TargetLocale, res.Translation)
	}
	return b.String(), nil
}

func (h *Handler) search(ctx context.Context, keyword string) (string, error) {
	if keyword == "" {
		return "Please enter a keyword. Example: /search column", nil
	}
	res, err := h.svc.Search(ctx, keyword)
	if err != nil {
		return "", err
	}
	if len(res.Records) == 0 {
		return fmt.Sprintf("No results found for '%s'.", res.Keyword), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Results for '%s':\n", res.Keyword)
	shown := res.Records
	if len(shown) > h.displayLimit {
		shown = shown[:h.displayLimit]
	}
	for _, r := range shown {
		fmt.Fprintf(&b, "\n%s: %s", r.Code, snippet(r.Explanation, h.snippetChars))
	}
	if len(res.Records) > len(shown) {
		fmt.Fprintf(&b, "\n\nShowing %d of %d results.", len(shown), len(res.Records))
	}
	return b.String(), nil
}

func (h *Handler) reload(ctx context.Context, senderID string) (string, error) {
	res, err := h.svc.Reload(ctx, senderID)
	if domain.ErrorCode(err) == domain.EUNAUTHORIZED {
		return "You are not allowed to reload the knowledge base.", nil
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("Knowledge base rebuilt: %d records in %s (digest %s).",
		res.Records, res.Duration.Round(time.Millisecond), res.Digest), nil
}

func (h *Handler) help() string {
	return fmt.Sprintf("Send an error code such as %s00904 to see its explanation.\n"+
		"/search <keyword> searches codes and explanations.", h.prefix)
}

func (h *Handler) hint() string {
	return fmt.Sprintf("Please send a valid error code (e.g. %s00904) or use the /search command.", h.prefix)
}

// snippet cuts s to n runes, marking the cut with "...".
func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
