package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"errkb/internal/chat"
	"errkb/internal/config"
	"errkb/internal/document"
	"errkb/internal/domain"
	"errkb/internal/extractor"
	"errkb/internal/refresh"
	"errkb/internal/search"
	"errkb/internal/service"
	kbslog "errkb/internal/slog"
	"errkb/internal/store"
	"errkb/internal/store/file"
	"errkb/internal/store/memory"
	"errkb/internal/translate"
	"errkb/internal/translate/gemini"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config replaces config file loading when set. Set before calling Run().
	Config *config.AppConfig

	// Translator replaces the configured translator when set.
	Translator domain.Translator

	// Storage replaces the configured store when set.
	Storage store.Storage
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("errkb"),
		kong.Description("Error-code knowledge base built from a reference manual."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'errkb --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.loadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := newLogger(stderr, cfg.LogLevel, cli.LogJSON)
	if err != nil {
		return err
	}

	translator, err := m.buildTranslator(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: set translator.type to none to run without translation\n")
		return err
	}

	storage, err := m.buildStorage(cfg)
	if err != nil {
		return err
	}

	source := kbslog.NewLoggingSource(document.NewSource(cfg.Source.Path, document.Format(cfg.Source.Format)), cfg.Source.Path, logger)
	ext := kbslog.NewLoggingExtractor(extractor.New(cfg.Source.Prefix, cfg.Source.Separator, cfg.Source.Window), logger)
	coordinator := refresh.New(source, ext, kbslog.NewLoggingStorage(storage, logger), logger)

	svc := service.New(coordinator, search.NewEngine(cfg.Source.Prefix), translator, service.Options{
		OperatorID:   cfg.Operator.ID,
		TargetLocale: cfg.Translator.TargetLocale,
	})

	deps.Config = cfg
	deps.Logger = logger
	deps.Service = svc
	deps.Handler = chat.NewHandler(svc, chat.Options{
		Prefix:       cfg.Source.Prefix,
		DisplayLimit: cfg.Chat.DisplayLimit,
		SnippetChars: cfg.Chat.SnippetChars,
	}, logger)

	return kongCtx.Run(deps)
}

func (m *Main) loadConfig(path string) (*config.AppConfig, error) {
	if m.Config != nil {
		return m.Config, nil
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

func (m *Main) buildStorage(cfg *config.AppConfig) (store.Storage, error) {
	if m.Storage != nil {
		return m.Storage, nil
	}
	switch cfg.Store.Type {
	case "file", "":
		return file.NewStorage(cfg.Store.Path), nil
	case "memory":
		return memory.NewStorage(), nil
	default:
		return nil, domain.Errorf(domain.EINVALID, "unknown store type: %s", cfg.Store.Type)
	}
}

// buildTranslator returns nil when translation is disabled.
func (m *Main) buildTranslator(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (domain.Translator, error) {
	if m.Translator != nil {
		return kbslog.NewLoggingTranslator(m.Translator, logger), nil
	}
	switch cfg.Translator.Type {
	case "none", "":
		return nil, nil
	case "gemini":
	default:
		return nil, domain.Errorf(domain.EINVALID, "unknown translator type: %s", cfg.Translator.Type)
	}

	gcfg := cfg.Translator.Gemini
	if gcfg == nil {
		return nil, domain.Errorf(domain.EINVALID, "gemini translator config missing")
	}
	apiKey := os.Getenv(gcfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s not set. Get a key at https://aistudio.google.com/apikey", gcfg.APIKeyEnv)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	guarded := translate.NewGuard(gemini.NewTranslator(client, gcfg.Model), translate.GuardConfig{
		RequestsPerSecond: gcfg.RequestsPerSecond,
		MaxRetries:        gcfg.MaxRetries,
		Timeout:           time.Duration(gcfg.TimeoutSecs) * time.Second,
	})
	return kbslog.NewLoggingTranslator(guarded, logger), nil
}

func newLogger(w io.Writer, level string, asJSON bool) (*slog.Logger, error) {
	var lvl slog.Level
	if level == "" {
		level = "info"
	}
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, domain.Errorf(domain.EINVALID, "invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
