package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override config file values.
const (
	EnvSource     = "ERRKB_SOURCE"
	EnvStore      = "ERRKB_STORE"
	EnvOperatorID = "ERRKB_OPERATOR_ID"
)

// SourceConfig describes the reference manual the knowledge base is built from.
type SourceConfig struct {
	Path      string `yaml:"path"`
	Format    string `yaml:"format"` // pdf, text or html; empty detects by extension
	Prefix    string `yaml:"prefix"`
	Separator string `yaml:"separator"`
	Window    int    `yaml:"window"`
}

// StoreConfig selects and configures the store implementation.
type StoreConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// OperatorConfig identifies the one caller allowed to reload.
type OperatorConfig struct {
	ID string `yaml:"id"`
}

// GeminiConfig holds configuration for the Gemini translator.
type GeminiConfig struct {
	APIKeyEnv         string  `yaml:"api_key_env"`
	Model             string  `yaml:"model"`
	TimeoutSecs       int     `yaml:"timeout_secs"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	MaxRetries        int     `yaml:"max_retries"`
}

// TranslatorConfig selects and configures the translator.
type TranslatorConfig struct {
	Type         string        `yaml:"type"`
	TargetLocale string        `yaml:"target_locale"`
	Gemini       *GeminiConfig `yaml:"gemini,omitempty"`
}

// ChatConfig controls reply rendering.
type ChatConfig struct {
	DisplayLimit int `yaml:"display_limit"`
	SnippetChars int `yaml:"snippet_chars"`
}

// BotConfig names the env var holding the chat transport token. The token is
// opaque to this module.
type BotConfig struct {
	TokenEnv string `yaml:"token_env"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Source     SourceConfig     `yaml:"source"`
	Store      StoreConfig      `yaml:"store"`
	Operator   OperatorConfig   `yaml:"operator"`
	Translator TranslatorConfig `yaml:"translator"`
	Chat       ChatConfig       `yaml:"chat"`
	LogLevel   string           `yaml:"log_level"`
	Bot        BotConfig        `yaml:"bot"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/errkb/config.yaml.
// If neither exists, it writes defaults to ~/.config/errkb/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "errkb", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Source:     SourceConfig{Path: "oracle_errors.pdf", Prefix: "ORA-", Separator: ":", Window: 5},
		Store:      StoreConfig{Type: "file", Path: "oracle_errors.json"},
		Translator: TranslatorConfig{Type: "none", TargetLocale: "tr"},
		Chat:       ChatConfig{DisplayLimit: 5, SnippetChars: 150},
		LogLevel:   "info",
		Bot:        BotConfig{TokenEnv: "TELEGRAM_BOT_TOKEN"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Source.Path == "" {
		cfg.Source.Path = def.Source.Path
	}
	if cfg.Source.Prefix == "" {
		cfg.Source.Prefix = def.Source.Prefix
	}
	if cfg.Source.Separator == "" {
		cfg.Source.Separator = def.Source.Separator
	}
	if cfg.Source.Window == 0 {
		cfg.Source.Window = def.Source.Window
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = def.Store.Type
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = def.Store.Path
	}
	if cfg.Translator.Type == "" {
		cfg.Translator.Type = def.Translator.Type
	}
	if cfg.Translator.TargetLocale == "" {
		cfg.Translator.TargetLocale = def.Translator.TargetLocale
	}
	if cfg.Translator.Type == "gemini" {
		if cfg.Translator.Gemini == nil {
			cfg.Translator.Gemini = &GeminiConfig{}
		}
		if cfg.Translator.Gemini.APIKeyEnv == "" {
			cfg.Translator.Gemini.APIKeyEnv = "GEMINI_API_KEY"
		}
		if cfg.Translator.Gemini.Model == "" {
			cfg.Translator.Gemini.Model = "gemini-2.5-flash"
		}
		if cfg.Translator.Gemini.TimeoutSecs == 0 {
			cfg.Translator.Gemini.TimeoutSecs = 30
		}
		if cfg.Translator.Gemini.RequestsPerSecond == 0 {
			cfg.Translator.Gemini.RequestsPerSecond = 1
		}
		if cfg.Translator.Gemini.MaxRetries == 0 {
			cfg.Translator.Gemini.MaxRetries = 3
		}
	}
	if cfg.Chat.DisplayLimit == 0 {
		cfg.Chat.DisplayLimit = def.Chat.DisplayLimit
	}
	if cfg.Chat.SnippetChars == 0 {
		cfg.Chat.SnippetChars = def.Chat.SnippetChars
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.Bot.TokenEnv == "" {
		cfg.Bot.TokenEnv = def.Bot.TokenEnv
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv(EnvSource); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv(EnvStore); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv(EnvOperatorID); v != "" {
		cfg.Operator.ID = v
	}
}
