package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"errkb/internal/config"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(config.EnvSource, "")
	t.Setenv(config.EnvStore, "")
	t.Setenv(config.EnvOperatorID, "")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "oracle_errors.pdf", cfg.Source.Path)
	assert.Equal(t, "ORA-", cfg.Source.Prefix)
	assert.Equal(t, ":", cfg.Source.Separator)
	assert.Equal(t, 5, cfg.Source.Window)
	assert.Equal(t, "file", cfg.Store.Type)
	assert.Equal(t, "oracle_errors.json", cfg.Store.Path)
	assert.Equal(t, "none", cfg.Translator.Type)
	assert.Equal(t, "tr", cfg.Translator.TargetLocale)
	assert.Equal(t, 5, cfg.Chat.DisplayLimit)
	assert.Equal(t, 150, cfg.Chat.SnippetChars)
	assert.Equal(t, "TELEGRAM_BOT_TOKEN", cfg.Bot.TokenEnv)
	assert.Empty(t, cfg.Operator.ID)
}

func TestLoad_AppliesDefaultsToPartialFile(t *testing.T) {
	t.Setenv(config.EnvSource, "")
	t.Setenv(config.EnvStore, "")
	t.Setenv(config.EnvOperatorID, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  path: manuals/pls_errors.html
  prefix: PLS-
translator:
  type: gemini
operator:
  id: "42"
`), 0o644))

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "manuals/pls_errors.html", cfg.Source.Path)
	assert.Equal(t, "PLS-", cfg.Source.Prefix)
	assert.Equal(t, ":", cfg.Source.Separator)
	assert.Equal(t, "42", cfg.Operator.ID)
	require.NotNil(t, cfg.Translator.Gemini)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Translator.Gemini.APIKeyEnv)
	assert.Equal(t, "gemini-2.5-flash", cfg.Translator.Gemini.Model)
	assert.Equal(t, 3, cfg.Translator.Gemini.MaxRetries)
	assert.InDelta(t, 1.0, cfg.Translator.Gemini.RequestsPerSecond, 0)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvSource, "/data/manual.pdf")
	t.Setenv(config.EnvStore, "/data/errors.yaml")
	t.Setenv(config.EnvOperatorID, "1001")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("operator:\n  id: \"42\"\n"), 0o644))

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/data/manual.pdf", cfg.Source.Path)
	assert.Equal(t, "/data/errors.yaml", cfg.Store.Path)
	assert.Equal(t, "1001", cfg.Operator.ID)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: [unclosed"), 0o644))

	_, err := config.Load(path)

	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv(config.EnvSource, "")
	t.Setenv(config.EnvStore, "")
	t.Setenv(config.EnvOperatorID, "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Operator.ID = "42"
	cfg.Chat.DisplayLimit = 3

	require.NoError(t, config.Save(path, cfg))
	loaded, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
