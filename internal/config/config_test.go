package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mfdl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load(writeConfig(t, "app:\n  site_name: Mattia\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, ChatProviderCanned, cfg.Chat.Provider)
	assert.Equal(t, "mattia@example.com", cfg.Admin.Email)
	assert.Equal(t, 12*time.Hour, cfg.Admin.SessionTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Catalog.Path)
	assert.False(t, cfg.PostHog.Enabled())
}

func TestLoad_ReturnsCachedConfig(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load(writeConfig(t, "app:\n  site_name: Mattia\n"))
	require.NoError(t, err)

	// Subcommands call Load again with the same flag value
	second, err := Load("")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoad_FileOverrides(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := writeConfig(t, `
server:
  port: 3000
  cors:
    enabled: true
    allowed_origins: ["https://example.com"]
catalog:
  path: /srv/articles.yaml
logging:
  level: warn
  format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.True(t, cfg.Server.CORS.Enabled)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.CORS.AllowedOrigins)
	assert.Equal(t, "/srv/articles.yaml", cfg.Catalog.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, path, cfg.App.ConfigFile)
}

func TestLoad_EnvAliases(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("POSTHOG_API_KEY", "ph-key")

	cfg, err := Load(writeConfig(t, "chat:\n  provider: Gemini\n"))
	require.NoError(t, err)

	assert.Equal(t, ChatProviderGemini, cfg.Chat.Provider)
	assert.Equal(t, "gem-key", cfg.Chat.Gemini.APIKey)
	assert.True(t, cfg.PostHog.Enabled())
}

func TestLoad_DebugForcesDebugLogging(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load(writeConfig(t, "app:\n  debug: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"gemini without key", "chat:\n  provider: gemini\n"},
		{"unknown provider", "chat:\n  provider: oracle\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"bad gemini timeout", "chat:\n  gemini:\n    timeout: soon\n"},
		{"zero rate limit", "server:\n  rate_limit:\n    enabled: true\n    limit: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			t.Cleanup(Reset)
			t.Setenv("GEMINI_API_KEY", "")

			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "articles.yaml"), expandPath("~/articles.yaml"))

	t.Setenv("MFDL_TEST_DIR", "/data")
	assert.Equal(t, "/data/articles.yaml", expandPath("$MFDL_TEST_DIR/articles.yaml"))
}

func TestIsValidAPIKey(t *testing.T) {
	assert.False(t, isValidAPIKey(""))
	assert.False(t, isValidAPIKey("CHANGE_ME"))
	assert.True(t, isValidAPIKey("phc_123"))
}

func TestGeminiTimeout(t *testing.T) {
	cfg := &Config{Chat: Chat{Gemini: GeminiConfig{Timeout: "5s"}}}
	assert.Equal(t, 5*time.Second, cfg.GeminiTimeout())

	cfg.Chat.Gemini.Timeout = ""
	assert.Equal(t, 20*time.Second, cfg.GeminiTimeout())
}
