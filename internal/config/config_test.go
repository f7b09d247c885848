package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "http://localhost:8000", cfg.Scraper.BaseURL)
	assert.Equal(t, "flash-lite", cfg.Enrichment.Model)
	assert.Nil(t, cfg.Timing)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reelscope.yaml")
	data := []byte(`
server:
  port: 9090
scraper:
  base_url: http://scraper.internal:8000
  requests_per_minute: 5
timing:
  recommendations:
    - Post during lunch breaks
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://scraper.internal:8000", cfg.Scraper.BaseURL)
	assert.Equal(t, 5, cfg.Scraper.RequestsPerMinute)
	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)

	require.NotNil(t, cfg.Timing)
	assert.Equal(t, []string{"Post during lunch breaks"}, cfg.Timing.Recommendations)
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	t.Setenv("REELSCOPE_GENAI_KEY", "key-primary")
	t.Setenv("GENAI_API_KEY", "key-secondary")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "key-primary", cfg.Enrichment.APIKey)
}

func TestLoadAPIKeyFallbackEnv(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "key-secondary")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "key-secondary", cfg.Enrichment.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/reelscope.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid server port")
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "10s", cfg.Server.ReadTimeout().String())
	assert.Equal(t, "15m0s", cfg.Redis.TTL().String())
	assert.Equal(t, "1m0s", cfg.Scraper.Timeout().String())
	assert.Equal(t, "30s", cfg.Enrichment.Timeout().String())
}
