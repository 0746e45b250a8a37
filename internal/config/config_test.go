package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initIn(t *testing.T, contents string) {
	t.Helper()
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if contents != "" {
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	}
	require.NoError(t, Init(path))
}

func TestInit_Defaults(t *testing.T) {
	initIn(t, "")
	cfg := Get()

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Network.Timeout)
	assert.Equal(t, 1, cfg.Network.RetryAttempts)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 20, cfg.History.Limit)
	assert.True(t, cfg.UI.Spinner)
	assert.Empty(t, cfg.UI.Prompt)
}

func TestInit_ConfigFile(t *testing.T) {
	initIn(t, `
api:
  base_url: http://localhost:8000/
network:
  timeout: 2s
  retry_attempts: 3
history:
  enabled: false
`)
	cfg := Get()

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Network.Timeout)
	assert.Equal(t, 3, cfg.Network.RetryAttempts)
	assert.False(t, cfg.History.Enabled)
}

func TestInit_EnvOverridesFile(t *testing.T) {
	t.Setenv("BOOKSHELF_API_BASE_URL", "http://env.example")
	t.Setenv("BOOKSHELF_NETWORK_TIMEOUT", "750ms")
	initIn(t, "api:\n  base_url: http://file.example\n")
	cfg := Get()

	assert.Equal(t, "http://env.example", cfg.API.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Network.Timeout)
}

func TestOverride(t *testing.T) {
	initIn(t, "")
	require.Equal(t, DefaultBaseURL, Get().API.BaseURL)

	Override("api.base_url", "http://flag.example/")
	Override("network.timeout", 10*time.Second)

	assert.Equal(t, "http://flag.example", Get().API.BaseURL)
	assert.Equal(t, 10*time.Second, Get().Network.Timeout)
}

func TestGet_EmptyBaseURLFallsBack(t *testing.T) {
	initIn(t, "")
	Override("api.base_url", "")

	assert.Equal(t, DefaultBaseURL, Get().API.BaseURL)
}
