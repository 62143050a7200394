package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "AI_PROVIDER", "AI_MODEL", "GOOGLE_API_KEY", "DEEPSEEK_API_KEY", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.False(t, cfg.AI.HasCredential())
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := `
server:
  port: "8081"
  static_dir: /srv/www
ai:
  provider: deepseek
  model: deepseek-chat
  request_timeout: 45s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o600))

	t.Setenv("PORT", "9090")
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("GOOGLE_API_KEY", "ignored-for-deepseek")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/srv/www", cfg.Server.StaticDir)
	assert.Equal(t, ProviderDeepSeek, cfg.AI.Provider)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, 45*time.Second, cfg.AI.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.AI.HasCredential())
}

func TestLoad_GoogleKeyFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "AIza-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "AIza-test", cfg.AI.APIKey)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestHasCredential_Whitespace(t *testing.T) {
	assert.False(t, AIConfig{APIKey: "   "}.HasCredential())
}
