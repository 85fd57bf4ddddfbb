package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"botdash/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFileAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "botdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://example.test/\napi_key: k1\nlog:\n  level: debug\n"), 0o600))
	t.Setenv("BOTDASH_LISTEN", ":9999")
	t.Setenv("BOTDASH_LOG_FORMAT", "json")

	require.NoError(t, config.InitConfig(path))
	cfg, err := config.RequireAPIKey()
	require.NoError(t, err)

	assert.Equal(t, "https://example.test", cfg.BaseURL)
	assert.Equal(t, "k1", cfg.APIKey)
	assert.Equal(t, ":9999", cfg.Listen)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestRequireAPIKeyWithoutLogin(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, config.InitConfig(""))
	_, err := config.RequireAPIKey()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
}

func TestSaveCredentials(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "botdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":7000\"\n"), 0o600))
	require.NoError(t, config.InitConfig(path))
	require.NoError(t, config.SaveCredentials("https://api.test", "k2"))

	viper.Reset()
	require.NoError(t, config.InitConfig(path))
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "k2", cfg.APIKey)
	assert.Equal(t, ":7000", cfg.Listen)
}
