package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/roster/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := setupCLI(t, nil)
	path := filepath.Join(home, "config.yaml")

	out := mustExecute(t, "config", "init", "--api-url", "https://employees.example.com", "--token", "s3cret")
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://employees.example.com", cfg.API.BaseURL)
	assert.Equal(t, "s3cret", cfg.API.Token)

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := execute(t, "config", "init")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force", func(t *testing.T) {
		mustExecute(t, "config", "init", "--force")
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultAPIURL, cfg.API.BaseURL)
	})

	t.Run("explicit path", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "nested", "roster.yaml")
		mustExecute(t, "config", "init", "--config", other)
		_, err := os.Stat(other)
		require.NoError(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	home := setupCLI(t, nil)
	path := filepath.Join(home, "config.yaml")

	t.Run("defaults", func(t *testing.T) {
		out := mustExecute(t, "config", "validate", "--verbose")
		assert.Contains(t, out, "Configuration is valid")
		assert.Contains(t, out, "API URL: "+config.DefaultAPIURL)
		assert.Contains(t, out, "API token: not set")
	})

	t.Run("invalid file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("view:\n  page_size: 0\n"), 0o600))
		_, err := execute(t, "config", "validate")
		require.ErrorIs(t, err, config.ErrInvalidPageSize)
	})

	t.Run("broken yaml", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("api: [\n"), 0o600))
		_, err := execute(t, "config", "validate")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration validation failed")
	})

	t.Run("other commands refuse an invalid config", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: ftp://nowhere\n"), 0o600))
		_, err := execute(t, "list")
		require.ErrorIs(t, err, config.ErrInvalidAPIURL)
	})
}

func TestConfigShow(t *testing.T) {
	setupCLI(t, nil)
	t.Setenv(config.EnvAPIToken, "s3cret")

	t.Run("yaml masks the token", func(t *testing.T) {
		out := mustExecute(t, "config", "show", "--api-url", "https://hr.example.com")
		assert.NotContains(t, out, "s3cret")

		var cfg config.Config
		require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
		assert.Equal(t, "https://hr.example.com", cfg.API.BaseURL)
		assert.Equal(t, "********", cfg.API.Token)
	})

	t.Run("json", func(t *testing.T) {
		out := mustExecute(t, "config", "show", "-o", "json", "--cache-ttl", "120")
		var cfg config.Config
		require.NoError(t, json.Unmarshal([]byte(out), &cfg))
		assert.Equal(t, 120, cfg.Cache.TTLSeconds)
		assert.NotContains(t, out, "s3cret")
	})

	t.Run("negative cache ttl", func(t *testing.T) {
		_, err := execute(t, "config", "show", "--cache-ttl", "-5")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache-ttl must be >= 0")
	})
}
