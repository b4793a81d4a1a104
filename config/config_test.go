package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.True(t, cfg.Logger.Development)
}

func TestLoadReadsYamlFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: "9090"
  environment: production
database:
  url: postgres://localhost:5432/marketplace
redis:
  url: redis://localhost:6379/0
auth:
  jwtsecret: file-secret
logger:
  development: false
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "postgres://localhost:5432/marketplace", cfg.Database.URL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Logger.Development)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  port: \"9090\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://env-host:5432/marketplace")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "postgres://env-host:5432/marketplace", cfg.Database.URL)
}
