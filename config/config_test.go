package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
postgres:
  dsn: postgres://file
http:
  address: ":9000"
  allowed_origins: ["https://scores.example"]
scheduler:
  stale_session_age: 24h
`), 0o600))

	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env", cfg.Postgres.DSN)
	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.StaleSessionAge)
	assert.Equal(t, time.Hour, cfg.Scheduler.PurgeInterval)
	assert.Equal(t, float64(defaultRateLimit), cfg.HTTP.RateLimit)
	assert.False(t, cfg.StorageEnabled())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("R2_ACCOUNT_ID", "acct")
	t.Setenv("R2_BUCKET", "exports")
	t.Setenv("PURGE_INTERVAL", "15m")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, defaultHTTPAddress, cfg.HTTP.Address)
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.PurgeInterval)
	assert.True(t, cfg.StorageEnabled())
}

func TestLoadConfig_FromEnvRequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("STALE_SESSION_AGE", "three days")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
