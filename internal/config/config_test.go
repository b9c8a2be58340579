package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/", cfg.Server.BasePath)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.InDelta(t, 50, cfg.Server.RateLimit, 0.001)
	assert.Equal(t, 100, cfg.Server.RateBurst)
	assert.Equal(t, 3*time.Second, cfg.Server.JobsWait())
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 500*time.Millisecond, cfg.Jobs.FetchDelay())
	assert.Equal(t, 5*time.Second, cfg.Jobs.FetchTimeout())
	assert.Equal(t, 5, cfg.Jobs.BreakerThreshold)
	assert.Equal(t, 30*time.Second, cfg.Jobs.BreakerCooldown())
	assert.Equal(t, 3, cfg.Store.ConnectAttempts)
	assert.Equal(t, 7000, cfg.Progress.TotalMs)
	assert.Equal(t, 1300, cfg.Progress.StepMs)
	assert.Equal(t, 80, cfg.Progress.TickMs)
	assert.Equal(t, time.Hour, cfg.Session.MaxIdle())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
  database_url: /tmp/match.db
log:
  level: debug
  format: console
server:
  port: 9090
  base_path: /match-test
jobs:
  fetch_delay_ms: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/match.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/match-test", cfg.Server.BasePath)
	assert.Equal(t, 0, cfg.Jobs.FetchDelayMs)
	// Defaults still apply for unset values
	assert.Equal(t, 5000, cfg.Jobs.FetchTimeoutMs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("MATCHTEST_STORE_DRIVER", "memory")
	t.Setenv("MATCHTEST_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("MATCHTEST_SERVER_PORT", "3000")
	t.Setenv("MATCHTEST_PROGRESS_TOTAL_MS", "1500")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 1500, cfg.Progress.TotalMs)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [port"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.BasePath = "/"
	cfg.Server.RateLimit = 50
	cfg.Server.RateBurst = 100
	cfg.Store.Driver = "memory"
	cfg.Store.ConnectAttempts = 3
	cfg.Jobs.FetchDelayMs = 500
	cfg.Jobs.FetchTimeoutMs = 5000
	cfg.Progress.TotalMs = 7000
	cfg.Progress.StepMs = 1300
	cfg.Progress.TickMs = 80
	return cfg
}

func TestValidateServe_Defaults(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateServe_BasePath(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.BasePath = "match-test"

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.base_path must start with /")
}

func TestValidateServe_RateLimit(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.RateLimit = 0
	cfg.Server.RateBurst = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.rate_limit must be > 0")
	assert.Contains(t, err.Error(), "server.rate_burst must be >= 1")
}

func TestValidatePostgresRequiresURL(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "postgres"

	err := cfg.Validate("cli")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")

	cfg.Store.DatabaseURL = "postgres://localhost/match"
	assert.NoError(t, cfg.Validate("cli"))
}

func TestValidateUnknownDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "mongo"

	err := cfg.Validate("cli")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be one of")
}

func TestValidateCLIIgnoresServerSettings(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0
	assert.NoError(t, cfg.Validate("cli"))
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidateConnectAttempts(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.ConnectAttempts = 0
	err := cfg.Validate("cli")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.connect_attempts")
}
