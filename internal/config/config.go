package config

import (
	"slices"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Jobs     JobsConfig     `yaml:"jobs" mapstructure:"jobs"`
	Progress ProgressConfig `yaml:"progress" mapstructure:"progress"`
	Session  SessionConfig  `yaml:"session" mapstructure:"session"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	BasePath       string   `yaml:"base_path" mapstructure:"base_path"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	JobsWaitMs     int      `yaml:"jobs_wait_ms" mapstructure:"jobs_wait_ms"`
}

// JobsWait returns the job list wait as a duration.
func (c ServerConfig) JobsWait() time.Duration {
	return time.Duration(c.JobsWaitMs) * time.Millisecond
}

// StoreConfig configures the job store backend.
type StoreConfig struct {
	Driver          string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL     string `yaml:"database_url" mapstructure:"database_url"`
	ConnectAttempts int    `yaml:"connect_attempts" mapstructure:"connect_attempts"`
}

// JobsConfig configures the simulated job fetch.
type JobsConfig struct {
	FetchDelayMs     int `yaml:"fetch_delay_ms" mapstructure:"fetch_delay_ms"`
	FetchTimeoutMs   int `yaml:"fetch_timeout_ms" mapstructure:"fetch_timeout_ms"`
	BreakerThreshold int `yaml:"breaker_threshold" mapstructure:"breaker_threshold"`
	BreakerCooldownS int `yaml:"breaker_cooldown_secs" mapstructure:"breaker_cooldown_secs"`
}

// FetchDelay returns the fetch delay as a duration.
func (c JobsConfig) FetchDelay() time.Duration {
	return time.Duration(c.FetchDelayMs) * time.Millisecond
}

// FetchTimeout returns the fetch timeout as a duration.
func (c JobsConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// BreakerCooldown returns the open-circuit cooldown as a duration.
func (c JobsConfig) BreakerCooldown() time.Duration {
	return time.Duration(c.BreakerCooldownS) * time.Second
}

// ProgressConfig configures the preparing-report simulation.
type ProgressConfig struct {
	TotalMs int `yaml:"total_ms" mapstructure:"total_ms"`
	StepMs  int `yaml:"step_ms" mapstructure:"step_ms"`
	TickMs  int `yaml:"tick_ms" mapstructure:"tick_ms"`
}

// SessionConfig configures workflow session lifetime.
type SessionConfig struct {
	MaxIdleMinutes int `yaml:"max_idle_minutes" mapstructure:"max_idle_minutes"`
}

// MaxIdle returns the idle lifetime as a duration.
func (c SessionConfig) MaxIdle() time.Duration {
	return time.Duration(c.MaxIdleMinutes) * time.Minute
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MATCHTEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_path", "/")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 50)
	v.SetDefault("server.rate_burst", 100)
	v.SetDefault("server.jobs_wait_ms", 3000)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.connect_attempts", 3)
	v.SetDefault("jobs.fetch_delay_ms", 500)
	v.SetDefault("jobs.fetch_timeout_ms", 5000)
	v.SetDefault("jobs.breaker_threshold", 5)
	v.SetDefault("jobs.breaker_cooldown_secs", 30)
	v.SetDefault("progress.total_ms", 7000)
	v.SetDefault("progress.step_ms", 1300)
	v.SetDefault("progress.tick_ms", 80)
	v.SetDefault("session.max_idle_minutes", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

var storeDrivers = []string{"memory", "sqlite", "postgres"}

// Validate checks the settings a command mode depends on. Mode is "serve"
// for the HTTP server or "cli" for one-shot commands.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if !strings.HasPrefix(c.Server.BasePath, "/") {
			errs = append(errs, "server.base_path must start with /")
		}
		if c.Server.RateLimit <= 0 {
			errs = append(errs, "server.rate_limit must be > 0")
		}
		if c.Server.RateBurst < 1 {
			errs = append(errs, "server.rate_burst must be >= 1")
		}
		if c.Server.JobsWaitMs < 0 {
			errs = append(errs, "server.jobs_wait_ms must be >= 0")
		}
		if c.Progress.TotalMs <= 0 || c.Progress.StepMs <= 0 || c.Progress.TickMs <= 0 {
			errs = append(errs, "progress durations must be > 0")
		}
	case "cli":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if !slices.Contains(storeDrivers, c.Store.Driver) {
		errs = append(errs, "store.driver must be one of memory, sqlite, postgres")
	}
	if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required for the postgres driver")
	}
	if c.Jobs.FetchDelayMs < 0 {
		errs = append(errs, "jobs.fetch_delay_ms must be >= 0")
	}
	if c.Jobs.FetchTimeoutMs < 0 {
		errs = append(errs, "jobs.fetch_timeout_ms must be >= 0")
	}
	if c.Store.ConnectAttempts < 1 {
		errs = append(errs, "store.connect_attempts must be >= 1")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
