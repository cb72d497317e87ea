package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// Config holds all application configuration
type Config struct {
	Env     string `envconfig:"APP_ENV" default:"development"`
	Port    int    `envconfig:"APP_PORT" default:"8080"`
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	JWT     JWTConfig
	Session SessionConfig
}

// database configuration
type DBConfig struct {
	DSN             string        `envconfig:"DATABASE_URL" required:"true"`
	MaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"20"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// redis backs the cross-instance interview lock and the transition channel
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// JWT configuration
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// interview session timing
type SessionConfig struct {
	GracePeriod               time.Duration `envconfig:"SESSION_GRACE_PERIOD" default:"15m"`
	EarlyJoinWindow           time.Duration `envconfig:"SESSION_EARLY_JOIN_WINDOW" default:"10m"`
	SweepSchedule             string        `envconfig:"SESSION_SWEEP_SCHEDULE" default:"@every 1m"`
	SweepBatchSize            int           `envconfig:"SESSION_SWEEP_BATCH_SIZE" default:"500"`
	LockTTL                   time.Duration `envconfig:"SESSION_LOCK_TTL" default:"30s"`
	DefaultScreenshotInterval int           `envconfig:"SESSION_DEFAULT_SCREENSHOT_INTERVAL" default:"30"` // seconds
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if c.DB.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required when REDIS_ENABLED is set")
	}
	if c.Session.GracePeriod < 0 {
		return fmt.Errorf("SESSION_GRACE_PERIOD must be non-negative")
	}
	if c.Session.EarlyJoinWindow < 0 {
		return fmt.Errorf("SESSION_EARLY_JOIN_WINDOW must be non-negative")
	}
	if c.Session.LockTTL <= 0 {
		return fmt.Errorf("SESSION_LOCK_TTL must be positive")
	}
	if c.Session.SweepBatchSize < 1 {
		return fmt.Errorf("SESSION_SWEEP_BATCH_SIZE must be at least 1")
	}
	if c.Session.DefaultScreenshotInterval < 0 {
		return fmt.Errorf("SESSION_DEFAULT_SCREENSHOT_INTERVAL must be non-negative")
	}
	if _, err := cron.ParseStandard(c.Session.SweepSchedule); err != nil {
		return fmt.Errorf("invalid SESSION_SWEEP_SCHEDULE %q: %w", c.Session.SweepSchedule, err)
	}
	if len(c.GetCORSOrigins()) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, DB.MaxConns=%d, Redis.Enabled=%t, CORS.Origins=%d, "+
		"Session.GracePeriod=%s, Session.EarlyJoinWindow=%s, Session.SweepSchedule=%q, Session.LockTTL=%s}",
		c.Env, c.Port, c.DB.MaxConns, c.Redis.Enabled, len(c.CORS.TrustedOrigins),
		c.Session.GracePeriod, c.Session.EarlyJoinWindow, c.Session.SweepSchedule, c.Session.LockTTL)
}
