package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                  string        `env:"ENV"                   envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	DatabaseDriver   string `env:"COLLAB_DATABASE_DRIVER"    envDefault:"sqlite"`
	DatabaseFile     string `env:"COLLAB_DATABASE_FILE"      envDefault:"collab.db"`
	DatabaseURL      string `env:"COLLAB_DATABASE_URL"`
	DatabaseMaxConns int    `env:"COLLAB_DATABASE_MAX_CONNS" envDefault:"10"`

	// PepperFile holds the password pepper. Empty means an ephemeral pepper,
	// so stored hashes stop verifying after a restart.
	PepperFile string `env:"COLLAB_PEPPER_FILE" envDefault:"pepper"`

	// SigningKey is a base64 HS256 key. Empty means a fresh key per process.
	SigningKey          string        `env:"COLLAB_SIGNING_KEY"`
	Issuer              string        `env:"COLLAB_ISSUER"                envDefault:"innosync"`
	AccessTTL           time.Duration `env:"COLLAB_ACCESS_TTL"            envDefault:"240h"`
	RefreshTTL          time.Duration `env:"COLLAB_REFRESH_TTL"           envDefault:"168h"`
	RotateRefreshOnUse  bool          `env:"COLLAB_ROTATE_REFRESH_ON_USE" envDefault:"false"`
	OTLPTracingEndpoint string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return fmt.Errorf("config: COLLAB_DATABASE_FILE is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: COLLAB_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown database driver %q", c.DatabaseDriver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return fmt.Errorf("config: token lifetimes must be positive")
	}
	if c.HousekeepingInterval <= 0 {
		return fmt.Errorf("config: housekeeping interval must be positive")
	}
	return nil
}
