package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/AntonStoeckl/library-loans-go/calendar"
)

// Supported database adapters.
const (
	AdapterPGX    = "pgx"
	AdapterSQL    = "sql"
	AdapterSQLX   = "sqlx"
	AdapterMemory = "memory"
)

var (
	// ErrUnknownAdapter is returned when DB_ADAPTER names no supported adapter.
	ErrUnknownAdapter = errors.New("unknown database adapter")

	// ErrMissingDatabaseURL is returned when a PostgreSQL adapter is selected without DATABASE_URL.
	ErrMissingDatabaseURL = errors.New("database url is required for postgres adapters")

	// ErrUnknownLogLevel is returned when LOG_LEVEL is not one of debug, info, warn, error.
	ErrUnknownLogLevel = errors.New("unknown log level")

	// ErrNegativeTimeout is returned when a configured timeout is negative.
	ErrNegativeTimeout = errors.New("timeouts must not be negative")
)

// Config is the environment configuration of the library API server.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	DBAdapter       string        `env:"DB_ADAPTER" envDefault:"pgx"`
	LoansTable      string        `env:"LOANS_TABLE" envDefault:"loans"`
	UsersTable      string        `env:"USERS_TABLE" envDefault:"users"`
	BooksTable      string        `env:"BOOKS_TABLE" envDefault:"books"`
	CreateSchema    bool          `env:"CREATE_SCHEMA" envDefault:"false"`
	SeedFile        string        `env:"SEED_FILE"`
	Timezone        string        `env:"TIMEZONE" envDefault:"UTC"`
	StoreTimeout    time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	Observability   bool          `env:"OBSERVABILITY_ENABLED" envDefault:"false"`
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"library-api"`
}

// Load parses the process environment into a Config and validates it.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given environment instead of the process environment.
func LoadFrom(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the combinations env tags cannot express.
func (c Config) Validate() error {
	switch c.DBAdapter {
	case AdapterPGX, AdapterSQL, AdapterSQLX:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return ErrMissingDatabaseURL
		}
	case AdapterMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAdapter, c.DBAdapter)
	}

	if c.StoreTimeout < 0 || c.ShutdownTimeout < 0 {
		return ErrNegativeTimeout
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if _, err := c.DatePolicyOptions(); err != nil {
		return err
	}

	return nil
}

// SlogLevel maps LOG_LEVEL to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLogLevel, c.LogLevel)
	}
}

// DatePolicyOptions returns the options that make the date policy count days in TIMEZONE.
func (c Config) DatePolicyOptions() ([]calendar.PolicyOption, error) {
	if c.Timezone == "" {
		return nil, nil
	}

	if _, err := calendar.NewPolicy(calendar.SystemClock{}, calendar.WithTimezone(c.Timezone)); err != nil {
		return nil, err
	}

	return []calendar.PolicyOption{calendar.WithTimezone(c.Timezone)}, nil
}
