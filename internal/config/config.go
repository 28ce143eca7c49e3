package config

import (
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name         string `json:"APP_NAME"`
	Environment  string `json:"APP_ENV"` // development, production
	Host         string `json:"APP_HOST"`
	Port         string `json:"APP_PORT"`
	LogLevel     string `json:"LOG_LEVEL"`
	LegacyRoutes bool   `json:"API_LEGACY_ROUTES"` // /api/newbook, /api/update/:id, /api/delete/:id
}

type DatabaseConfig struct {
	URL   string `json:"DATABASE_URL"`
	Table string `json:"BOOKS_TABLE"`

	MaxConns          int32         `json:"DB_MAX_CONNS"`
	MinConns          int32         `json:"DB_MIN_CONNS"`
	MaxConnLifetime   time.Duration `json:"DB_MAX_CONN_LIFETIME"`
	MaxConnIdleTime   time.Duration `json:"DB_MAX_CONN_IDLE_TIME"`
	HealthCheckPeriod time.Duration `json:"DB_HEALTH_CHECK_PERIOD"`
	ConnectTimeout    time.Duration `json:"DB_CONNECT_TIMEOUT"`
	ConnectRetries    int           `json:"DB_CONNECT_RETRIES"`
	RetryDelay        time.Duration `json:"DB_RETRY_DELAY"`
	MonitorInterval   time.Duration `json:"DB_MONITOR_INTERVAL"`
}

type WorkerConfig struct {
	PoolSize     int           `json:"WORKER_POOL_SIZE"`
	QueueTimeout time.Duration `json:"WORKER_QUEUE_TIMEOUT"`
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Load đọc config từ environment variables
func Load() (*Config, error) {
	var errs []string

	intVar := func(key string, def int) int {
		v, err := getEnvInt(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}
	durVar := func(key string, def time.Duration) time.Duration {
		v, err := getEnvDuration(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}

	maxConns := intVar("DB_MAX_CONNS", 10)

	cfg := &Config{
		App: AppConfig{
			Name:         getEnv("APP_NAME", "Books API"),
			Environment:  getEnv("APP_ENV", "development"),
			Host:         getEnv("APP_HOST", "127.0.0.1"),
			Port:         getEnv("APP_PORT", "8080"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			LegacyRoutes: getEnvBool("API_LEGACY_ROUTES", false),
		},
		Database: DatabaseConfig{
			URL:               strings.TrimSpace(os.Getenv("DATABASE_URL")),
			Table:             getEnv("BOOKS_TABLE", "books"),
			MaxConns:          int32(maxConns),
			MinConns:          int32(intVar("DB_MIN_CONNS", 2)),
			MaxConnLifetime:   durVar("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime:   durVar("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			HealthCheckPeriod: durVar("DB_HEALTH_CHECK_PERIOD", time.Minute),
			ConnectTimeout:    durVar("DB_CONNECT_TIMEOUT", 5*time.Second),
			ConnectRetries:    intVar("DB_CONNECT_RETRIES", 0),
			RetryDelay:        durVar("DB_RETRY_DELAY", time.Second),
			MonitorInterval:   durVar("DB_MONITOR_INTERVAL", 0),
		},
		Worker: WorkerConfig{
			PoolSize:     intVar("WORKER_POOL_SIZE", maxConns),
			QueueTimeout: durVar("WORKER_QUEUE_TIMEOUT", 5*time.Second),
		},
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port pair the HTTP server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.App.Host, c.App.Port)
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.App,
		validation.Field(&c.App.Environment, validation.Required, validation.In("development", "staging", "production")),
		validation.Field(&c.App.Host, validation.Required),
		validation.Field(&c.App.Port, validation.Required, is.Port),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.URL, validation.Required.Error("must be set")),
		validation.Field(&c.Database.Table, validation.Required, validation.Match(tableNamePattern)),
		validation.Field(&c.Database.MaxConns, validation.Required, validation.Min(int32(1))),
		validation.Field(&c.Database.MinConns, validation.Min(int32(0)), validation.Max(c.Database.MaxConns)),
		validation.Field(&c.Database.ConnectTimeout, validation.Required),
		validation.Field(&c.Database.ConnectRetries, validation.Min(0), validation.Max(10)),
		validation.Field(&c.Database.MonitorInterval, validation.Min(time.Duration(0))),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(&c.Worker,
		validation.Field(&c.Worker.PoolSize, validation.Required, validation.Min(1)),
		validation.Field(&c.Worker.QueueTimeout, validation.Required),
	)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultValue
	}
	return value
}
