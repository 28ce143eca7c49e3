package config

import (
	"books-api/internal/infrastructure/database"
)

// LoadDatabaseConfig chuyển phần Database của Config sang database.DBConfig
func LoadDatabaseConfig(cfg *Config) *database.DBConfig {
	return &database.DBConfig{
		URL:               cfg.Database.URL,
		MaxConns:          cfg.Database.MaxConns,
		MinConns:          cfg.Database.MinConns,
		MaxConnLifetime:   cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
		MaxRetries:        cfg.Database.ConnectRetries,
		RetryDelay:        cfg.Database.RetryDelay,
		ConnectTimeout:    cfg.Database.ConnectTimeout,
	}
}
