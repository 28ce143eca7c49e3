package main

import (
	"fmt"

	"books-api/internal/config"

	"github.com/spf13/pflag"
)

// cliFlags chỉ override config khi flag được set tường minh
type cliFlags struct {
	set          *pflag.FlagSet
	host         string
	port         string
	env          string
	logLevel     string
	legacyRoutes bool
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	flagSet := pflag.NewFlagSet("books-api", pflag.ContinueOnError)
	flagSet.StringVar(&f.host, "host", "", "listen host (overrides APP_HOST)")
	flagSet.StringVar(&f.port, "port", "", "listen port (overrides APP_PORT)")
	flagSet.StringVar(&f.env, "env", "", "development, staging or production (overrides APP_ENV)")
	flagSet.StringVar(&f.logLevel, "log-level", "", "zerolog level (overrides LOG_LEVEL)")
	flagSet.BoolVar(&f.legacyRoutes, "legacy-routes", false, "register /api/newbook, /api/update/:id, /api/delete/:id (overrides API_LEGACY_ROUTES)")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", rest[0])
	}

	f.set = flagSet
	return f, nil
}

// apply ghi đè cfg bằng các flag đã set rồi validate lại
func (f *cliFlags) apply(cfg *config.Config) error {
	if f.set.Changed("host") {
		cfg.App.Host = f.host
	}
	if f.set.Changed("port") {
		cfg.App.Port = f.port
	}
	if f.set.Changed("env") {
		cfg.App.Environment = f.env
	}
	if f.set.Changed("log-level") {
		cfg.App.LogLevel = f.logLevel
	}
	if f.set.Changed("legacy-routes") {
		cfg.App.LegacyRoutes = f.legacyRoutes
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
