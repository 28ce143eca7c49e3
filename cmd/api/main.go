package main

import (
	"fmt"
	"os"

	"books-api/internal/config"
	"books-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// Load từ .env file (development/local)
	// Production sẽ dùng system environment variables
	envErr := godotenv.Load()

	// ========================================
	// PARSE FLAGS + LOAD CONFIG
	// ========================================
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err == nil {
		err = flags.apply(cfg)
	}
	if err != nil {
		logger.Init("development", "info")
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("environment", cfg.App.Environment).
		Msg("Starting")

	// ========================================
	// START SERVER
	// ========================================
	if err := Serve(cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}
