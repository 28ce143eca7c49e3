package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"books-api/internal/config"
	"books-api/pkg/container"

	"github.com/rs/zerolog/log"
)

const (
	startupTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

func Serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	// Nếu database không kết nối được → application không start
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	appContainer, err := container.NewContainer(startCtx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	// Pool chỉ đóng sau khi server đã drain xong request
	defer appContainer.Cleanup()

	appContainer.StartMonitor(ctx)

	// ========================================
	// 2. SETUP ROUTER
	// ========================================
	router := SetupRouter(appContainer.BookHandler, appContainer, cfg.App.LegacyRoutes)

	// ========================================
	// 3. CONFIGURE HTTP SERVER
	// ========================================
	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// ========================================
	// 4. START SERVER (NON-BLOCKING)
	// ========================================
	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("component", "server").
			Str("addr", srv.Addr).
			Bool("legacy_routes", cfg.App.LegacyRoutes).
			Msg("Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// ========================================
	// 5. GRACEFUL SHUTDOWN
	// ========================================
	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Str("component", "server").Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Str("component", "server").Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Str("component", "server").Msg("Server exited gracefully")
	return nil
}
