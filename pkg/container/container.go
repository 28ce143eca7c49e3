package container

import (
	"context"
	"fmt"
	"time"

	"books-api/internal/config"
	"books-api/internal/infrastructure/database"
	"books-api/internal/infrastructure/worker"
	"books-api/pkg/logger"

	bookHandler "books-api/internal/domains/book/handler"
	bookRepo "books-api/internal/domains/book/repository"
	bookService "books-api/internal/domains/book/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	// Lifecycle: Singleton (1 instance duy nhất trong app lifetime)

	Config  *config.Config       // Application config
	DB      *database.PostgresDB // Database connection pool
	Workers *worker.Pool         // Blocking query offload

	// ========================================
	// REPOSITORY / SERVICE / HANDLER
	// ========================================

	BookRepo    bookRepo.RepositoryInterface
	BookService bookService.ServiceInterface
	BookHandler *bookHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph từ config đã load.
//
// Thứ tự initialization:
// 1. Database (phụ thuộc Config)
// 2. Worker pool (phụ thuộc Config)
// 3. Repositories - phụ thuộc Database
// 4. Services - phụ thuộc Repositories và Worker pool
// 5. Handlers - phụ thuộc Services
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger.Debug("Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INITIALIZE DATABASE
	// ========================================
	db := database.NewPostgresDB(config.LoadDatabaseConfig(cfg))

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.HealthCheck(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db

	// ========================================
	// STEP 2: INITIALIZE WORKER POOL
	// ========================================
	c.Workers = worker.NewPool(cfg.Worker.PoolSize, cfg.Worker.QueueTimeout)

	// ========================================
	// STEP 3-5: REPOSITORIES -> SERVICES -> HANDLERS
	// ========================================
	c.wire(db)

	logger.Info("DI Container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
		"table":       cfg.Database.Table,
		"workers":     c.Workers.Size(),
	})
	return c, nil
}

// wire nối repository, service và handler lên một ConnLeaser đã sẵn sàng
func (c *Container) wire(db database.ConnLeaser) {
	if c.Workers == nil {
		c.Workers = worker.NewPool(c.Config.Worker.PoolSize, c.Config.Worker.QueueTimeout)
	}

	c.BookRepo = bookRepo.NewPostgresRepository(db, c.Config.Database.Table)
	c.BookService = bookService.NewService(c.BookRepo, c.Workers)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
}

// StartMonitor chạy pool health monitor nếu DB_MONITOR_INTERVAL > 0.
// Monitor dừng khi ctx bị cancel.
func (c *Container) StartMonitor(ctx context.Context) bool {
	interval := c.Config.Database.MonitorInterval
	if interval <= 0 || c.DB == nil {
		return false
	}

	go c.DB.MonitorPoolHealth(ctx, interval)
	logger.Info("Pool health monitor started", map[string]interface{}{
		"interval": interval.String(),
	})
	return true
}

// HealthCheck ping database với timeout ngắn, dùng cho /api/health
func (c *Container) HealthCheck(ctx context.Context) (*database.PoolStats, error) {
	if c.DB == nil {
		return nil, database.ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return c.DB.HealthCheck(ctx)
}

// Cleanup dọn dẹp resources khi shutdown
// Gọi sau khi HTTP server đã dừng nhận request
func (c *Container) Cleanup() {
	logger.Debug("Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database pool", err)
		}
	}

	logger.Debug("Container cleanup completed")
}
