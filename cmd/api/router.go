package main

import (
	"context"

	bookHandler "books-api/internal/domains/book/handler"
	"books-api/internal/infrastructure/database"
	"books-api/internal/shared/middleware"
	"books-api/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HealthChecker là phần của container mà /api/health cần
type HealthChecker interface {
	HealthCheck(ctx context.Context) (*database.PoolStats, error)
}

func SetupRouter(books *bookHandler.Handler, health HealthChecker, legacyRoutes bool) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
	)

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", healthCheckHandler(health))

		setupBookRoutes(api, books)
		if legacyRoutes {
			setupLegacyBookRoutes(api, books)
		}
	}

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, h *bookHandler.Handler) {
	api.GET("/books", h.ListBooks)
	api.GET("/book/:id", h.GetBook)
	api.POST("/book", h.CreateBook)
	api.PUT("/book/:id", h.UpdateBook)
	api.DELETE("/book/:id", h.DeleteBook)
}

// setupLegacyBookRoutes - alias cũ, cùng handler với route chuẩn
func setupLegacyBookRoutes(api *gin.RouterGroup, h *bookHandler.Handler) {
	api.POST("/newbook", h.CreateBook)
	api.PUT("/update/:id", h.UpdateBook)
	api.DELETE("/delete/:id", h.DeleteBook)
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := health.HealthCheck(c.Request.Context())
		if err != nil {
			log.Warn().
				Str("request_id", c.GetString(middleware.RequestIDKey)).
				Err(err).
				Msg("Health check failed")
			response.ServiceUnavailable(c, "Database unavailable")
			return
		}

		response.OK(c, gin.H{
			"status":   "ok",
			"database": stats,
		})
	}
}
