package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// ErrAcquireConn wraps every failure to lease a connection from the pool.
var ErrAcquireConn = errors.New("failed to acquire database connection")

// Querier là subset của *pgxpool.Conn mà repository cần.
// pgxmock.PgxPoolIface cũng implement interface này.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ConnLeaser hands out one pooled connection for the duration of fn.
type ConnLeaser interface {
	WithConn(ctx context.Context, fn func(q Querier) error) error
}

// WithConn acquire một connection, chạy fn, và luôn Release connection
// (kể cả khi fn trả error hoặc panic).
func (db *PostgresDB) WithConn(ctx context.Context, fn func(q Querier) error) error {
	if db.Pool == nil {
		return fmt.Errorf("%w: %w", ErrAcquireConn, ErrNotConnected)
	}

	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquireConn, err)
	}
	defer conn.Release()

	return fn(conn)
}

// Ping kiểm tra database connection có còn sống và responsive không
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return ErrNotConnected
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close đóng tất cả connections trong pool. Safe to call multiple times.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		log.Debug().Str("component", "database").Msg("Pool is already closed or was never initialized")
		return nil
	}

	log.Info().Str("component", "database").Msg("Closing database connection pool...")

	// Pool.Close() chờ các acquired connections được release rồi mới đóng
	db.Pool.Close()
	db.Pool = nil

	log.Info().Str("component", "database").Msg("Connection pool closed successfully")
	return nil
}

// PoolStats chứa thống kê về connection pool, dùng cho /health và monitoring
type PoolStats struct {
	AcquireCount         int64         `json:"acquire_count"`
	AcquireDuration      time.Duration `json:"acquire_duration"`
	AcquiredConns        int32         `json:"acquired_conns"`
	CanceledAcquireCount int64         `json:"canceled_acquire_count"`
	ConstructingConns    int32         `json:"constructing_conns"`
	EmptyAcquireCount    int64         `json:"empty_acquire_count"`
	IdleConns            int32         `json:"idle_conns"`
	MaxConns             int32         `json:"max_conns"`
	TotalConns           int32         `json:"total_conns"`
}

// Stats trả về snapshot của connection pool statistics
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, ErrNotConnected
	}

	s := db.Pool.Stat()
	return &PoolStats{
		AcquireCount:         s.AcquireCount(),
		AcquireDuration:      s.AcquireDuration(),
		AcquiredConns:        s.AcquiredConns(),
		CanceledAcquireCount: s.CanceledAcquireCount(),
		ConstructingConns:    s.ConstructingConns(),
		EmptyAcquireCount:    s.EmptyAcquireCount(),
		IdleConns:            s.IdleConns(),
		MaxConns:             s.MaxConns(),
		TotalConns:           s.TotalConns(),
	}, nil
}

// MonitorPoolHealth log cảnh báo khi pool gần cạn hoặc acquire chậm.
// Chạy trong goroutine riêng, dừng khi ctx bị cancel.
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats, err := db.Stats()
			if err != nil {
				log.Warn().Str("component", "database").Err(err).Msg("Failed to get pool stats")
				continue
			}
			checkPoolStats(stats)

		case <-ctx.Done():
			log.Info().Str("component", "database").Msg("Stopping pool health monitoring")
			return
		}
	}
}

// checkPoolStats returns the number of warnings it logged.
func checkPoolStats(stats *PoolStats) int {
	warnings := 0

	if stats.MaxConns > 0 {
		utilizationPct := float64(stats.AcquiredConns) / float64(stats.MaxConns) * 100
		if utilizationPct > 80 {
			log.Warn().
				Str("component", "database").
				Float64("utilization_pct", utilizationPct).
				Int32("acquired", stats.AcquiredConns).
				Int32("max", stats.MaxConns).
				Msg("High pool utilization")
			warnings++
		}
	}

	if avg := calculateAvgDuration(stats.AcquireDuration, stats.AcquireCount); avg > 100*time.Millisecond {
		log.Warn().Str("component", "database").Dur("avg_acquire", avg).Msg("High acquire latency")
		warnings++
	}

	if stats.CanceledAcquireCount > 0 && stats.AcquireCount > 0 {
		cancelRate := float64(stats.CanceledAcquireCount) / float64(stats.AcquireCount) * 100
		if cancelRate > 5 {
			log.Warn().Str("component", "database").Float64("cancel_rate_pct", cancelRate).Msg("High acquire cancel rate")
			warnings++
		}
	}

	return warnings
}

func calculateAvgDuration(total time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(int64(total) / count)
}
