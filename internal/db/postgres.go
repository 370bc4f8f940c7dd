package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"WebNews/internal/config"
	"WebNews/internal/logger"

	_ "github.com/lib/pq"
)

// InitPostgres opens the pool once and pings it with the connect timeout.
func InitPostgres(ctx context.Context, cfg config.StoreConfig, l logger.LoggerV1) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("db: open failed: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxPool)
	db.SetMaxIdleConns(cfg.MaxPool / 2)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := withTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db: ping failed: %w", err)
	}

	// never log the DSN, it may carry a password
	l.Info("db: connected", logger.String("driver", "postgres"), logger.String("table", cfg.Collection))
	return db, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
