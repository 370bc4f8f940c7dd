package db

import (
	"context"
	"fmt"

	"WebNews/internal/config"
	"WebNews/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// InitMongo connects one client for the whole process and returns the
// configured collection. The caller disconnects the client on shutdown.
func InitMongo(ctx context.Context, cfg config.StoreConfig, l logger.LoggerV1) (*mongo.Client, *mongo.Collection, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPool > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxPool))
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("db: mongo connect failed: %w", err)
	}

	pingCtx, cancel := withTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("db: mongo ping failed: %w", err)
	}

	l.Info("db: connected",
		logger.String("driver", "mongo"),
		logger.String("database", cfg.Database),
		logger.String("collection", cfg.Collection))
	return client, client.Database(cfg.Database).Collection(cfg.Collection), nil
}
