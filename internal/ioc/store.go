package ioc

import (
	"context"
	"fmt"

	"WebNews/internal/config"
	"WebNews/internal/db"
	"WebNews/internal/logger"
	"WebNews/internal/repository"
)

// InitRepository connects the configured backend once. The returned
// func releases the connection.
func InitRepository(ctx context.Context, cfg config.StoreConfig, l logger.LoggerV1) (repository.ArticleRepository, func(context.Context) error, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, col, err := db.InitMongo(ctx, cfg, l)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMongoArticleRepository(col), client.Disconnect, nil
	case config.DriverPostgres:
		pg, err := db.InitPostgres(ctx, cfg, l)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresArticleRepository(pg, cfg.Collection), func(context.Context) error {
			return pg.Close()
		}, nil
	default:
		return nil, nil, fmt.Errorf("ioc: unknown store driver %q", cfg.Driver)
	}
}

func InitLogger(cfg config.LogConfig) *logger.ZapLogger {
	l, err := logger.New(cfg.Level, cfg.Development)
	if err != nil {
		panic(err)
	}
	return l
}
