package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"WebNews/internal/config"
	"WebNews/internal/handlers"
	"WebNews/internal/ioc"
	"WebNews/internal/logger"
	"WebNews/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "webnews:", err)
		os.Exit(2)
	}

	l := ioc.InitLogger(cfg.Log)
	err = run(cfg, l)
	if err != nil {
		l.Error("server exited", logger.Error(err))
	}
	_ = l.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config, l logger.LoggerV1) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.Info("boot: connecting store", logger.String("driver", cfg.Store.Driver))
	repo, closeStore, err := ioc.InitRepository(ctx, cfg.Store, l)
	if err != nil {
		return fmt.Errorf("store unavailable: %w", err)
	}

	svc := service.NewArticleAccessor(repo, l)
	r := ioc.InitWebServer(cfg, l, ioc.InitRegistry(cfg.Metrics),
		handlers.NewArticleHandler(svc, l, cfg.API),
		handlers.NewPublicHandler(svc, l))

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	// ---------- start ----------
	errCh := make(chan error, 1)
	go func() {
		l.Info("API listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("not_found", cfg.API.NotFound),
			logger.Bool("expose_errors", cfg.API.ExposeErrors))
		errCh <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	case <-ctx.Done():
		l.Info("shutting down")
	}

	// ---------- stop ----------
	shutdownCtx := context.Background()
	if cfg.Server.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, cfg.Server.ShutdownTimeout)
		defer cancel()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("shutdown failed", logger.Error(err))
	}
	if err := closeStore(shutdownCtx); err != nil {
		l.Error("store close failed", logger.Error(err))
	}
	return serveErr
}
