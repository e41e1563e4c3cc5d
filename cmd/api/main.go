package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"wallcove/internal/config"
	"wallcove/internal/database"
	"wallcove/internal/handlers"
	"wallcove/internal/log"
	"wallcove/internal/mediahost"
	"wallcove/internal/mediahost/cloudinary"
	"wallcove/internal/mediahost/objectstore"
	"wallcove/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Log.Level)

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	provider, err := newProvider(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init media host")
	}

	handlerSet := handlers.NewHandlerSet(logger, dbPool, provider, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, dbPool)
}

func newProvider(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (mediahost.Provider, error) {
	switch cfg.Media.Provider {
	case "objectstore":
		store, err := objectstore.New(cfg.Media.ObjectStore)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			logger.Warn().Err(err).Msg("ensure bucket failed")
		}
		return store, nil
	default:
		return cloudinary.New(cfg.Media.Cloudinary), nil
	}
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, db *pgxpool.Pool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	db.Close()

	logger.Info().Msg("server exited cleanly")
}
