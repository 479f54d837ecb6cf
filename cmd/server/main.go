package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/waypost/waypost/internal/config"
	"github.com/waypost/waypost/internal/server"
	"github.com/waypost/waypost/internal/store"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.LoadServerConfig()

	db, err := store.Connect(cfg.PostgresURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Migrations run over the direct (non-pooled) connection when one is
	// configured, keeping DDL away from the serving pool.
	if err := store.Migrate(db, cfg.PostgresDirectURL, logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	locationStore := store.NewGormStore(db, logger)
	srv := server.New(cfg.HTTPAddr, cfg.MetricsAddr, locationStore, logger)

	// Handle graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stopCh
		logger.Info().Msg("Shutting down gracefully...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to shut down cleanly")
		}
	}()

	if err := srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Location service failed")
	}
}
