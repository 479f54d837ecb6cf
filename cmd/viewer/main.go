package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/waypost/waypost/internal/config"
	"github.com/waypost/waypost/internal/services"
	"github.com/waypost/waypost/pkg/client"
	"github.com/waypost/waypost/pkg/file"
	"github.com/waypost/waypost/pkg/render"
)

func main() {
	configPath := flag.String("config", "configs/viewer.yaml", "path to the viewer configuration file")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("instance_id", uuid.New().String()).
		Logger()

	fileClient := file.NewFileService()
	cfg, err := config.LoadConfig(*configPath, fileClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	locationClient := client.New(cfg.Server.BaseURL, cfg.Server.RequestTimeout, logger)
	renderer := buildRenderer(cfg, logger)

	registry := services.NewRegistry(logger)
	registry.Register("viewer", services.NewViewerService(
		cfg.Viewer.Interval,
		locationClient,
		renderer,
		logger,
	))

	if err := registry.StartServices(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start services")
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	logger.Info().Msg("Shutting down gracefully...")
	if err := registry.StopServices(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop services cleanly")
	}
}

// buildRenderer selects the marker sink. The static map renderer needs a
// Maps API key, from the config file or the API_KEY environment variable.
func buildRenderer(cfg *config.Config, logger zerolog.Logger) render.Renderer {
	if cfg.Viewer.Renderer == "staticmap" {
		apiKey := cfg.Viewer.MapsAPIKey
		if envKey := os.Getenv("API_KEY"); envKey != "" {
			apiKey = envKey
		}
		if apiKey != "" {
			return render.NewStaticMapRenderer(apiKey, logger)
		}
		logger.Warn().Msg("No Maps API key configured, falling back to log renderer")
	}
	return render.NewLogRenderer(logger)
}
