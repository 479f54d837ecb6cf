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
	"github.com/waypost/waypost/pkg/location"
	"github.com/waypost/waypost/pkg/render"
)

func main() {
	configPath := flag.String("config", "configs/agent.yaml", "path to the agent configuration file")
	flag.Parse()

	// Set up structured logging with a per-run instance ID
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("instance_id", uuid.New().String()).
		Logger()

	// Load configuration from file
	fileClient := file.NewFileService()
	cfg, err := config.LoadConfig(*configPath, fileClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Build the position sampler backend
	provider, err := buildProvider(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create location provider")
	}

	locationClient := client.New(cfg.Server.BaseURL, cfg.Server.RequestTimeout, logger)
	renderer := render.NewLogRenderer(logger)

	// Register and start the polling services
	registry := services.NewRegistry(logger)
	if cfg.Tracker.Enabled {
		registry.Register("tracker", services.NewTrackerService(
			cfg.Tracker.Interval,
			cfg.Tracker.SampleTimeout,
			provider,
			locationClient,
			renderer,
			logger,
		))
	}
	if cfg.Viewer.Enabled {
		registry.Register("viewer", services.NewViewerService(
			cfg.Viewer.Interval,
			locationClient,
			renderer,
			logger,
		))
	}

	if err := registry.StartServices(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start services")
	}
	logger.Info().Msg("All services started successfully")

	// Handle graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	logger.Info().Msg("Shutting down gracefully...")
	if err := registry.StopServices(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop services cleanly")
	}
}

// buildProvider selects the sampler backend from configuration. The Maps API
// key may come from the config file or the API_KEY environment variable.
func buildProvider(cfg *config.Config, logger zerolog.Logger) (location.Provider, error) {
	switch cfg.Tracker.Provider {
	case "gps":
		return location.NewGPSSensorProvider(cfg.Tracker.GPSDevicePort, cfg.Tracker.GPSBaudRate), nil
	case "google":
		apiKey := cfg.Tracker.MapsAPIKey
		if envKey := os.Getenv("API_KEY"); envKey != "" {
			apiKey = envKey
		}
		return location.NewGoogleGeolocationProvider(apiKey)
	default:
		logger.Info().
			Str("latitude", cfg.Tracker.StaticLatitude).
			Str("longitude", cfg.Tracker.StaticLongitude).
			Msg("Using static location provider")
		return location.NewStaticProvider(cfg.Tracker.StaticLatitude, cfg.Tracker.StaticLongitude)
	}
}
