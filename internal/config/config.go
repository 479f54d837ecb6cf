package config

import (
	"time"

	"github.com/waypost/waypost/pkg/file"
)

// Config is the YAML configuration for the agent and viewer binaries.
type Config struct {
	Server struct {
		BaseURL        string        `yaml:"base_url"`        // Location service base URL
		RequestTimeout time.Duration `yaml:"request_timeout"` // Per-request HTTP timeout
	} `yaml:"server"`

	Tracker struct {
		Enabled         bool          `yaml:"enabled"`          // Enable/disable the tracking loop
		Interval        time.Duration `yaml:"interval"`         // Interval between sampling ticks
		SampleTimeout   time.Duration `yaml:"sample_timeout"`   // Upper bound on one position sample
		Provider        string        `yaml:"provider"`         // Sampler backend: gps, google or static
		MapsAPIKey      string        `yaml:"maps_api_key"`     // Google Maps API key (google provider)
		GPSDevicePort   string        `yaml:"gps_device_port"`  // Serial port of the GPS receiver
		GPSBaudRate     int           `yaml:"gps_baud_rate"`    // Baud rate for the serial port
		StaticLatitude  string        `yaml:"static_latitude"`  // Fixed latitude (static provider)
		StaticLongitude string        `yaml:"static_longitude"` // Fixed longitude (static provider)
	} `yaml:"tracker"`

	Viewer struct {
		Enabled    bool          `yaml:"enabled"`      // Enable/disable the polling viewer
		Interval   time.Duration `yaml:"interval"`     // Interval between latest-location polls
		Renderer   string        `yaml:"renderer"`     // Marker sink: log or staticmap
		MapsAPIKey string        `yaml:"maps_api_key"` // Google Maps API key (staticmap renderer)
	} `yaml:"viewer"`
}

// LoadConfig loads the YAML configuration from the specified file.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	if err := fileClient.ReadYamlFile(filename, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = 10 * time.Second
	}
	if config.Tracker.Interval == 0 {
		config.Tracker.Interval = 60 * time.Second
	}
	if config.Tracker.SampleTimeout == 0 {
		config.Tracker.SampleTimeout = 5 * time.Second
	}
	if config.Viewer.Interval == 0 {
		config.Viewer.Interval = 60 * time.Second
	}
}
