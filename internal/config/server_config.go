package config

import (
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds the location service configuration, supplied through
// the process environment. The store takes two connection strings: a pooled
// one for serving requests and a direct one used only for migrations.
type ServerConfig struct {
	HTTPAddr          string
	MetricsAddr       string
	PostgresURL       string // pooled connection (POSTGRES_PRISMA_URL)
	PostgresDirectURL string // non-pooled connection (POSTGRES_URL_NON_POOLING)
}

// LoadServerConfig reads the server configuration from the environment.
func LoadServerConfig() ServerConfig {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":3000")
	v.SetDefault("metrics_addr", ":9090")

	// Environment names kept compatible with the original deployment.
	_ = v.BindEnv("postgres_url", "POSTGRES_PRISMA_URL")
	_ = v.BindEnv("postgres_direct_url", "POSTGRES_URL_NON_POOLING")
	_ = v.BindEnv("http_addr", "HTTP_ADDR")
	_ = v.BindEnv("metrics_addr", "METRICS_ADDR")

	return ServerConfig{
		HTTPAddr:          v.GetString("http_addr"),
		MetricsAddr:       v.GetString("metrics_addr"),
		PostgresURL:       v.GetString("postgres_url"),
		PostgresDirectURL: v.GetString("postgres_direct_url"),
	}
}
