package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/matteonot12/icecat-helper/pkg/config"

	"github.com/matteonot12/icecat-helper/internal/icecat"
)

// Config holds all configuration for the icecat-helper service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// HTTP server
	HTTPPort int `env:"HELPER_HTTP_PORT" envDefault:"8080"`

	// Catalog provider
	CatalogBaseURL  string        `env:"CATALOG_BASE_URL" envDefault:"https://live.icecat.biz/api"`
	CatalogUsername string        `env:"CATALOG_USERNAME" envDefault:"openIcecat-live"`
	CatalogTimeout  time.Duration `env:"CATALOG_TIMEOUT" envDefault:"20s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load helper config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.CatalogBaseURL == "" {
		return nil, fmt.Errorf("CATALOG_BASE_URL is required")
	}
	if cfg.CatalogTimeout <= 0 {
		return nil, fmt.Errorf("CATALOG_TIMEOUT must be positive, got %s", cfg.CatalogTimeout)
	}
	return cfg, nil
}

// CatalogConfig returns the provider client configuration.
func (c *Config) CatalogConfig() icecat.Config {
	return icecat.Config{
		BaseURL:  c.CatalogBaseURL,
		Username: c.CatalogUsername,
		Timeout:  c.CatalogTimeout,
	}
}
