package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains client configuration parameters.
type Config struct {
	LogLevel int     `env:"LOG_LEVEL" envDefault:"0"`
	API      API     `envPrefix:"API_"`
	Session  Session `envPrefix:"SESSION_"`
	Photo    Photo   `envPrefix:"PHOTO_"`
	Storage  Storage `envPrefix:"MINIO_"`
	Metrics  Metrics `envPrefix:"METRICS_"`
}

// API contains remote service parameters.
type API struct {
	BaseURL       string        `env:"BASE_URL" envDefault:"http://localhost:3333"`
	AvatarBaseURL string        `env:"AVATAR_BASE_URL" envDefault:"http://localhost:3333/avatar/"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Session contains local session persistence parameters.
type Session struct {
	DBPath string `env:"DB_PATH" envDefault:"gymfit.db"`
}

// Photo contains avatar constraints.
type Photo struct {
	MaxBytes int64 `env:"MAX_BYTES" envDefault:"3145728"`
}

// Storage contains parameters of the object store holding remote gallery assets.
type Storage struct {
	Enabled   bool   `env:"ENABLED" envDefault:"false"`
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"gymfit-access-key"`
	SecretKey string `env:"SECRET_KEY" envDefault:"gymfit-secret-key"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"gymfit-media"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Metrics contains metrics export parameters.
type Metrics struct {
	// File receives a text exposition of pipeline counters on exit. Empty disables it.
	File string `env:"FILE"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Photo.MaxBytes <= 0 {
		return nil, fmt.Errorf("failed to parse config: PHOTO_MAX_BYTES must be positive, got %d", cfg.Photo.MaxBytes)
	}

	return &cfg, nil
}
