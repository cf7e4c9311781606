package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	ContentDir string `env:"INKPRESS_CONTENT_DIR" envDefault:"./storage/posts"`
	ServerHost string `env:"INKPRESS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"INKPRESS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"INKPRESS_ENV" envDefault:"development"`
	LogLevel   string `env:"INKPRESS_LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if the application is running in development
// mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}
