// Package config provides configuration for the ski tutor service.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	Port int `env:"PORT" envDefault:"8080"`

	// LLM settings
	LLMBaseURL string        `env:"LLM_BASE_URL" envDefault:"http://localhost:4000"`
	LLMAPIKey  string        `env:"LLM_API_KEY"`
	Model      string        `env:"MODEL" envDefault:"vertex_ai/gemini-2.0-flash-lite"`
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	// Session store. Empty keeps sessions in memory for the process
	// lifetime; set a sqlite DSN to persist them.
	DatabaseURL string `env:"DATABASE_URL"`

	// Front end
	IndexFile string `env:"INDEX_FILE" envDefault:"web/index.html"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
