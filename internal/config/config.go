package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	SaveDir   string `env:"KASTLE_SAVE_DIR" envDefault:".saves"`
	DBPath    string `env:"KASTLE_DB_PATH" envDefault:"kastle.db"`
	LogLevel  string `env:"KASTLE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"KASTLE_LOG_FORMAT" envDefault:"text"`

	// GeminiAPIKey is only needed to enrich worlds with generated descriptions.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"KASTLE_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// RequireGemini returns an error when no Gemini API key is configured.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}
