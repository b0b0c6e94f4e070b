package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL"`
	Port        int    `env:"PORT" envDefault:"8080"`

	// Emotion classifier sidecar
	EmotionServiceURL string `env:"EMOTION_SERVICE_URL" envDefault:"http://localhost:5000"`

	// Generative text service
	GeminiAPIURL string `env:"GEMINI_API_URL"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
