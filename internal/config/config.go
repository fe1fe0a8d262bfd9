package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string        `env:"ADDR" envDefault:":8080"`
	MaxGames         int           `env:"MAX_GAMES" envDefault:"100"`
	RateLimit        int           `env:"RATE_LIMIT" envDefault:"100"`
	GameTTL          time.Duration `env:"GAME_TTL" envDefault:"30m"`
	MaintainInterval time.Duration `env:"MAINTAIN_INTERVAL" envDefault:"30s"`
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
