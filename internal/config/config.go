// Package config loads runtime settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries every knob the game binary reads. Empty OpenRouter,
// Redis, and database settings disable the corresponding integrations
// rather than failing: the game itself never requires the network.
type Config struct {
	// Game setup. An empty mode triggers the interactive picker; seed 0
	// draws a random seed.
	Mode      string `env:"LIARSBAR_MODE"`
	Seed      uint64 `env:"LIARSBAR_SEED" envDefault:"0"`
	HumanName string `env:"LIARSBAR_PLAYER_NAME"`
	// Headless replaces the human seat with the house persona.
	Headless bool          `env:"LIARSBAR_HEADLESS" envDefault:"false"`
	BotPause time.Duration `env:"LIARSBAR_BOT_PAUSE" envDefault:"1s"`

	// OpenRouter. Without an API key the LLM personas fall back to their
	// built-in policies.
	OpenRouterAPIKey  string        `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	OpenRouterTimeout time.Duration `env:"OPENROUTER_TIMEOUT" envDefault:"30s"`

	// Agent memory. The journal always writes local files; Redis adds
	// cross-game recall, Postgres archives finished games.
	MemoryDir     string `env:"LIARSBAR_MEMORY_DIR" envDefault:"data"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	DatabaseURL   string `env:"DATABASE_URL"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the optional .env file and parses the environment.
func Load() (Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
