package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Bot     BotConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"` // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	RoundDuration  time.Duration `env:"ROUND_DURATION" envDefault:"8m"`
	ShufflePlayers bool          `env:"SHUFFLE_PLAYERS" envDefault:"true"`
	RoomCodeLength int           `env:"ROOM_CODE_LENGTH" envDefault:"6"`
}

// BotConfig holds bot-player configuration. An empty API key disables
// autonomous play: bots can still join but never act.
type BotConfig struct {
	APIKey          string        `env:"CLAUDE_API_KEY"`
	Model           string        `env:"CLAUDE_MODEL" envDefault:"claude-3-5-haiku-20241022"`
	ThinkingDelay   time.Duration `env:"BOT_THINKING_DELAY" envDefault:"3s"`
	DecisionTimeout time.Duration `env:"BOT_DECISION_TIMEOUT" envDefault:"30s"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// Load parses configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
