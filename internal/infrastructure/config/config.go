package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL bounds customer and admin sessions.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=720h"`

	// SweepInterval is the period of the background loyalty expiry sweep.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL, default=24h"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Vision VisionConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=foodtruck"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// VisionConfig points at the OCR endpoint. An empty API key leaves OCR
// running in degraded mode: uploads are accepted, text comes back empty.
type VisionConfig struct {
	APIKey  string        `env:"VISION_API_KEY"`
	BaseURL string        `env:"VISION_BASE_URL"`
	Timeout time.Duration `env:"VISION_TIMEOUT, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	return &cfg
}
