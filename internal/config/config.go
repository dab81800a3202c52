package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr        string        `env:"LISTEN_ADDR" envDefault:":8090"`
	BackendURL        string        `env:"BACKEND_URL" envDefault:"http://localhost:8000/api"`
	BackendTimeout    time.Duration `env:"BACKEND_TIMEOUT" envDefault:"30s"`
	DBPath            string        `env:"DB_PATH" envDefault:"data/tubstudio.db"`
	JWTSecret         string        `env:"JWT_SECRET"`
	CanonicalLanguage string        `env:"CANONICAL_LANGUAGE" envDefault:"English"`
	CommonDataMode    string        `env:"COMMON_DATA_MODE" envDefault:"shared"`
	CORSOrigins       []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	SessionMaxIdle    time.Duration `env:"SESSION_MAX_IDLE" envDefault:"2h"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.JWTSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using a random secret; sessions will not survive restarts")
	}
	return cfg, nil
}
