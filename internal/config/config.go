package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Store          string
	DatabaseURL    string
	ServerPort     string
	AllowedOrigins string
	JWTSecret      string
	OperatorPIN    string
	OpenAIKey      string
	OpenAIModel    string
	UploadDir      string
	LogLevel       string
	LogFormat      string
	MaxBodyBytes   int64
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Store:          getEnv("STORE", StorePostgres),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		OperatorPIN:    os.Getenv("OPERATOR_PIN"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
		UploadDir:      getEnv("UPLOAD_DIR", os.TempDir()),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		MaxBodyBytes:   1 << 20,
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxBodyBytes = n
	}

	switch cfg.Store {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable not set")
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreMemory, cfg.Store)
	}
	if cfg.JWTSecret != "" && cfg.OperatorPIN == "" {
		return nil, fmt.Errorf("OPERATOR_PIN must be set when JWT_SECRET is set")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
