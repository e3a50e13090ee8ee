package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	Session SessionConfig
	Admin   AdminConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
}

// StorageConfig selects the persistence backend. "file" keeps one JSON
// document per collection under DataDir; "redis" keeps them under
// independent redis keys.
type StorageConfig struct {
	Backend string // file, redis
	DataDir string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret   string
	AdminTTL time.Duration
}

// AdminConfig carries the administrative credential pair. The secret is a
// bcrypt hash; the plaintext never lives in the binary or the repo.
type AdminConfig struct {
	ID         string
	SecretHash string
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "BookBites"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "file"),
			DataDir: getEnv("STORAGE_DATA_DIR", "./data"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:   getEnv("SESSION_SECRET", ""),
			AdminTTL: time.Duration(getEnvInt("ADMIN_SESSION_TTL_MINUTES", 60)) * time.Minute,
		},
		Admin: AdminConfig{
			ID:         getEnv("ADMIN_ID", ""),
			SecretHash: getEnv("ADMIN_SECRET_HASH", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	switch c.Storage.Backend {
	case "file", "redis":
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want file or redis)", c.Storage.Backend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
