package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store drivers.
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Collecta"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET" default:"change-me"`
	}

	Store struct {
		Driver string `envconfig:"STORE_DRIVER" default:"file"`
		Dir    string `envconfig:"STORE_DIR" default:"./data"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"collecta"`
	}

	SQLite struct {
		Path string `envconfig:"SQLITE_PATH" default:"./data/collecta.db"`
	}

	Redis struct {
		Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
		Password string        `envconfig:"REDIS_PASSWORD" default:""`
		DB       int           `envconfig:"REDIS_DB" default:"0"`
		Prefix   string        `envconfig:"REDIS_PREFIX" default:"collecta:"`
		Timeout  time.Duration `envconfig:"REDIS_TIMEOUT" default:"5s"`
	}

	S3 struct {
		Endpoint  string        `envconfig:"S3_ENDPOINT"`
		AccessKey string        `envconfig:"S3_ACCESS_KEY"`
		SecretKey string        `envconfig:"S3_SECRET_KEY"`
		Bucket    string        `envconfig:"S3_BUCKET" default:"collecta-exports"`
		Region    string        `envconfig:"S3_REGION" default:"us-east-1"`
		UseSSL    bool          `envconfig:"S3_USE_SSL" default:"true"`
		Prefix    string        `envconfig:"S3_PREFIX" default:"exports/"`
		LinkTTL   time.Duration `envconfig:"S3_LINK_TTL" default:"24h"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// StorageEnabled reports whether export publishing has an endpoint to talk to.
func (c *Config) StorageEnabled() bool {
	return c.S3.Endpoint != ""
}

// Level maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Store.Driver {
	case StoreFile, StoreMemory, StoreRedis, StorePostgres, StoreSQLite:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	return &cfg, nil
}
