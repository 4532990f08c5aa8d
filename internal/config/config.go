package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
// (optionally seeded from a .env file)
type Config struct {
	Server     ServerConfig
	Auth       AuthConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Translator TranslatorConfig
	Menu       MenuConfig
	Storage    StorageConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	AllowedOrigins  []string

	// GenerationTimeout bounds the AI translation endpoints, in seconds
	GenerationTimeout int
}

type AuthConfig struct {
	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration
	// SecretGenerated is set when JWT_SECRET was unset and a random
	// per-process secret is used instead. Tokens do not survive a restart.
	SecretGenerated bool
}

type DatabaseConfig struct {
	Driver string // sqlite or postgres
	DSN    string
}

// RedisConfig is optional; an empty Addr disables the public menu cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type TranslatorConfig struct {
	APIKey      string
	Model       string
	Concurrency int
}

type MenuConfig struct {
	PublicURL string
}

type StorageConfig struct {
	StaticDir     string
	LanguagesFile string
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8000"),
			Host:              getEnv("HOST", "0.0.0.0"),
			ReadTimeout:       getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:      getEnvAsInt("WRITE_TIMEOUT", 60),
			ShutdownTimeout:   getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			GenerationTimeout: getEnvAsInt("GENERATION_TIMEOUT", 600),
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:5173", "http://localhost:5174", "http://localhost:3000",
			}),
		},
		Auth: AuthConfig{
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
			JWTSecret:     os.Getenv("JWT_SECRET"),
			TokenTTL:      time.Duration(getEnvAsInt("JWT_EXPIRY_HOURS", 12)) * time.Hour,
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:    getEnv("DB_DSN", "file:menu.db?cache=shared&_fk=1"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvAsInt("MENU_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Translator: TranslatorConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Concurrency: getEnvAsInt("TRANSLATION_CONCURRENCY", 4),
		},
		Menu: MenuConfig{
			PublicURL: getEnv("MENU_URL", "http://localhost:5173"),
		},
		Storage: StorageConfig{
			StaticDir:     getEnv("STATIC_DIR", "static"),
			LanguagesFile: getEnv("LANGUAGES_FILE", "supported_languages.json"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.Auth.JWTSecret = secret
		cfg.Auth.SecretGenerated = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Server.GenerationTimeout < c.Server.WriteTimeout {
		return fmt.Errorf("GENERATION_TIMEOUT must not be shorter than WRITE_TIMEOUT")
	}

	if c.Auth.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD must not be empty")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive")
	}

	switch c.Database.Driver {
	case "sqlite", "sqlite3", "postgres":
	default:
		return fmt.Errorf("invalid DB_DRIVER: %s (must be sqlite or postgres)", c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	if c.Translator.Concurrency < 1 {
		return fmt.Errorf("TRANSLATION_CONCURRENCY must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
