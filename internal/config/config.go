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
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Assistant AssistantConfig
	Autosave  AutosaveConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// AuthConfig carries the single-author credential. SecretHash is a bcrypt
// hash of the admin secret; Secret is a plaintext fallback for local runs.
type AuthConfig struct {
	Secret      string
	SecretHash  string
	JWTSecret   string
	TokenExpiry int // hours
}

type AssistantConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type AutosaveConfig struct {
	Interval   time.Duration
	MinContent int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Atelier API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "atelier"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Secret:      getEnv("ADMIN_SECRET", ""),
			SecretHash:  getEnv("ADMIN_SECRET_HASH", ""),
			JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			TokenExpiry: getEnvInt("JWT_EXPIRY_HOURS", 72),
		},
		Assistant: AssistantConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Model:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			Timeout: time.Duration(getEnvInt("GEMINI_TIMEOUT_SECONDS", 20)) * time.Second,
		},
		Autosave: AutosaveConfig{
			Interval:   time.Duration(getEnvInt("AUTOSAVE_INTERVAL_SECONDS", 10)) * time.Second,
			MinContent: getEnvInt("AUTOSAVE_MIN_CONTENT", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks production-critical settings.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Auth.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Auth.SecretHash == "" && c.Auth.Secret == "" {
			return fmt.Errorf("ADMIN_SECRET_HASH must be set in production")
		}
	}

	return nil
}

// HasDatabase reports whether a Postgres store is configured. Without one the
// application falls back to the in-memory reference store.
func (c *Config) HasDatabase() bool {
	return c.Database.Host != ""
}

// HasRedis reports whether the read cache is configured.
func (c *Config) HasRedis() bool {
	return c.Redis.Host != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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
