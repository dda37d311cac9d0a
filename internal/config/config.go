// Package config provides configuration management for the lead manager.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Credits   CreditsConfig
	Logging   LoggingConfig
	Ping      PingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
}

// StorageConfig selects the lead store backend and locates the backing
// files for the file-backed stores.
type StorageConfig struct {
	Backend        string // "file" (default) or "postgres"
	LeadsCSVPath   string
	ListsJSONPath  string
	LocalStatePath string // client-side fallback state blob
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Postgres PostgresConfig
	Redis    RedisConfig
}

// PostgresConfig holds Postgres configuration
type PostgresConfig struct {
	Host           string
	Port           string
	Database       string
	User           string
	Password       string
	MaxConnections int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled        bool
	Host           string
	Port           string
	Password       string
	DB             int
	MaxConnections int
}

// CacheConfig holds lead snapshot cache configuration
type CacheConfig struct {
	TTL time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

// CreditsConfig holds the credit costs of gated client actions. The
// numbers are tunable; the defaults match the original product rules.
type CreditsConfig struct {
	InitialBalance int
	UnlockEmail    int
	UnlockPhone    int
	GenerateLeads  int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// PingConfig holds the liveness endpoint configuration
type PingConfig struct {
	Message string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	// Load .env file (optional in production)
	if err := godotenv.Load(); err != nil {
		// .env file is optional - environment variables can be set directly
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Storage: StorageConfig{
			Backend:        getEnv("STORAGE_BACKEND", BackendFile),
			LeadsCSVPath:   getEnv("LEADS_CSV_PATH", "data/leads.csv"),
			ListsJSONPath:  getEnv("LISTS_JSON_PATH", "data/lists.json"),
			LocalStatePath: getEnv("LOCAL_STATE_PATH", "data/leads-app-state.json"),
		},
		Database: DatabaseConfig{
			Postgres: PostgresConfig{
				Host:           getEnv("POSTGRES_HOST", "localhost"),
				Port:           getEnv("POSTGRES_PORT", "5432"),
				Database:       getEnv("POSTGRES_DB", "leadstack"),
				User:           getEnv("POSTGRES_USER", "leadstack"),
				Password:       getEnv("POSTGRES_PASSWORD", ""),
				MaxConnections: getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 20),
			},
			Redis: RedisConfig{
				Enabled:        getEnvAsBool("REDIS_ENABLED", false),
				Host:           getEnv("REDIS_HOST", "localhost"),
				Port:           getEnv("REDIS_PORT", "6379"),
				Password:       getEnv("REDIS_PASSWORD", ""),
				DB:             getEnvAsInt("REDIS_DB", 0),
				MaxConnections: getEnvAsInt("REDIS_MAX_CONNECTIONS", 20),
			},
		},
		Cache: CacheConfig{
			TTL: getEnvAsDuration("CACHE_TTL", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsInt("RATE_LIMIT_RPS", 50),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Credits: CreditsConfig{
			InitialBalance: getEnvAsInt("CREDITS_INITIAL_BALANCE", 1000),
			UnlockEmail:    getEnvAsInt("CREDITS_UNLOCK_EMAIL", 1),
			UnlockPhone:    getEnvAsInt("CREDITS_UNLOCK_PHONE", 2),
			GenerateLeads:  getEnvAsInt("CREDITS_GENERATE_LEADS", 5),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Ping: PingConfig{
			Message: getEnv("PING_MESSAGE", "ping"),
		},
	}

	if config.Storage.Backend != BackendFile && config.Storage.Backend != BackendPostgres {
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}

	return config, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
