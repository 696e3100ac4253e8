// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Matching MatchingConfig
}

// AppConfig holds process-level configuration.
type AppConfig struct {
	Environment string
	LogLevel    string
}

// RedisConfig holds the session-store Redis configuration.
type RedisConfig struct {
	URL        string
	Password   string
	DB         int
	SessionTTL time.Duration
}

// MatchingConfig holds the overridable matching tuning values. Weights and
// the withholding table keep their compiled-in defaults.
type MatchingConfig struct {
	MatchThreshold        float64
	ReviewThreshold       float64
	MaxWithholdingGapDays int
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		App: AppConfig{
			Environment: getEnv("ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			URL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			SessionTTL: getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Matching: MatchingConfig{
			MatchThreshold:        getEnvAsFloat("MATCH_THRESHOLD", 0.70),
			ReviewThreshold:       getEnvAsFloat("REVIEW_THRESHOLD", 0.50),
			MaxWithholdingGapDays: getEnvAsInt("WITHHOLDING_MAX_GAP_DAYS", 30),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
