package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port                  int
	DevMode               bool
	DatabasePath          string
	LogLevel              string
	DefaultCurrency       string
	ForecastHorizonDays   int
	ModelFitTimeout       time.Duration
	GenomeRefreshSchedule string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnvAsInt("PORT", 8080),
		DevMode:               getEnvAsBool("DEV_MODE", false),
		DatabasePath:          getEnv("DATABASE_PATH", "./data/karobuddy.db"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DefaultCurrency:       getEnv("DEFAULT_CURRENCY", "USD"),
		ForecastHorizonDays:   getEnvAsInt("FORECAST_HORIZON_DAYS", 30),
		ModelFitTimeout:       getEnvAsDuration("MODEL_FIT_TIMEOUT", 5*time.Second),
		GenomeRefreshSchedule: getEnv("GENOME_REFRESH_SCHEDULE", "0 0 3 * * *"), // 3 AM daily
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.ForecastHorizonDays < 1 {
		return fmt.Errorf("FORECAST_HORIZON_DAYS must be at least 1")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
