package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Data   DataConfig
	Redis  RedisConfig
	Batch  BatchConfig
	Export ExportConfig
}

// DataConfig points at the game data directory
type DataConfig struct {
	Dir string
}

// RedisConfig holds Redis-specific configuration. An empty URL means
// profiles are kept in memory.
type RedisConfig struct {
	URL string
}

// Enabled reports whether a Redis URL is configured
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// BatchConfig controls parallel batch calculation
type BatchConfig struct {
	Workers int
}

// ExportConfig controls spreadsheet output
type ExportConfig struct {
	Dir string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Data: DataConfig{
			Dir: getEnvOrDefault("CALC_DATA_DIR", "data"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Batch: BatchConfig{
			Workers: getEnvAsIntOrDefault("CALC_WORKERS", 4),
		},
		Export: ExportConfig{
			Dir: getEnvOrDefault("CALC_EXPORT_DIR", "output"),
		},
	}

	if cfg.Batch.Workers < 1 {
		return nil, fmt.Errorf("CALC_WORKERS must be at least 1, got %d", cfg.Batch.Workers)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
