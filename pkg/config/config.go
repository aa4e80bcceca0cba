// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	// Record store connections
	Source *SnowflakeConfig
	Target *PostgresConfig

	// Job settings
	BaseDir      string // Working directory for CSV files and reports
	JobFile      string // Job definition file (relative to BaseDir)
	AutoContinue bool   // When true, the abort/continue prompt auto-continues

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadBaseConfig loads the job and logging settings from environment
// variables, without the record store sections. Offline commands that
// never touch a store use this.
func LoadBaseConfig() *Config {
	return &Config{
		// Default values
		BaseDir:      getEnv("MIGRATE_BASE_DIR", "."),
		JobFile:      getEnv("MIGRATE_JOB_FILE", "migration.yaml"),
		AutoContinue: getEnvAsBool("MIGRATE_AUTO_CONTINUE", false),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := LoadBaseConfig()

	// Load record store configurations
	sourceConfig, err := LoadSnowflakeConfig()
	if err != nil {
		return nil, errors.New("failed to load Snowflake configuration: " + err.Error())
	}
	cfg.Source = sourceConfig

	targetConfig, err := LoadPostgresConfig()
	if err != nil {
		return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
	}
	cfg.Target = targetConfig

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Source == nil {
		return errors.New("snowflake configuration is required")
	}

	if c.Target == nil {
		return errors.New("postgreSQL configuration is required")
	}

	if c.BaseDir == "" {
		return errors.New("base directory is required")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

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
