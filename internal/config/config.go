// Package config reads the preview service settings from the
// environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variables understood by Load.
const (
	EnvAddr        = "GOSTEEL_ADDR"
	EnvLogLevel    = "GOSTEEL_LOG_LEVEL"
	EnvLogFormat   = "GOSTEEL_LOG_FORMAT"
	EnvCatalog     = "GOSTEEL_CATALOG"
	EnvReadTimeout = "GOSTEEL_READ_TIMEOUT"
	EnvDevelopment = "GOSTEEL_DEVELOPMENT"
)

type Config struct {
	values map[string]string
}

// Load captures the current environment.
func Load() *Config {
	cfg := &Config{values: make(map[string]string)}
	cfg.loadFromEnv()
	return cfg
}

func (c *Config) loadFromEnv() {
	envVars := []string{
		EnvAddr,
		EnvLogLevel,
		EnvLogFormat,
		EnvCatalog,
		EnvReadTimeout,
		EnvDevelopment,
	}

	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			c.values[envVar] = value
		}
	}
}

func (c *Config) GetString(key, defaultValue string) string {
	if value, exists := c.values[key]; exists {
		return value
	}
	return defaultValue
}

func (c *Config) GetBool(key string, defaultValue bool) bool {
	if value, exists := c.values[key]; exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func (c *Config) GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := c.values[key]; exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
