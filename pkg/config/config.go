// Package config loads service configuration from the environment, one
// struct per concern.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config aggregates the configuration of every concern.
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Docscan DocscanConfig
}

// Load reads the full configuration from the environment.
func Load() *Config {
	return &Config{
		Server:  loadServerConfig(),
		Auth:    loadAuthConfig(),
		Docscan: loadDocscanConfig(),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
