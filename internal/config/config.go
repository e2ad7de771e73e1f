package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config centralises all environment and runtime configuration.
type Config struct {
	APIBaseURL  string
	SessionFile string
	HTTPTimeout time.Duration
	PageSize    int
	LogLevel    string
}

// Load builds the Config struct, validating critical env vars.
func Load() *Config {
	return &Config{
		APIBaseURL:  getEnvOrFail("API_BASE_URL"),
		SessionFile: getEnvOrDefault("SESSION_FILE", ".ivy-session.json"),
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT", 25*time.Second),
		PageSize:    getIntEnv("PAGE_SIZE", 10),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func getEnvOrFail(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("environment variable %s is required but not set", key)
	}
	return val
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func getIntEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
