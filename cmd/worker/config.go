package main

import (
	"log"
	"os"
	"strconv"
)

// Config holds worker-local settings. The rest comes from the shared
// container config.
type Config struct {
	Environment string
	RedisAddr   string
	Concurrency int
}

func loadConfig() *Config {
	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		RedisAddr:   getEnv("REDIS_HOST", "localhost:6379"),
		Concurrency: getEnvInt("WORKER_CONCURRENCY", 20),
	}

	log.Printf("[Config] Redis: %s, concurrency: %d", cfg.RedisAddr, cfg.Concurrency)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
