package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Warehouse WarehouseConfig
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

type JWTConfig struct {
	Secret string
}

// WarehouseConfig carries operational thresholds for the fulfillment engine.
type WarehouseConfig struct {
	LowStockThreshold  int    // rows below this feed auto-replenish POs
	ReorderTargetQty   int    // auto-replenish tops each SKU up to this
	DefaultSupplier    string // supplier for auto-generated POs
	ReturnsDockCode    string // location receiving RMA stock
	CycleCountSampling int    // random locations per generated count session
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "NexWMS API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "nexwms"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Warehouse: WarehouseConfig{
			LowStockThreshold:  getEnvInt("WMS_LOW_STOCK_THRESHOLD", 10),
			ReorderTargetQty:   getEnvInt("WMS_REORDER_TARGET_QTY", 50),
			DefaultSupplier:    getEnv("WMS_DEFAULT_SUPPLIER", "Global Supplies Inc."),
			ReturnsDockCode:    getEnv("WMS_RETURNS_DOCK", "RETURNS-DOCK"),
			CycleCountSampling: getEnvInt("WMS_CYCLE_COUNT_SAMPLING", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks config sanity before the app starts serving.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.Warehouse.LowStockThreshold < 0 {
		return fmt.Errorf("WMS_LOW_STOCK_THRESHOLD must not be negative")
	}
	if c.Warehouse.ReorderTargetQty <= c.Warehouse.LowStockThreshold {
		return fmt.Errorf("WMS_REORDER_TARGET_QTY must exceed WMS_LOW_STOCK_THRESHOLD")
	}

	return nil
}

// Helper functions
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
