package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// HTTP configuration
	ListenAddr string

	// Platform configuration
	StartingBalance decimal.Decimal // credited to every new wallet

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment, reading a .env file first
// if one is present
func load() (*Config, error) {
	// Missing .env is fine, real environments set variables directly
	_ = godotenv.Load()

	config := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ListenAddr:      os.Getenv("LISTEN_ADDR"),
		StartingBalance: decimal.NewFromInt(1),
		Environment:     os.Getenv("ENVIRONMENT"),
	}

	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}

	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		parsed, err := decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("invalid STARTING_BALANCE %q: %w", balance, err)
		}
		if parsed.IsNegative() {
			return nil, fmt.Errorf("STARTING_BALANCE must not be negative")
		}
		config.StartingBalance = parsed
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
