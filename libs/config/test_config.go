package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from the .env file or TEST_ prefixed environment variables for integration tests
// If TEST_DB_HOST is not set, returns a Config with empty database values
// which allows tests to use fallback DSN values
func LoadTestConfig() (*Config, error) {
	// Try loading from project root (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	if os.Getenv("TEST_DB_HOST") == "" {
		// Return empty config to allow fallback DSN in tests
		cfg.JWT.Secret = os.Getenv("TEST_JWT_SECRET")
		return cfg, nil
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "TEST_"}); err != nil {
		return nil, fmt.Errorf("failed to parse test environment: %w", err)
	}

	return cfg, nil
}
