package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from the .env file or environment variables for integration tests
// If TEST_REDIS_HOST is not set, returns a Config with an empty Redis host
// which allows tests depending on Redis to be skipped
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("./../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	redisHost := os.Getenv("TEST_REDIS_HOST")
	if redisHost == "" {
		return cfg, nil
	}
	cfg.Redis.Host = redisHost

	redisPortStr := os.Getenv("TEST_REDIS_PORT")
	if redisPortStr == "" {
		redisPortStr = "6379"
	}
	redisPort, err := strconv.Atoi(redisPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_REDIS_PORT: %w", err)
	}
	cfg.Redis.Port = redisPort
	cfg.Redis.Password = os.Getenv("TEST_REDIS_PASSWORD")

	redisDBStr := os.Getenv("TEST_REDIS_DB")
	if redisDBStr == "" {
		redisDBStr = "0"
	}
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_REDIS_DB: %w", err)
	}
	cfg.Redis.DB = redisDB

	return cfg, nil
}
