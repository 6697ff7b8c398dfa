// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	API       APIConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Session   SessionConfig
	Redis     RedisConfig
	RateLimit int
}

// APIConfig holds settings of the remote LMS REST API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port          int
	MaxUploadSize int64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// SessionConfig holds browser session settings
type SessionConfig struct {
	Store         string
	TTL           time.Duration
	SweepInterval time.Duration
	CookieSecure  bool
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Remote API configuration
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("LMS_API_BASE_URL")), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("LMS_API_BASE_URL is required")
	}
	cfg.API.BaseURL = baseURL

	timeout, err := durationEnv("LMS_API_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.API.Timeout = timeout

	// Server configuration
	serverPort, err := intEnv("SERVER_PORT", "8080")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort

	maxUpload, err := intEnv("MAX_UPLOAD_SIZE", strconv.Itoa(50*1024*1024))
	if err != nil {
		return nil, err
	}
	cfg.Server.MaxUploadSize = int64(maxUpload)

	rateLimit, err := intEnv("RATE_LIMIT_PER_MINUTE", "100")
	if err != nil {
		return nil, err
	}
	cfg.RateLimit = rateLimit

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Session configuration
	store := strings.ToLower(os.Getenv("SESSION_STORE"))
	if store == "" {
		store = SessionStoreMemory
	}
	if store != SessionStoreMemory && store != SessionStoreRedis {
		return nil, fmt.Errorf("invalid SESSION_STORE: %s, must be 'memory' or 'redis'", store)
	}
	cfg.Session.Store = store

	ttl, err := durationEnv("SESSION_TTL", "24h")
	if err != nil {
		return nil, err
	}
	cfg.Session.TTL = ttl

	sweep, err := durationEnv("SESSION_SWEEP_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	if sweep <= 0 {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: must be positive")
	}
	cfg.Session.SweepInterval = sweep
	cfg.Session.CookieSecure = os.Getenv("SESSION_COOKIE_SECURE") == "true"

	// Redis configuration (only used by the redis session store)
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost" // default
	}
	cfg.Redis.Host = redisHost

	redisPort, err := intEnv("REDIS_PORT", "6379")
	if err != nil {
		return nil, err
	}
	cfg.Redis.Port = redisPort

	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional

	redisDB, err := intEnv("REDIS_DB", "0")
	if err != nil {
		return nil, err
	}
	cfg.Redis.DB = redisDB

	return cfg, nil
}

// RedisAddr returns the host:port address of the Redis server
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// parseOrigins parses a comma-separated list of origins, defaulting to all origins
func parseOrigins(raw string) []string {
	if raw == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}

	origins := strings.Split(raw, ",")
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		return []string{"*"}
	}
	return allowed
}

func intEnv(key, def string) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		raw = def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key, def string) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		raw = def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
