package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 所有環境變數只在這裡讀取
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Redis
	Redis RedisConfig

	// External providers
	FinMind FinMindConfig
	Yahoo   YahooConfig

	// Cache TTLs per data kind
	Cache CacheConfig

	// Outbound HTTP
	HTTP HTTPConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// FinMindConfig holds FinMind open data API configuration
type FinMindConfig struct {
	Token   string // opaque access credential, may be empty (degraded mode)
	BaseURL string
}

// YahooConfig holds Yahoo Finance configuration
type YahooConfig struct {
	ChartBaseURL string
	NewsBaseURL  string
}

// CacheConfig holds per-data-kind cache TTLs
type CacheConfig struct {
	PriceTTL time.Duration
	FlowTTL  time.Duration
	NewsTTL  time.Duration
}

// HTTPConfig holds outbound HTTP client configuration
type HTTPConfig struct {
	Timeout    time.Duration
	MaxRetries int
	RatePerSec int // requests per second against external providers
	RateBurst  int
}

// Load reads configuration from environment variables
// ⭐ SSOT: 只有這個函式會呼叫 os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// External providers
		FinMind: FinMindConfig{
			Token:   getEnv("FINMIND_TOKEN", ""),
			BaseURL: getEnv("FINMIND_BASE_URL", "https://api.finmindtrade.com/api/v4"),
		},
		Yahoo: YahooConfig{
			ChartBaseURL: getEnv("YAHOO_CHART_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
			NewsBaseURL:  getEnv("YAHOO_NEWS_BASE_URL", "https://tw.stock.yahoo.com"),
		},

		// Cache
		Cache: CacheConfig{
			PriceTTL: getEnvAsDuration("CACHE_PRICE_TTL", "1h"),
			FlowTTL:  getEnvAsDuration("CACHE_FLOW_TTL", "1h"),
			NewsTTL:  getEnvAsDuration("CACHE_NEWS_TTL", "15m"),
		},

		// Outbound HTTP
		HTTP: HTTPConfig{
			Timeout:    getEnvAsDuration("HTTP_TIMEOUT", "15s"),
			MaxRetries: getEnvAsInt("HTTP_MAX_RETRIES", 1),
			RatePerSec: getEnvAsInt("HTTP_RATE_PER_SEC", 5),
			RateBurst:  getEnvAsInt("HTTP_RATE_BURST", 5),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	// FINMIND_TOKEN is deliberately not required: without it the engine
	// runs in degraded mode and the flow criterion scores zero.

	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
