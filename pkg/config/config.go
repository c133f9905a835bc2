package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	Finnhub FinnhubConfig
	FRED    FREDConfig
	Alpaca  AlpacaConfig
	Gemini  GeminiConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// FinnhubConfig holds Finnhub market-data API configuration.
type FinnhubConfig struct {
	APIKey  string
	BaseURL string
}

// FREDConfig holds FRED macro time-series API configuration.
type FREDConfig struct {
	APIKey  string
	BaseURL string
}

// AlpacaConfig holds Alpaca brokerage API configuration.
type AlpacaConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string
}

// GeminiConfig holds Gemini API configuration for sentiment classification.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "4000"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_ENABLED", false),
		},

		Finnhub: FinnhubConfig{
			APIKey:  getEnv("FINNHUB_API_KEY", ""),
			BaseURL: getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
		},

		FRED: FREDConfig{
			APIKey:  getEnv("FRED_API_KEY", ""),
			BaseURL: getEnv("FRED_BASE_URL", "https://api.stlouisfed.org/fred"),
		},

		Alpaca: AlpacaConfig{
			APIKey:    getEnv("ALPACA_API_KEY", ""),
			APISecret: getEnv("ALPACA_API_SECRET", ""),
			BaseURL:   getEnv("ALPACA_BASE_URL", "https://paper-api.alpaca.markets"),
		},

		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	return cfg, nil
}

// RequireFinnhub fails if the market-data capability is not configured.
// Strategies that need quotes, earnings or news must call this before a run starts.
func (c *Config) RequireFinnhub() error {
	if c.Finnhub.APIKey == "" {
		return fmt.Errorf("missing configuration for capability %q: FINNHUB_API_KEY not set", "finnhub")
	}
	return nil
}

// RequireAlpaca fails if the brokerage capability is not configured.
func (c *Config) RequireAlpaca() error {
	if c.Alpaca.APIKey == "" || c.Alpaca.APISecret == "" {
		return fmt.Errorf("missing configuration for capability %q: ALPACA_API_KEY/ALPACA_API_SECRET not set", "alpaca")
	}
	return nil
}

// RequireGemini fails if the sentiment-classification capability is not configured.
func (c *Config) RequireGemini() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("missing configuration for capability %q: GEMINI_API_KEY not set", "gemini")
	}
	return nil
}

// loadEnvFile attempts to load .env from several locations.
// A missing .env is fine; deployments set env vars directly.
func loadEnvFile() {
	paths := []string{
		".env",
		filepath.Join("..", ".env"),
		filepath.Join("..", "..", ".env"),
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// getEnv returns env value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns env value as int or default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns env value as bool or default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration returns env value as duration or default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
