package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Upstream Wildex backend configuration
	Upstream UpstreamConfig

	// Database configuration (session storage)
	Database DatabaseConfig

	// Redis configuration (catalog cache)
	Redis RedisConfig

	// Session token configuration
	Session SessionConfig

	// Payment checkout widget configuration
	Payment PaymentConfig

	// Events configuration
	Events EventsConfig

	// CORS configuration
	CORS CORSConfig

	// Basket limits
	Basket BasketConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// UpstreamConfig holds configuration for the upstream Wildex REST backend
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DatabaseConfig holds session-database configuration
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis cache configuration.
// Caching is disabled when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// SessionConfig holds BFF session token configuration
type SessionConfig struct {
	Secret      string
	TokenExpiry time.Duration
	CookieName  string
}

// PaymentConfig holds Razorpay checkout widget configuration.
// Only the public key id is handed to the browser; order creation and
// signature verification happen upstream.
type PaymentConfig struct {
	KeyID       string
	DisplayName string
	ThemeColor  string
	LogoURL     string
	Currency    string
}

// EventsConfig holds RabbitMQ configuration for best-effort event publishing.
// Publishing is disabled when URL is empty.
type EventsConfig struct {
	URL   string
	Queue string
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// BasketConfig holds participant limits for the booking basket
type BasketConfig struct {
	MinParticipants int
	MaxParticipants int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("UPSTREAM_BASE_URL", "https://openbacken-production.up.railway.app/api"),
			Timeout: time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: time.Duration(getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		Session: SessionConfig{
			Secret:      getEnv("SESSION_SECRET", ""),
			TokenExpiry: time.Duration(getEnvAsInt("SESSION_TOKEN_EXPIRY", 2592000)) * time.Second,
			CookieName:  getEnv("SESSION_COOKIE_NAME", "wildex_session"),
		},
		Payment: PaymentConfig{
			KeyID:       getEnv("RAZORPAY_KEY_ID", ""),
			DisplayName: getEnv("PAYMENT_DISPLAY_NAME", "Open Door Expeditions"),
			ThemeColor:  getEnv("PAYMENT_THEME_COLOR", "#F5AD4C"),
			LogoURL:     getEnv("PAYMENT_LOGO_URL", ""),
			Currency:    getEnv("PAYMENT_CURRENCY", "INR"),
		},
		Events: EventsConfig{
			URL:   getEnv("RABBITMQ_URL", ""),
			Queue: getEnv("EVENTS_QUEUE", "booking.confirmed"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		},
		Basket: BasketConfig{
			MinParticipants: getEnvAsInt("BASKET_MIN_PARTICIPANTS", 1),
			MaxParticipants: getEnvAsInt("BASKET_MAX_PARTICIPANTS", 20),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}

	if c.Payment.KeyID == "" && c.Server.Environment == "production" {
		return fmt.Errorf("RAZORPAY_KEY_ID is required in production")
	}

	if c.Basket.MinParticipants < 1 || c.Basket.MaxParticipants < c.Basket.MinParticipants {
		return fmt.Errorf("invalid basket participant limits: min=%d max=%d",
			c.Basket.MinParticipants, c.Basket.MaxParticipants)
	}

	return nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
