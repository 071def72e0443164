// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Backend  BackendConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Session  SessionConfig
	Checkout CheckoutConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// BackendConfig points at the remote wholesale backend that owns all
// catalog, order, auth and message data.
type BackendConfig struct {
	BaseURL            string
	Timeout            time.Duration
	BreakerMaxRequests uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
	BreakerMinFailures uint32
}

// RedisConfig contains Redis configuration for the cart store
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// DatabaseConfig contains the optional Postgres cart-store backend
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// StorageConfig selects the durable cart store backend. IdleTimeout
// bounds how long an untouched session keeps its in-memory cart state
// before it is evicted back to the durable record.
type StorageConfig struct {
	Backend     string // redis, postgres or memory
	CartTTL     time.Duration
	IdleTimeout time.Duration
}

// SessionConfig controls the per-device session cookie the cart is
// keyed by.
type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
}

// CheckoutConfig contains checkout pricing constants. Shipping is a
// flat fee (currently zero) and tax is a flat rate applied to the
// subtotal; both are display-side only, the backend recomputes its own
// totals.
type CheckoutConfig struct {
	ShippingFee int64
	TaxRate     float64
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Pharmacy Storefront"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Backend: BackendConfig{
			BaseURL:            getEnv("BACKEND_BASE_URL", "http://127.0.0.1:3001"),
			Timeout:            getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second),
			BreakerMaxRequests: uint32(getEnvAsInt("BACKEND_BREAKER_MAX_REQUESTS", 3)),
			BreakerInterval:    getEnvAsDuration("BACKEND_BREAKER_INTERVAL", time.Minute),
			BreakerTimeout:     getEnvAsDuration("BACKEND_BREAKER_TIMEOUT", 30*time.Second),
			BreakerMinFailures: uint32(getEnvAsInt("BACKEND_BREAKER_MIN_FAILURES", 5)),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "storefront_db"),
			User:     getEnv("DB_USER", "storefront_user"),
			Password: getEnv("DB_PASSWORD", "storefront_password"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Storage: StorageConfig{
			Backend:     getEnv("CART_STORAGE_BACKEND", "redis"),
			CartTTL:     getEnvAsDuration("CART_TTL", 30*24*time.Hour),
			IdleTimeout: getEnvAsDuration("CART_IDLE_TIMEOUT", 30*time.Minute),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "session_id"),
			MaxAge:     getEnvAsDuration("SESSION_MAX_AGE", 30*24*time.Hour),
		},
		Checkout: CheckoutConfig{
			ShippingFee: getEnvAsInt64("CHECKOUT_SHIPPING_FEE", 0),
			TaxRate:     getEnvAsFloat("CHECKOUT_TAX_RATE", 0),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	switch c.Storage.Backend {
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis cart store")
		}
	case "postgres":
		if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
			return fmt.Errorf("DB_HOST, DB_NAME and DB_USER are required for the postgres cart store")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown CART_STORAGE_BACKEND %q (expected redis, postgres or memory)", c.Storage.Backend)
	}

	if c.Checkout.TaxRate < 0 || c.Checkout.TaxRate >= 1 {
		return fmt.Errorf("CHECKOUT_TAX_RATE must be in [0, 1)")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetDatabaseDSN returns the Postgres connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
