package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration, built once at startup and
// passed to constructors explicitly.
type Config struct {
	Env            string
	Port           string
	LogLevel       string
	AllowedOrigins string
	JWTSecret      string
	WalletCacheTTL time.Duration

	// Opening balance applied when cmd/system_seed provisions the system wallet.
	SystemWalletOpeningBalance string

	Database DatabaseConfig
	Redis    RedisConfig
	Stripe   StripeConfig
}

// DatabaseConfig holds PostgreSQL connection and pool settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig holds the wallet cache connection settings.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// StripeConfig holds coin purchase settings.
type StripeConfig struct {
	SecretKey      string
	WebhookSecret  string
	Currency       string
	CoinPriceCents int64
}

// DSN returns the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// Addr returns host:port for the redis client.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Load reads the environment (after LoadEnv) into a Config.
func Load() *Config {
	return &Config{
		Env:                        GetEnv("ENV", "development"),
		Port:                       GetEnv("PORT", "3000"),
		LogLevel:                   GetEnv("LOG_LEVEL", "info"),
		AllowedOrigins:             GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		JWTSecret:                  GetEnv("JWT_SECRET", "daswos"),
		WalletCacheTTL:             GetDurationEnv("WALLET_CACHE_TTL", 30*time.Second),
		SystemWalletOpeningBalance: GetEnv("SYSTEM_WALLET_OPENING_BALANCE", "0"),
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "daswos"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:  GetBoolEnv("REDIS_ENABLED", true),
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		Stripe: StripeConfig{
			SecretKey:      GetEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:  GetEnv("STRIPE_WEBHOOK_SECRET", ""),
			Currency:       GetEnv("STRIPE_CURRENCY", "usd"),
			CoinPriceCents: int64(GetIntEnv("COIN_PRICE_CENTS", 1)),
		},
	}
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
