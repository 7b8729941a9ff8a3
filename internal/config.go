package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	LogLevel    string
	Port        uint16
	DatabaseUrl string

	// Currency is the ISO 4217 code used for card settlements.
	Currency string

	// TaxRate is the estimated VAT rate applied to cart totals.
	TaxRate float64

	// ServiceChargeRate is the venue's service charge; 0 disables it.
	ServiceChargeRate float64

	// AllowedOrigins is the CORS allowlist for the table-side web client.
	AllowedOrigins []string

	OrderAPI OrderAPIConfig
	NATS     NATSConfig
	Stripe   StripeConfig
}

// OrderAPIConfig points at the kitchen order backend.
type OrderAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NATSConfig holds the event broker settings. An empty URL disables
// event publishing.
type NATSConfig struct {
	URL string
}

type StripeConfig struct {
	SecretKey string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		// Walk up directories to find .env (max 2 parent directories)
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:               getEnv("ENV", "dev"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Port:              getEnvInt("PORT", 3000),
		DatabaseUrl:       getEnv("DATABASE_URL", ""),
		Currency:          getEnv("CURRENCY", "usd"),
		TaxRate:           getEnvFloat("TAX_RATE", 0.08),
		ServiceChargeRate: getEnvFloat("SERVICE_CHARGE_RATE", 0),
		AllowedOrigins:    []string{getEnv("ALLOWED_ORIGIN", "*")},
		OrderAPI: OrderAPIConfig{
			BaseURL: getEnv("ORDER_API_BASE_URL", "http://localhost:8080"),
			Timeout: getEnvDuration("ORDER_API_TIMEOUT", 10*time.Second),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.TaxRate < 0 || cfg.TaxRate > 1 {
		return nil, fmt.Errorf("TAX_RATE must be between 0 and 1, got %v", cfg.TaxRate)
	}
	if cfg.ServiceChargeRate < 0 || cfg.ServiceChargeRate > 1 {
		return nil, fmt.Errorf("SERVICE_CHARGE_RATE must be between 0 and 1, got %v", cfg.ServiceChargeRate)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
