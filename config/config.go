package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP    HTTPConfig
	DB      DBConfig
	Catalog CatalogConfig
	Pricing PricingConfig
	Session SessionConfig
}

type HTTPConfig struct {
	Addr string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type CatalogConfig struct {
	Source string // "builtin" or "postgres"
}

type PricingConfig struct {
	DeliveryFee float64
	PlatformFee float64
	GSTRate     float64
}

type SessionConfig struct {
	CountdownTicks int // seconds shown on the success screen before auto-reset
	TickInterval   time.Duration
	PaymentDelay   time.Duration // simulated gateway processing time
	GeoTimeout     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))

	return &Config{
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "swiftdine"),
		},
		Catalog: CatalogConfig{
			Source: getEnv("CATALOG_SOURCE", "builtin"),
		},
		Pricing: PricingConfig{
			DeliveryFee: getEnvFloat("DELIVERY_FEE", 30),
			PlatformFee: getEnvFloat("PLATFORM_FEE", 5),
			GSTRate:     getEnvFloat("GST_RATE", 0.05),
		},
		Session: SessionConfig{
			CountdownTicks: getEnvInt("SUCCESS_COUNTDOWN_SECONDS", 5),
			TickInterval:   time.Second,
			PaymentDelay:   time.Duration(getEnvInt("PAYMENT_DELAY_MS", 1500)) * time.Millisecond,
			GeoTimeout:     time.Duration(getEnvInt("GEO_TIMEOUT_SECONDS", 10)) * time.Second,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
