package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	PORT        string
	DB_URL      string
	CORS_ORIGIN string
	APP_URL     string

	JWT_SECRET    string
	OIDC_ISSUER   string
	OIDC_AUDIENCE string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string

	// Price→plan map, one env var per billable plan. A plan without a
	// configured price id is simply not purchasable.
	STRIPE_PRICE_TRIAL     string
	STRIPE_PRICE_ESSENTIAL string
	STRIPE_PRICE_PRO       string
	STRIPE_PRICE_PREMIUM   string

	REDIS_ADDR     string
	REDIS_PASSWORD string

	// Fixed-window rate limits, requests per minute.
	RATE_LIMIT_API     int
	RATE_LIMIT_BILLING int

	PAYMENT_RETENTION_DAYS int
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	CORS_ORIGIN = mustEnv("CORS_ORIGIN")
	APP_URL = getEnv("APP_URL", "http://localhost:3000")

	JWT_SECRET = getEnv("JWT_SECRET", "")
	OIDC_ISSUER = getEnv("OIDC_ISSUER", "")
	OIDC_AUDIENCE = getEnv("OIDC_AUDIENCE", "")
	if JWT_SECRET == "" && OIDC_ISSUER == "" {
		log.Fatal().Msg("Either JWT_SECRET or OIDC_ISSUER must be set")
	}

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = mustEnv("STRIPE_WEBHOOK_SECRET")

	STRIPE_PRICE_TRIAL = getEnv("STRIPE_PRICE_TRIAL", "")
	STRIPE_PRICE_ESSENTIAL = getEnv("STRIPE_PRICE_ESSENTIAL", "")
	STRIPE_PRICE_PRO = getEnv("STRIPE_PRICE_PRO", "")
	STRIPE_PRICE_PREMIUM = getEnv("STRIPE_PRICE_PREMIUM", "")

	REDIS_ADDR = getEnv("REDIS_ADDR", "localhost:6379")
	REDIS_PASSWORD = getEnv("REDIS_PASSWORD", "")

	RATE_LIMIT_API = getEnvInt("RATE_LIMIT_API", 120)
	RATE_LIMIT_BILLING = getEnvInt("RATE_LIMIT_BILLING", 10)

	PAYMENT_RETENTION_DAYS = getEnvInt("PAYMENT_RETENTION_DAYS", 730)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatal().Str("key", key).Msg("Missing required environment variable")
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatal().Str("key", key).Str("value", v).Msg("Environment variable is not an integer")
	}
	return n
}
