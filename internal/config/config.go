package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Auth: shared secret used to verify bearer tokens issued by the
	// identity provider.
	AuthSecret string

	// Feature toggles. The reference deployments disagreed on both of
	// these, so they are configuration rather than hardcoded policy.
	RequireTransactionCategory bool
	BudgetPeriodFilter         bool

	// Market data proxies
	RatesBaseURL  string
	CryptoBaseURL string
	CryptoAPIKey  string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	return &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		AuthSecret: getEnv("AUTH_SECRET", "fallback-secret-key-for-dev-only"),

		RequireTransactionCategory: getEnvBool("REQUIRE_TRANSACTION_CATEGORY", false),
		BudgetPeriodFilter:         getEnvBool("BUDGET_PERIOD_FILTER", false),

		RatesBaseURL:  getEnv("RATES_BASE_URL", "https://api.frankfurter.dev/v1"),
		CryptoBaseURL: getEnv("CRYPTO_BASE_URL", "https://api.freecryptoapi.com/v1"),
		CryptoAPIKey:  getEnv("CRYPTO_API_KEY", ""),
	}, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool parses a boolean environment variable, returning the default
// when unset or unparseable.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
