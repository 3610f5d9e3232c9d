package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Ledger commit retry policy for transient storage failures.
	CommitRetryMax     int
	CommitRetryBackoff time.Duration

	// Registry cache settings.
	RegistryCacheTTL time.Duration

	// Maximum column or equation drift a report accepts before flagging
	// itself unbalanced, in currency units.
	ReportTolerance decimal.Decimal

	// Rate limit in limiter format, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("COMMIT_RETRY_MAX", 3)
	viper.SetDefault("COMMIT_RETRY_BACKOFF", "50ms")
	viper.SetDefault("REGISTRY_CACHE_TTL", "5m")
	viper.SetDefault("REPORT_TOLERANCE", "0.01")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.CommitRetryMax = viper.GetInt("COMMIT_RETRY_MAX")
	if cfg.CommitRetryMax < 0 {
		log.Printf("Warning: Invalid value for COMMIT_RETRY_MAX (%d). Defaulting to 3.\n", cfg.CommitRetryMax)
		cfg.CommitRetryMax = 3
	}

	backoffStr := viper.GetString("COMMIT_RETRY_BACKOFF")
	backoff, err := time.ParseDuration(backoffStr)
	if err != nil {
		backoff = 50 * time.Millisecond
		if backoffStr != "" {
			log.Printf("Warning: Invalid value for COMMIT_RETRY_BACKOFF ('%s'). Defaulting to %s.\n", backoffStr, backoff.String())
		}
	}
	cfg.CommitRetryBackoff = backoff

	cacheTTLStr := viper.GetString("REGISTRY_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 5 * time.Minute
		if cacheTTLStr != "" {
			log.Printf("Warning: Invalid value for REGISTRY_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL.String())
		}
	}
	cfg.RegistryCacheTTL = cacheTTL

	toleranceStr := viper.GetString("REPORT_TOLERANCE")
	tolerance, err := decimal.NewFromString(toleranceStr)
	if err != nil || tolerance.IsNegative() {
		tolerance = decimal.NewFromFloat(0.01)
		log.Printf("Warning: Invalid value for REPORT_TOLERANCE ('%s'). Defaulting to %s.\n", toleranceStr, tolerance.String())
	}
	cfg.ReportTolerance = tolerance

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
