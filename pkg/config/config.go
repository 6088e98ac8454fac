package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	MatchBatchLimit int     // default cap for batch matching runs, 0 = unlimited
	RateLimitRPS    float64 // per-client request rate for the HTTP API
	CORSOrigins     []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MATCH_BATCH_LIMIT", 0)
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("CORS_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.MatchBatchLimit = viper.GetInt("MATCH_BATCH_LIMIT")
	if cfg.MatchBatchLimit < 0 {
		log.Printf("Warning: Invalid MATCH_BATCH_LIMIT (%d). Defaulting to 0 (unlimited).\n", cfg.MatchBatchLimit)
		cfg.MatchBatchLimit = 0
	}

	cfg.RateLimitRPS = viper.GetFloat64("RATE_LIMIT_RPS")
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 20.0
	}

	cfg.CORSOrigins = viper.GetStringSlice("CORS_ORIGINS")
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	return cfg, nil
}
