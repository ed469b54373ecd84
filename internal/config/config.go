// Package config handles loading and validation of application configuration
// from environment variables. Supports .env files via godotenv.
package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMinBounty is 0.0001 of the native currency in wei.
const DefaultMinBounty = "100000000000000"

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        int
	Environment string // "development" | "staging" | "production"

	// Chain
	RPCURL          string
	ContractAddress string
	ChainID         int64

	// Transaction relay. Write endpoints are disabled when SignerKey is empty.
	SignerKey     string
	SettleTimeout time.Duration

	// Aggregation
	MinBountyWei     *big.Int
	PlatformFeeBps   int64
	FetchConcurrency int
	RefreshInterval  time.Duration

	// Security
	JWTSecret      string
	AllowedOrigins []string
	RateLimitRPM   int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (development)
	_ = godotenv.Load()

	minBounty, ok := new(big.Int).SetString(getEnv("MIN_BOUNTY_WEI", DefaultMinBounty), 10)
	if !ok {
		return nil, fmt.Errorf("MIN_BOUNTY_WEI is not a decimal integer")
	}

	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		Environment: getEnv("ENVIRONMENT", "development"),

		RPCURL:          getEnv("RPC_URL", "https://mainnet.base.org"),
		ContractAddress: getEnv("CONTRACT_ADDRESS", ""),
		ChainID:         int64(getEnvInt("CHAIN_ID", 8453)),

		SignerKey:     getEnv("SIGNER_KEY", ""),
		SettleTimeout: getEnvDuration("SETTLE_TIMEOUT", 2*time.Minute),

		MinBountyWei:     minBounty,
		PlatformFeeBps:   int64(getEnvInt("PLATFORM_FEE_BPS", 200)),
		FetchConcurrency: getEnvInt("FETCH_CONCURRENCY", 1),
		RefreshInterval:  getEnvDuration("REFRESH_INTERVAL", time.Minute),

		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
		RateLimitRPM:   getEnvInt("RATE_LIMIT_RPM", 60),
	}

	if cfg.FetchConcurrency < 1 {
		cfg.FetchConcurrency = 1
	}
	if cfg.PlatformFeeBps < 0 || cfg.PlatformFeeBps > 10000 {
		return nil, fmt.Errorf("PLATFORM_FEE_BPS must be between 0 and 10000")
	}

	// Validate required fields in production
	if cfg.Environment == "production" {
		if cfg.ContractAddress == "" {
			return nil, fmt.Errorf("CONTRACT_ADDRESS is required in production")
		}
		if cfg.JWTSecret == "dev-secret-change-in-production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
