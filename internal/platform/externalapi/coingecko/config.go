// Package coingecko provides a client for the CoinGecko simple price API.
package coingecko

import (
	"os"
	"time"
)

// DefaultBaseURL is the public REST endpoint.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Config holds configuration for the CoinGecko API client.
type Config struct {
	APIKey  string        // COINGECKO_API_KEY, optional demo key
	BaseURL string        // COINGECKO_BASE_URL, defaults to DefaultBaseURL
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads CoinGecko configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("COINGECKO_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("COINGECKO_API_KEY"),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
