// Package finnhub provides a client for the Finnhub stock quote API.
package finnhub

import (
	"os"
	"time"
)

// DefaultBaseURL is the public REST endpoint.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// DefaultRateLimit is the free tier quota of calls per minute.
const DefaultRateLimit = 60

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey    string        // FINNHUB_API_KEY
	BaseURL   string        // FINNHUB_BASE_URL, defaults to DefaultBaseURL
	Timeout   time.Duration // HTTP request timeout
	RateLimit int           // calls per minute; 0 disables limiting
}

// Configured reports whether an API key is present.
func (c Config) Configured() bool {
	return c.APIKey != ""
}

// LoadConfig loads Finnhub configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("FINNHUB_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		APIKey:    os.Getenv("FINNHUB_API_KEY"),
		BaseURL:   base,
		Timeout:   10 * time.Second,
		RateLimit: DefaultRateLimit,
	}
}
