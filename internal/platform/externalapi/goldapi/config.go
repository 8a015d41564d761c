// Package goldapi provides a client for the GoldAPI.io spot metal price API.
package goldapi

import (
	"os"
	"time"
)

// DefaultBaseURL is the public REST endpoint.
const DefaultBaseURL = "https://www.goldapi.io/api"

// Config holds configuration for the GoldAPI client.
type Config struct {
	APIKey  string        // GOLDAPI_KEY
	BaseURL string        // GOLDAPI_BASE_URL, defaults to DefaultBaseURL
	Timeout time.Duration // HTTP request timeout
}

// Configured reports whether an API key is present.
func (c Config) Configured() bool {
	return c.APIKey != ""
}

// LoadConfig loads GoldAPI configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("GOLDAPI_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("GOLDAPI_KEY"),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
