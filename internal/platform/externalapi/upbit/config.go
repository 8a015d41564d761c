// Package upbit provides a client for the Upbit exchange quotation API.
// The quotation endpoints are public and need no credentials.
package upbit

import (
	"os"
	"time"
)

// DefaultBaseURL is the public REST endpoint.
const DefaultBaseURL = "https://api.upbit.com/v1"

// Config holds configuration for the Upbit API client.
type Config struct {
	BaseURL string        // UPBIT_BASE_URL, defaults to DefaultBaseURL
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Upbit configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("UPBIT_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{BaseURL: base, Timeout: 10 * time.Second}
}
