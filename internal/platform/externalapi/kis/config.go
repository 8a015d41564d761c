// Package kis provides a client for the Korea Investment & Securities Open API.
package kis

import (
	"os"
	"time"
)

// DefaultBaseURL is the production REST endpoint.
const DefaultBaseURL = "https://openapi.koreainvestment.com:9443"

// Config holds configuration for the KIS API client.
type Config struct {
	AppKey    string        // KIS_APP_KEY
	AppSecret string        // KIS_APP_SECRET
	BaseURL   string        // KIS_BASE_URL, defaults to DefaultBaseURL
	Timeout   time.Duration // HTTP request timeout
}

// Configured reports whether both credentials are present.
func (c Config) Configured() bool {
	return c.AppKey != "" && c.AppSecret != ""
}

// LoadConfig loads KIS configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("KIS_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		AppKey:    os.Getenv("KIS_APP_KEY"),
		AppSecret: os.Getenv("KIS_APP_SECRET"),
		BaseURL:   base,
		Timeout:   10 * time.Second,
	}
}
