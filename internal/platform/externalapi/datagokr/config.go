// Package datagokr provides a client for the data.go.kr (공공데이터포털) bond market index service.
package datagokr

import (
	"os"
	"time"
)

// DefaultBondIndexURL is the GetMarketIndexInfoService bond index operation.
const DefaultBondIndexURL = "https://apis.data.go.kr/1160100/service/GetMarketIndexInfoService/getBondMarketIndex"

// Config holds configuration for the data.go.kr client.
type Config struct {
	ServiceKey   string        // DATA_GO_KR_API_KEY (decoded form)
	BondIndexURL string        // DATA_GO_KR_BOND_URL, defaults to DefaultBondIndexURL
	Rows         int           // rows requested per call
	Timeout      time.Duration // HTTP request timeout
}

// Configured reports whether a service key is present.
func (c Config) Configured() bool {
	return c.ServiceKey != ""
}

// LoadConfig loads data.go.kr configuration from environment variables.
func LoadConfig() Config {
	u := os.Getenv("DATA_GO_KR_BOND_URL")
	if u == "" {
		u = DefaultBondIndexURL
	}
	return Config{
		ServiceKey:   os.Getenv("DATA_GO_KR_API_KEY"),
		BondIndexURL: u,
		Rows:         100,
		Timeout:      10 * time.Second,
	}
}
