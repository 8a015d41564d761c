// Package entity defines the domain models for the market feature.
package entity

// Market is a Korean stock market segment.
type Market string

const (
	KOSPI  Market = "KOSPI"
	KOSDAQ Market = "KOSDAQ"
)

// ParseMarket returns the market named by s. Anything other than "KOSDAQ" means KOSPI.
func ParseMarket(s string) Market {
	if Market(s) == KOSDAQ {
		return KOSDAQ
	}
	return KOSPI
}

// Ticker identifies an instrument to quote.
type Ticker struct {
	Symbol     string // Exchange symbol (e.g., "AAPL", "BTC")
	Name       string // Display name
	ExternalID string // Provider-specific id (e.g., CoinGecko "bitcoin"); empty if unused
}

// Asset classes stored in the watchlist.
const (
	AssetClassUSStock = "us_stock"
	AssetClassCrypto  = "crypto"
)
