// Package dto defines data transfer objects for GoldAPI responses.
package dto

// MetalResponse is the body of GET /{metal}/{currency}.
type MetalResponse struct {
	Metal         string  `json:"metal"`
	Currency      string  `json:"currency"`
	Price         float64 `json:"price"` // per troy ounce
	Change        float64 `json:"ch"`
	ChangePercent float64 `json:"chp"`
	PriceGram24k  float64 `json:"price_gram_24k"`
	Timestamp     int64   `json:"timestamp"` // unix seconds
	Error         string  `json:"error"`
}
