// Package dto defines data transfer objects for Finnhub API responses.
package dto

// QuoteResponse is the body of GET /quote.
// Finnhub answers unknown symbols with 200 and all fields zero.
type QuoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"` // unix seconds
}
