package entity

// CryptoData is a crypto asset ticker priced in KRW with an optional USD price.
type CryptoData struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`    // KRW
	PriceUSD      float64 `json:"priceUsd"` // 0 when unavailable
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume24h     float64 `json:"volume24h"` // KRW traded over 24h
	Timestamp     int64   `json:"timestamp"` // unix millis
}
