// Package dto defines data transfer objects for Upbit API responses.
package dto

// TickerResponse is one element of the GET /ticker array.
type TickerResponse struct {
	Market            string  `json:"market"` // e.g., "KRW-BTC"
	TradePrice        float64 `json:"trade_price"`
	SignedChangePrice float64 `json:"signed_change_price"`
	SignedChangeRate  float64 `json:"signed_change_rate"` // fraction, 0.0125 = 1.25%
	AccTradePrice24h  float64 `json:"acc_trade_price_24h"`
	Timestamp         int64   `json:"timestamp"` // unix millis
}
