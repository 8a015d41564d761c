package entity

// MetalPrice is a spot precious-metal price per troy ounce.
type MetalPrice struct {
	Symbol        string  `json:"symbol"` // "XAU" or "XAG"
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	PricePerGram  float64 `json:"pricePerGram"`
	Currency      string  `json:"currency"`
}

// GoldSilverData pairs gold and silver prices.
type GoldSilverData struct {
	Gold      MetalPrice `json:"gold"`
	Silver    MetalPrice `json:"silver"`
	Timestamp int64      `json:"timestamp"` // unix millis
}
