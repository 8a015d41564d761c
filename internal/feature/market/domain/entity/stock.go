package entity

// VolumeRankItem is one row of a Korean market's trading-volume ranking.
type VolumeRankItem struct {
	Rank          int     `json:"rank"`
	Code          string  `json:"code"` // 6-digit KRX code (e.g., "005930")
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	TradingValue  int64   `json:"tradingValue"` // KRW
}

// IndexQuote is the latest level of a market index.
type IndexQuote struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// MarketSummary holds the headline Korean indices.
type MarketSummary struct {
	Kospi     IndexQuote `json:"kospi"`
	Kosdaq    IndexQuote `json:"kosdaq"`
	Timestamp int64      `json:"timestamp"` // unix millis
}

// StockOverview is the payload of the Korean stocks endpoint.
type StockOverview struct {
	VolumeRank  []VolumeRankItem `json:"volumeRank"`
	MarketIndex MarketSummary    `json:"marketIndex"`
}

// StockData is a US equity quote.
type StockData struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Timestamp     int64   `json:"timestamp"` // unix millis
}
