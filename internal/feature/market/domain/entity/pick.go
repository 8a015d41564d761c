package entity

// StockPick is a stock surfaced by the picks heuristic.
type StockPick struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Market        Market  `json:"market"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	Score         float64 `json:"score"`
	Reason        string  `json:"reason"`
}
