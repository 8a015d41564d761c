package entity

// BondData is a bond yield or bond index level.
type BondData struct {
	Name          string  `json:"name"`
	Yield         float64 `json:"yield"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Timestamp     int64   `json:"timestamp"` // unix millis
}
