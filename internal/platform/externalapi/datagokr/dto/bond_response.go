// Package dto defines data transfer objects for data.go.kr responses.
package dto

// BondIndexResponse is the JSON body of getBondMarketIndex (resultType=json).
// Numeric fields arrive as strings.
type BondIndexResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"` // "00" on success
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			NumOfRows  int `json:"numOfRows"`
			PageNo     int `json:"pageNo"`
			TotalCount int `json:"totalCount"`
			Items      struct {
				Item []BondIndexItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// BondIndexItem is one index row for a base date.
type BondIndexItem struct {
	BaseDate    string `json:"basDt"` // YYYYMMDD
	Name        string `json:"idxNm"`
	Close       string `json:"clprIdx"`
	Change      string `json:"vs"`
	ChangeRatio string `json:"fltRt"`
}
