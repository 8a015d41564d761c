// Package dto defines data transfer objects for KIS API responses.
// KIS returns every number as a string.
package dto

// TokenResponse is the body of POST /oauth2/tokenP.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// VolumeRankResponse is the body of the volume-rank quotation.
type VolumeRankResponse struct {
	RtCd   string `json:"rt_cd"` // "0" on success
	MsgCd  string `json:"msg_cd"`
	Msg1   string `json:"msg1"`
	Output []struct {
		Name         string `json:"hts_kor_isnm"`
		Code         string `json:"mksc_shrn_iscd"`
		Rank         string `json:"data_rank"`
		Price        string `json:"stck_prpr"`
		Change       string `json:"prdy_vrss"`
		ChangeRate   string `json:"prdy_ctrt"`
		Volume       string `json:"acml_vol"`
		TradingValue string `json:"acml_tr_pbmn"`
	} `json:"output"`
}

// IndexPriceResponse is the body of the index price inquiry.
type IndexPriceResponse struct {
	RtCd   string `json:"rt_cd"`
	MsgCd  string `json:"msg_cd"`
	Msg1   string `json:"msg1"`
	Output struct {
		Value      string `json:"bstp_nmix_prpr"`
		Change     string `json:"bstp_nmix_prdy_vrss"`
		ChangeRate string `json:"bstp_nmix_prdy_ctrt"`
	} `json:"output"`
}
