package upbit

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"market_backend/internal/platform/externalapi/upbit/dto"
	infrahttp "market_backend/internal/platform/http"
)

// Ticker はUpbitのKRW建てティッカーです。
type Ticker struct {
	Symbol        string  // "BTC"
	Price         float64 // KRW
	Change        float64
	ChangePercent float64
	Volume24h     float64 // KRW
	Timestamp     int64   // unix millis
}

// Client はUpbitのKRWマーケットからティッカーを取得します。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Tickers は指定シンボルのKRW建てティッカーを1回のリクエストでまとめて取得します。
// 結果はUpbitが返した順序のままです。
func (c *Client) Tickers(ctx context.Context, symbols []string) ([]Ticker, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	markets := make([]string, 0, len(symbols))
	for _, s := range symbols {
		markets = append(markets, "KRW-"+strings.ToUpper(s))
	}
	q := url.Values{}
	q.Set("markets", strings.Join(markets, ","))
	u := fmt.Sprintf("%s/ticker?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var body []dto.TickerResponse
	if err := infrahttp.DoJSON(c.client, req, "upbit", &body); err != nil {
		return nil, err
	}

	out := make([]Ticker, 0, len(body))
	for _, t := range body {
		out = append(out, Ticker{
			Symbol:        strings.TrimPrefix(t.Market, "KRW-"),
			Price:         t.TradePrice,
			Change:        t.SignedChangePrice,
			ChangePercent: math.Round(t.SignedChangeRate*10000) / 100,
			Volume24h:     t.AccTradePrice24h,
			Timestamp:     t.Timestamp,
		})
	}
	return out, nil
}
