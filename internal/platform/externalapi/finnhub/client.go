package finnhub

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/feature/market/usecase"
	"market_backend/internal/platform/externalapi/finnhub/dto"
	infrahttp "market_backend/internal/platform/http"
	"market_backend/internal/shared/fallback"
	"market_backend/internal/shared/ratelimiter"
)

// Client はFinnhubから米国株の気配値を取得するUSStockSource実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// ClientがUSStockSourceを実装していることをコンパイル時に検証します。
var _ usecase.USStockSource = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
// 無料枠の上限を超えないよう、cfg.RateLimit に従って1分あたりの呼び出し数を制限します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{
		cfg:     cfg,
		client:  client,
		limiter: ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute),
	}
}

// Quotes は銘柄ごとに /quote を順に呼び出します。
// 1銘柄でも失敗した場合はエラーを返し、部分的な結果は返しません。
func (c *Client) Quotes(ctx context.Context, tickers []entity.Ticker) ([]entity.StockData, error) {
	if !c.cfg.Configured() {
		return nil, fmt.Errorf("finnhub: %w", fallback.ErrNotConfigured)
	}

	out := make([]entity.StockData, 0, len(tickers))
	for _, t := range tickers {
		q, err := c.quote(ctx, t.Symbol)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.StockData{
			Symbol:        t.Symbol,
			Name:          t.Name,
			Price:         q.Current,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
			High:          q.High,
			Low:           q.Low,
			Open:          q.Open,
			PreviousClose: q.PreviousClose,
			Timestamp:     q.Timestamp * 1000,
		})
	}
	return out, nil
}

func (c *Client) quote(ctx context.Context, symbol string) (dto.QuoteResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return dto.QuoteResponse{}, err
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", c.cfg.APIKey)
	u := fmt.Sprintf("%s/quote?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return dto.QuoteResponse{}, err
	}

	var body dto.QuoteResponse
	if err := infrahttp.DoJSON(c.client, req, "finnhub", &body); err != nil {
		return dto.QuoteResponse{}, err
	}
	if body.Current == 0 && body.Timestamp == 0 {
		return dto.QuoteResponse{}, fmt.Errorf("finnhub: no quote for %s", symbol)
	}
	return body, nil
}
