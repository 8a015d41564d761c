package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	infrahttp "market_backend/internal/platform/http"
)

// Client はCoinGeckoから暗号資産のUSD価格を取得します。
// APIキーなしでも利用できますが、設定されていればデモキーとして送信します。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// PricesUSD はCoinGecko ID（"bitcoin" など）をキーとするUSD価格を返します。
// 価格が返らなかったIDはマップに含まれません。
func (c *Client) PricesUSD(ctx context.Context, ids []string) (map[string]float64, error) {
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	u := fmt.Sprintf("%s/simple/price?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.cfg.APIKey)
	}

	// {"bitcoin":{"usd":67850}, ...}
	var body map[string]map[string]float64
	if err := infrahttp.DoJSON(c.client, req, "coingecko", &body); err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(body))
	for id, prices := range body {
		if usd, ok := prices["usd"]; ok {
			out[id] = usd
		}
	}
	return out, nil
}
