package datagokr

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/feature/market/usecase"
	"market_backend/internal/platform/externalapi/datagokr/dto"
	infrahttp "market_backend/internal/platform/http"
	"market_backend/internal/shared/fallback"
)

var kst = time.FixedZone("KST", 9*60*60)

// Client は公共データポータルから債券指数を取得するBondSource実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがBondSourceを実装していることをコンパイル時に検証します。
var _ usecase.BondSource = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Bonds は最新の基準日に属する債券指数だけを返します。
// 数値が解釈できない行は読み飛ばします。
func (c *Client) Bonds(ctx context.Context) ([]entity.BondData, error) {
	if !c.cfg.Configured() {
		return nil, fmt.Errorf("datagokr: %w", fallback.ErrNotConfigured)
	}

	rows := c.cfg.Rows
	if rows <= 0 {
		rows = 100
	}
	q := url.Values{}
	q.Set("serviceKey", c.cfg.ServiceKey)
	q.Set("resultType", "json")
	q.Set("numOfRows", strconv.Itoa(rows))
	q.Set("pageNo", "1")
	u := fmt.Sprintf("%s?%s", c.cfg.BondIndexURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var body dto.BondIndexResponse
	if err := infrahttp.DoJSON(c.client, req, "datagokr", &body); err != nil {
		return nil, err
	}
	if code := body.Response.Header.ResultCode; code != "00" {
		return nil, fmt.Errorf("datagokr: %s %s", code, body.Response.Header.ResultMsg)
	}

	items := body.Response.Body.Items.Item
	latest := ""
	for _, it := range items {
		if it.BaseDate > latest {
			latest = it.BaseDate
		}
	}
	if latest == "" {
		return nil, fmt.Errorf("datagokr: empty bond index list")
	}
	day, err := time.ParseInLocation("20060102", latest, kst)
	if err != nil {
		return nil, fmt.Errorf("parse basDt %q: %w", latest, err)
	}

	out := make([]entity.BondData, 0, len(items))
	for _, it := range items {
		if it.BaseDate != latest {
			continue
		}
		yield, err1 := parseNumber(it.Close)
		change, err2 := parseNumber(it.Change)
		ratio, err3 := parseNumber(it.ChangeRatio)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		out = append(out, entity.BondData{
			Name:          it.Name,
			Yield:         yield,
			Change:        change,
			ChangePercent: ratio,
			Timestamp:     day.UnixMilli(),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("datagokr: no parsable rows for %s", latest)
	}
	return out, nil
}

// parseNumber は "1,234.5" のような桁区切り付きの数値も受け付けます。
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
}
