package kis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/feature/market/usecase"
	"market_backend/internal/platform/externalapi/kis/dto"
	infrahttp "market_backend/internal/platform/http"
	"market_backend/internal/shared/fallback"
)

const (
	trVolumeRank = "FHPST01710000"
	trIndexPrice = "FHPUP02100000"
	// tokenMargin renews the access token this long before KIS expires it.
	tokenMargin = time.Minute
)

// indexCodes maps markets to KIS industry index codes.
var indexCodes = map[entity.Market]string{
	entity.KOSPI:  "0001",
	entity.KOSDAQ: "1001",
}

// Client はKIS Open APIから国内株式データを取得するKoreanStockSource実装です。
type Client struct {
	cfg    Config
	client *http.Client
	now    func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// ClientがKoreanStockSourceを実装していることをコンパイル時に検証します。
var _ usecase.KoreanStockSource = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, now: time.Now}
}

// VolumeRank は指定市場の出来高上位銘柄を取得します。
func (c *Client) VolumeRank(ctx context.Context, market entity.Market) ([]entity.VolumeRankItem, error) {
	if !c.cfg.Configured() {
		return nil, fmt.Errorf("kis: %w", fallback.ErrNotConfigured)
	}

	q := url.Values{}
	q.Set("FID_COND_MRKT_DIV_CODE", "J")
	q.Set("FID_COND_SCR_DIV_CODE", "20171")
	q.Set("FID_INPUT_ISCD", indexCodes[market])
	q.Set("FID_DIV_CLS_CODE", "0")
	q.Set("FID_BLNG_CLS_CODE", "0")
	q.Set("FID_TRGT_CLS_CODE", "111111111")
	q.Set("FID_TRGT_EXLS_CLS_CODE", "0000000000")
	q.Set("FID_INPUT_PRICE_1", "")
	q.Set("FID_INPUT_PRICE_2", "")
	q.Set("FID_VOL_CNT", "")
	q.Set("FID_INPUT_DATE_1", "")

	var body dto.VolumeRankResponse
	if err := c.get(ctx, "/uapi/domestic-stock/v1/quotations/volume-rank", trVolumeRank, q, &body); err != nil {
		return nil, err
	}
	if body.RtCd != "0" {
		return nil, fmt.Errorf("kis: %s", body.Msg1)
	}

	items := make([]entity.VolumeRankItem, 0, len(body.Output))
	for i, o := range body.Output {
		rank, err := strconv.Atoi(o.Rank)
		if err != nil {
			rank = i + 1
		}
		price, err := parseFloat("price", o.Price)
		if err != nil {
			return nil, err
		}
		change, err := parseFloat("change", o.Change)
		if err != nil {
			return nil, err
		}
		rate, err := parseFloat("change rate", o.ChangeRate)
		if err != nil {
			return nil, err
		}
		vol, err := parseInt("volume", o.Volume)
		if err != nil {
			return nil, err
		}
		value, err := parseInt("trading value", o.TradingValue)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.VolumeRankItem{
			Rank:          rank,
			Code:          o.Code,
			Name:          o.Name,
			Price:         price,
			Change:        change,
			ChangePercent: rate,
			Volume:        vol,
			TradingValue:  value,
		})
	}
	return items, nil
}

// Summary はKOSPIとKOSDAQの指数を並行して取得します。
func (c *Client) Summary(ctx context.Context) (entity.MarketSummary, error) {
	if !c.cfg.Configured() {
		return entity.MarketSummary{}, fmt.Errorf("kis: %w", fallback.ErrNotConfigured)
	}

	var kospi, kosdaq entity.IndexQuote
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		kospi, err = c.index(gctx, entity.KOSPI)
		return err
	})
	g.Go(func() error {
		var err error
		kosdaq, err = c.index(gctx, entity.KOSDAQ)
		return err
	})
	if err := g.Wait(); err != nil {
		return entity.MarketSummary{}, err
	}

	return entity.MarketSummary{
		Kospi:     kospi,
		Kosdaq:    kosdaq,
		Timestamp: c.now().UnixMilli(),
	}, nil
}

// index は業種指数の現在値を取得します。
func (c *Client) index(ctx context.Context, market entity.Market) (entity.IndexQuote, error) {
	q := url.Values{}
	q.Set("FID_COND_MRKT_DIV_CODE", "U")
	q.Set("FID_INPUT_ISCD", indexCodes[market])

	var body dto.IndexPriceResponse
	if err := c.get(ctx, "/uapi/domestic-stock/v1/quotations/inquire-index-price", trIndexPrice, q, &body); err != nil {
		return entity.IndexQuote{}, err
	}
	if body.RtCd != "0" {
		return entity.IndexQuote{}, fmt.Errorf("kis: %s", body.Msg1)
	}

	value, err := parseFloat("index value", body.Output.Value)
	if err != nil {
		return entity.IndexQuote{}, err
	}
	change, err := parseFloat("index change", body.Output.Change)
	if err != nil {
		return entity.IndexQuote{}, err
	}
	rate, err := parseFloat("index change rate", body.Output.ChangeRate)
	if err != nil {
		return entity.IndexQuote{}, err
	}
	return entity.IndexQuote{
		Name:          string(market),
		Value:         value,
		Change:        change,
		ChangePercent: rate,
	}, nil
}

// get は認証ヘッダー付きでGETリクエストを送信します。
func (c *Client) get(ctx context.Context, path, trID string, q url.Values, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("appkey", c.cfg.AppKey)
	req.Header.Set("appsecret", c.cfg.AppSecret)
	req.Header.Set("tr_id", trID)
	req.Header.Set("custtype", "P")

	return infrahttp.DoJSON(c.client, req, "kis", out)
}

// accessToken はキャッシュ済みのアクセストークンを返し、期限が近ければ再発行します。
// KISはトークン発行回数を制限しているため、プロセス内で使い回します。
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	payload, err := json.Marshal(map[string]string{
		"grant_type": "client_credentials",
		"appkey":     c.cfg.AppKey,
		"appsecret":  c.cfg.AppSecret,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/oauth2/tokenP", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	var body dto.TokenResponse
	if err := infrahttp.DoJSON(c.client, req, "kis token", &body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("kis token: empty access token")
	}

	c.token = body.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(body.ExpiresIn)*time.Second - tokenMargin)
	return c.token, nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	return v, nil
}

func parseInt(field, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	return v, nil
}
