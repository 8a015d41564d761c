package goldapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/feature/market/usecase"
	"market_backend/internal/platform/externalapi/goldapi/dto"
	infrahttp "market_backend/internal/platform/http"
	"market_backend/internal/shared/fallback"
)

// Client はGoldAPIから金・銀のスポット価格を取得するMetalSource実装です。
type Client struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

// ClientがMetalSourceを実装していることをコンパイル時に検証します。
var _ usecase.MetalSource = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, now: time.Now}
}

// GoldSilver は金(XAU)と銀(XAG)のUSD価格を並行して取得します。
func (c *Client) GoldSilver(ctx context.Context) (entity.GoldSilverData, error) {
	if !c.cfg.Configured() {
		return entity.GoldSilverData{}, fmt.Errorf("goldapi: %w", fallback.ErrNotConfigured)
	}

	var gold, silver entity.MetalPrice
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gold, err = c.metal(gctx, "XAU", "Gold")
		return err
	})
	g.Go(func() error {
		var err error
		silver, err = c.metal(gctx, "XAG", "Silver")
		return err
	})
	if err := g.Wait(); err != nil {
		return entity.GoldSilverData{}, err
	}

	return entity.GoldSilverData{
		Gold:      gold,
		Silver:    silver,
		Timestamp: c.now().UnixMilli(),
	}, nil
}

func (c *Client) metal(ctx context.Context, symbol, name string) (entity.MetalPrice, error) {
	u := fmt.Sprintf("%s/%s/USD", c.cfg.BaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.MetalPrice{}, err
	}
	req.Header.Set("x-access-token", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	var body dto.MetalResponse
	if err := infrahttp.DoJSON(c.client, req, "goldapi", &body); err != nil {
		return entity.MetalPrice{}, err
	}
	if body.Error != "" {
		return entity.MetalPrice{}, fmt.Errorf("goldapi: %s", body.Error)
	}

	return entity.MetalPrice{
		Symbol:        symbol,
		Name:          name,
		Price:         body.Price,
		Change:        body.Change,
		ChangePercent: body.ChangePercent,
		PricePerGram:  body.PriceGram24k,
		Currency:      "USD",
	}, nil
}
