// Package handler はmarketフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/platform/cache"
	"market_backend/internal/platform/http/response"
)

const (
	// HeaderDataSource はデータがライブかモックかを示すレスポンスヘッダーです。
	HeaderDataSource = "X-Data-Source"
	// HeaderCache はキャッシュにヒットしたかを示すレスポンスヘッダーです（HIT / MISS）。
	HeaderCache = "X-Cache"
)

// MarketUsecase は市場データ取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketUsecase interface {
	Stocks(ctx context.Context, market entity.Market) (cache.Result[entity.StockOverview], error)
	VolumeRank(ctx context.Context, market entity.Market) (cache.Result[[]entity.VolumeRankItem], error)
	Summary(ctx context.Context) (cache.Result[entity.MarketSummary], error)
	USStocks(ctx context.Context) (cache.Result[[]entity.StockData], error)
	Crypto(ctx context.Context) (cache.Result[[]entity.CryptoData], error)
	Gold(ctx context.Context) (cache.Result[entity.GoldSilverData], error)
	Bonds(ctx context.Context) (cache.Result[[]entity.BondData], error)
	Picks(ctx context.Context) (cache.Result[[]entity.StockPick], error)
	CacheStats() cache.Stats
}

// MarketHandler は市場データのHTTPリクエストを処理します。
type MarketHandler struct {
	uc  MarketUsecase
	now func() time.Time
}

// NewMarketHandler は指定されたusecaseでMarketHandlerの新しいインスタンスを生成します。
func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc, now: time.Now}
}

// Stocks は出来高ランキングと指数をまとめて返します。
//
// エンドポイント例:
// GET /api/market/stocks?market=KOSDAQ
func (h *MarketHandler) Stocks(c *gin.Context) {
	res, err := h.uc.Stocks(c.Request.Context(), entity.ParseMarket(c.Query("market")))
	respond(c, h.now(), res, err)
}

// VolumeRank は出来高ランキングを返します。
// market が "KOSDAQ" 以外（未指定を含む）の場合はKOSPIを返します。
//
// エンドポイント例:
// GET /api/market/volume-rank?market=KOSPI
func (h *MarketHandler) VolumeRank(c *gin.Context) {
	res, err := h.uc.VolumeRank(c.Request.Context(), entity.ParseMarket(c.Query("market")))
	respond(c, h.now(), res, err)
}

// Summary はKOSPI・KOSDAQ指数を返します。
func (h *MarketHandler) Summary(c *gin.Context) {
	res, err := h.uc.Summary(c.Request.Context())
	respond(c, h.now(), res, err)
}

// USStocks は米国株の気配値を返します。
func (h *MarketHandler) USStocks(c *gin.Context) {
	res, err := h.uc.USStocks(c.Request.Context())
	respond(c, h.now(), res, err)
}

// Crypto は暗号資産の価格を返します。
func (h *MarketHandler) Crypto(c *gin.Context) {
	res, err := h.uc.Crypto(c.Request.Context())
	respond(c, h.now(), res, err)
}

// Gold は金・銀の価格を返します。
func (h *MarketHandler) Gold(c *gin.Context) {
	res, err := h.uc.Gold(c.Request.Context())
	respond(c, h.now(), res, err)
}

// Bonds は債券利回りを返します。
func (h *MarketHandler) Bonds(c *gin.Context) {
	res, err := h.uc.Bonds(c.Request.Context())
	respond(c, h.now(), res, err)
}

// Picks は注目銘柄を返します。
func (h *MarketHandler) Picks(c *gin.Context) {
	res, err := h.uc.Picks(c.Request.Context())
	respond(c, h.now(), res, err)
}

// CacheStats はキャッシュのカウンタを返します（管理者用）。
func (h *MarketHandler) CacheStats(c *gin.Context) {
	response.OK(c, h.uc.CacheStats(), h.now())
}

// respond はusecaseの結果をエンベロープに包んで書き込みます。
func respond[T any](c *gin.Context, now time.Time, res cache.Result[T], err error) {
	if err != nil {
		response.Fail(c, err, now)
		return
	}

	src := res.Source
	if src == "" {
		src = cache.SourceLive
	}
	c.Header(HeaderDataSource, string(src))
	if res.Cached {
		c.Header(HeaderCache, "HIT")
	} else {
		c.Header(HeaderCache, "MISS")
	}
	response.OK(c, res.Value, now)
}
