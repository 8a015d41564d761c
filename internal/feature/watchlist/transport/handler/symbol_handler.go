// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/watchlist/domain/entity"
	"market_backend/internal/feature/watchlist/transport/http/dto"
	"market_backend/internal/platform/http/response"
)

// SymbolUsecase はウォッチリストに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context, assetClass string) ([]entity.Symbol, error)
}

// SymbolHandler はウォッチリストに関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc  SymbolUsecase
	now func() time.Time
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc, now: time.Now}
}

// List は有効な銘柄の一覧を返すAPIです。
// assetClass クエリ（us_stock / crypto）で絞り込めます。未指定ならすべて返します。
// Usecaseでエラーが発生した場合は500のエンベロープを返します。
//
// エンドポイント例:
// GET /api/watchlist?assetClass=crypto
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context(), c.Query("assetClass"))
	if err != nil {
		response.Fail(c, err, h.now())
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{
			Code:       s.Code,
			Name:       s.Name,
			AssetClass: s.AssetClass,
			ExternalID: s.ExternalID,
		})
	}
	response.OK(c, out, h.now())
}
