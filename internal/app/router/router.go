package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	markethandler "market_backend/internal/feature/market/transport/handler"
	watchlisthandler "market_backend/internal/feature/watchlist/transport/handler"
	platformhandler "market_backend/internal/platform/http/handler"
	"market_backend/internal/platform/http/response"
	jwtmw "market_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Market    *markethandler.MarketHandler
	Watchlist *watchlisthandler.SymbolHandler
	Health    *platformhandler.HealthHandler
}

// NewRouter はルーティングとミドルウェアを設定したgin.Engineを返します。
// allowOrigins が空の場合はすべてのオリジンを許可します。
func NewRouter(h Handlers, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), response.Recovery(time.Now))
	r.Use(cors.New(corsConfig(allowOrigins)))

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	api := r.Group("/api")
	{
		market := api.Group("/market")
		market.GET("/stocks", h.Market.Stocks)
		market.GET("/volume-rank", h.Market.VolumeRank)
		market.GET("/summary", h.Market.Summary)
		market.GET("/stocks-us", h.Market.USStocks)
		market.GET("/crypto", h.Market.Crypto)
		market.GET("/gold", h.Market.Gold)
		market.GET("/bonds", h.Market.Bonds)

		api.GET("/picks", h.Market.Picks)
		api.GET("/watchlist", h.Watchlist.List)
	}

	// 認証必須のルート
	// → リクエストヘッダーに admin ロールの JWT が必要になる
	admin := api.Group("/admin")
	admin.Use(jwtmw.AuthRequired(), jwtmw.RequireRole(jwtmw.RoleAdmin))
	{
		admin.GET("/cache/stats", h.Market.CacheStats)
	}

	return r
}

func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.ExposeHeaders = []string{markethandler.HeaderDataSource, markethandler.HeaderCache}
	if len(allowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowOrigins
	}
	return cfg
}
