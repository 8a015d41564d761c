package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_backend/internal/feature/market/adapters/mockdata"
	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/feature/market/transport/handler"
	"market_backend/internal/feature/market/usecase"
	"market_backend/internal/platform/cache"
	"market_backend/internal/platform/http/response"
)

// mockMarketUsecase はMarketUsecaseインターフェースのモック実装です。
// 未設定のメソッドはpanicします。
type mockMarketUsecase struct {
	StocksFunc     func(ctx context.Context, market entity.Market) (cache.Result[entity.StockOverview], error)
	VolumeRankFunc func(ctx context.Context, market entity.Market) (cache.Result[[]entity.VolumeRankItem], error)
	SummaryFunc    func(ctx context.Context) (cache.Result[entity.MarketSummary], error)
	USStocksFunc   func(ctx context.Context) (cache.Result[[]entity.StockData], error)
	CryptoFunc     func(ctx context.Context) (cache.Result[[]entity.CryptoData], error)
	GoldFunc       func(ctx context.Context) (cache.Result[entity.GoldSilverData], error)
	BondsFunc      func(ctx context.Context) (cache.Result[[]entity.BondData], error)
	PicksFunc      func(ctx context.Context) (cache.Result[[]entity.StockPick], error)
	Stats          cache.Stats
}

func (m *mockMarketUsecase) Stocks(ctx context.Context, market entity.Market) (cache.Result[entity.StockOverview], error) {
	return m.StocksFunc(ctx, market)
}
func (m *mockMarketUsecase) VolumeRank(ctx context.Context, market entity.Market) (cache.Result[[]entity.VolumeRankItem], error) {
	return m.VolumeRankFunc(ctx, market)
}
func (m *mockMarketUsecase) Summary(ctx context.Context) (cache.Result[entity.MarketSummary], error) {
	return m.SummaryFunc(ctx)
}
func (m *mockMarketUsecase) USStocks(ctx context.Context) (cache.Result[[]entity.StockData], error) {
	return m.USStocksFunc(ctx)
}
func (m *mockMarketUsecase) Crypto(ctx context.Context) (cache.Result[[]entity.CryptoData], error) {
	return m.CryptoFunc(ctx)
}
func (m *mockMarketUsecase) Gold(ctx context.Context) (cache.Result[entity.GoldSilverData], error) {
	return m.GoldFunc(ctx)
}
func (m *mockMarketUsecase) Bonds(ctx context.Context) (cache.Result[[]entity.BondData], error) {
	return m.BondsFunc(ctx)
}
func (m *mockMarketUsecase) Picks(ctx context.Context) (cache.Result[[]entity.StockPick], error) {
	return m.PicksFunc(ctx)
}
func (m *mockMarketUsecase) CacheStats() cache.Stats { return m.Stats }

func newRouter(uc handler.MarketUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := handler.NewMarketHandler(uc)
	router := gin.New()
	router.Use(response.Recovery(time.Now))
	api := router.Group("/api")
	api.GET("/market/stocks", h.Stocks)
	api.GET("/market/volume-rank", h.VolumeRank)
	api.GET("/market/summary", h.Summary)
	api.GET("/market/stocks-us", h.USStocks)
	api.GET("/market/crypto", h.Crypto)
	api.GET("/market/gold", h.Gold)
	api.GET("/market/bonds", h.Bonds)
	api.GET("/picks", h.Picks)
	api.GET("/admin/cache/stats", h.CacheStats)
	return router
}

func get(router http.Handler, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)
	return w
}

// decodeEnvelope はレスポンスがエンベロープの3つのキーだけを持ち、updatedAtがISO-8601であることを検証します。
func decodeEnvelope(t *testing.T, body []byte) map[string]json.RawMessage {
	t.Helper()

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &env))
	require.Len(t, env, 3)
	require.Contains(t, env, "success")
	require.Contains(t, env, "data")
	require.Contains(t, env, "updatedAt")

	var updatedAt string
	require.NoError(t, json.Unmarshal(env["updatedAt"], &updatedAt))
	_, err := time.Parse(time.RFC3339Nano, updatedAt)
	require.NoError(t, err, "updatedAt %q", updatedAt)
	return env
}

func TestMarketHandler_VolumeRank_MarketParam(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		market entity.Market
	}{
		{"kosdaq", "/api/market/volume-rank?market=KOSDAQ", entity.KOSDAQ},
		{"kospi", "/api/market/volume-rank?market=KOSPI", entity.KOSPI},
		{"missing defaults to kospi", "/api/market/volume-rank", entity.KOSPI},
		{"unknown defaults to kospi", "/api/market/volume-rank?market=NASDAQ", entity.KOSPI},
		{"lowercase defaults to kospi", "/api/market/volume-rank?market=kosdaq", entity.KOSPI},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var got entity.Market
			uc := &mockMarketUsecase{
				VolumeRankFunc: func(ctx context.Context, market entity.Market) (cache.Result[[]entity.VolumeRankItem], error) {
					got = market
					return cache.Live([]entity.VolumeRankItem{{Rank: 1, Code: "005930"}}), nil
				},
			}

			w := get(newRouter(uc), tt.url)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.market, got)
			env := decodeEnvelope(t, w.Body.Bytes())
			assert.JSONEq(t, `true`, string(env["success"]))
		})
	}
}

func TestMarketHandler_Headers(t *testing.T) {
	tests := []struct {
		name       string
		result     cache.Result[[]entity.BondData]
		wantSource string
		wantCache  string
	}{
		{"live miss", cache.Live([]entity.BondData{}), "live", "MISS"},
		{"mock miss", cache.Mock([]entity.BondData{}), "mock", "MISS"},
		{"cache hit", cache.Result[[]entity.BondData]{Value: []entity.BondData{}, Source: cache.SourceLive, Cached: true}, "live", "HIT"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockMarketUsecase{
				BondsFunc: func(ctx context.Context) (cache.Result[[]entity.BondData], error) {
					return tt.result, nil
				},
			}

			w := get(newRouter(uc), "/api/market/bonds")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantSource, w.Header().Get(handler.HeaderDataSource))
			assert.Equal(t, tt.wantCache, w.Header().Get(handler.HeaderCache))
			env := decodeEnvelope(t, w.Body.Bytes())
			assert.JSONEq(t, `[]`, string(env["data"]))
		})
	}
}

func TestMarketHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		uc   *mockMarketUsecase
	}{
		{
			name: "usecase returns error",
			uc: &mockMarketUsecase{
				GoldFunc: func(ctx context.Context) (cache.Result[entity.GoldSilverData], error) {
					return cache.Result[entity.GoldSilverData]{}, errors.New("cache decode failed")
				},
			},
		},
		{
			name: "usecase panics",
			uc: &mockMarketUsecase{
				GoldFunc: func(ctx context.Context) (cache.Result[entity.GoldSilverData], error) {
					panic("nil map")
				},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := get(newRouter(tt.uc), "/api/market/gold")

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			env := decodeEnvelope(t, w.Body.Bytes())
			assert.JSONEq(t, `false`, string(env["success"]))
			assert.JSONEq(t, `null`, string(env["data"]))
			assert.Empty(t, w.Header().Get(handler.HeaderDataSource))
		})
	}
}

func TestMarketHandler_CacheStats(t *testing.T) {
	uc := &mockMarketUsecase{Stats: cache.Stats{Hits: 3, Misses: 2, LiveFetches: 1, Fallbacks: 1}}

	w := get(newRouter(uc), "/api/admin/cache/stats")

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.JSONEq(t, `{"hits":3,"misses":2,"liveFetches":1,"fallbacks":1}`, string(env["data"]))
}

type failingKorea struct{ calls atomic.Int64 }

func (f *failingKorea) VolumeRank(ctx context.Context, market entity.Market) ([]entity.VolumeRankItem, error) {
	f.calls.Add(1)
	return nil, errors.New("kis http 503")
}

func (f *failingKorea) Summary(ctx context.Context) (entity.MarketSummary, error) {
	f.calls.Add(1)
	return entity.MarketSummary{}, errors.New("kis http 503")
}

// TestMarketHandler_EveryEndpointReturnsEnvelope はすべての外部APIが失敗しても、
// 各エンドポイントが success:true とモックデータを返すことを検証します。
func TestMarketHandler_EveryEndpointReturnsEnvelope(t *testing.T) {
	accessor := cache.NewAccessor(cache.NewMemoryStore(nil), cache.Options{})
	uc := usecase.NewMarketUsecase(accessor, usecase.Sources{Korea: &failingKorea{}}, nil, usecase.DefaultTTLs())
	router := newRouter(uc)

	urls := []string{
		"/api/market/stocks",
		"/api/market/stocks?market=KOSDAQ",
		"/api/market/volume-rank",
		"/api/market/summary",
		"/api/market/stocks-us",
		"/api/market/crypto",
		"/api/market/gold",
		"/api/market/bonds",
		"/api/picks",
	}
	for _, url := range urls {
		url := url
		t.Run(url, func(t *testing.T) {
			w := get(router, url)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "mock", w.Header().Get(handler.HeaderDataSource))
			env := decodeEnvelope(t, w.Body.Bytes())
			assert.JSONEq(t, `true`, string(env["success"]))
			assert.NotEqual(t, "null", string(env["data"]))
		})
	}

	w := get(router, "/api/market/volume-rank?market=KOSDAQ")
	env := decodeEnvelope(t, w.Body.Bytes())
	var items []entity.VolumeRankItem
	require.NoError(t, json.Unmarshal(env["data"], &items))
	assert.Equal(t, mockdata.VolumeRank(entity.KOSDAQ), items)
}

type countingKorea struct{ calls atomic.Int64 }

func (c *countingKorea) VolumeRank(ctx context.Context, market entity.Market) ([]entity.VolumeRankItem, error) {
	c.calls.Add(1)
	time.Sleep(5 * time.Millisecond)
	return []entity.VolumeRankItem{{Rank: 1, Code: "005930", Name: "삼성전자", Price: 71200}}, nil
}

func (c *countingKorea) Summary(ctx context.Context) (entity.MarketSummary, error) {
	return entity.MarketSummary{}, nil
}

// TestMarketHandler_ConcurrentMisses は空のキャッシュに同時にリクエストしても、
// すべてのレスポンスが正しい形で返り、最終的なキャッシュエントリが有効であることを検証します。
func TestMarketHandler_ConcurrentMisses(t *testing.T) {
	korea := &countingKorea{}
	accessor := cache.NewAccessor(cache.NewMemoryStore(nil), cache.Options{})
	uc := usecase.NewMarketUsecase(accessor, usecase.Sources{Korea: korea}, nil, usecase.DefaultTTLs())
	router := newRouter(uc)

	const n = 32
	var wg sync.WaitGroup
	bodies := make([][]byte, n)
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := get(router, "/api/market/volume-rank")
			codes[i] = w.Code
			bodies[i] = w.Body.Bytes()
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.Equal(t, http.StatusOK, codes[i])
		env := decodeEnvelope(t, bodies[i])
		assert.JSONEq(t, `[{"rank":1,"code":"005930","name":"삼성전자","price":71200,"change":0,"changePercent":0,"volume":0,"tradingValue":0}]`, string(env["data"]))
	}
	assert.GreaterOrEqual(t, korea.calls.Load(), int64(1))

	before := korea.calls.Load()
	w := get(router, "/api/market/volume-rank")
	assert.Equal(t, "HIT", w.Header().Get(handler.HeaderCache))
	assert.Equal(t, before, korea.calls.Load())
}
