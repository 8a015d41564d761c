// Package usecase は市場データをキャッシュ付きで取得するビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"market_backend/internal/feature/market/adapters/mockdata"
	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/platform/cache"
	"market_backend/internal/shared/fallback"
)

// TTLs はエンドポイントごとのキャッシュ有効期間です。
type TTLs struct {
	VolumeRank time.Duration
	Summary    time.Duration
	USStocks   time.Duration
	Crypto     time.Duration
	Gold       time.Duration
	Bonds      time.Duration
	Picks      time.Duration
	// Watchlist はウォッチリストの銘柄一覧をプロセス内に保持する期間です。
	Watchlist  time.Duration
}

// DefaultTTLs は各データの更新頻度に合わせた既定のTTLを返します。
func DefaultTTLs() TTLs {
	return TTLs{
		VolumeRank: 60 * time.Second,
		Summary:    60 * time.Second,
		USStocks:   60 * time.Second,
		Crypto:     30 * time.Second,
		Gold:       300 * time.Second,
		Bonds:      3600 * time.Second,
		Picks:      3600 * time.Second,
		Watchlist:  60 * time.Second,
	}
}

// MarketUsecase は各データソースをキャッシュとモックフォールバックで包み、
// 常に同じ形のデータを返します。
type MarketUsecase struct {
	accessor  *cache.Accessor
	ttl       TTLs
	src       Sources
	watchlist WatchlistReader
	now       func() time.Time

	tickerMu    sync.Mutex
	tickerCache map[string]cachedTickers
}

// cachedTickers is a watchlist read kept until expiresAt.
type cachedTickers struct {
	tickers   []entity.Ticker
	expiresAt time.Time
}

// NewMarketUsecase は新しいMarketUsecaseを生成します。
// watchlist がnilの場合は既定の銘柄リストを使います。
func NewMarketUsecase(accessor *cache.Accessor, src Sources, watchlist WatchlistReader, ttl TTLs) *MarketUsecase {
	return &MarketUsecase{
		accessor:    accessor,
		ttl:         ttl,
		src:         src,
		watchlist:   watchlist,
		now:         time.Now,
		tickerCache: make(map[string]cachedTickers),
	}
}

// VolumeRank は指定市場の出来高ランキングを返します。
func (mu *MarketUsecase) VolumeRank(ctx context.Context, market entity.Market) (cache.Result[[]entity.VolumeRankItem], error) {
	return cache.Remember(ctx, mu.accessor, cache.Key("volume-rank", string(market)), mu.ttl.VolumeRank,
		fallback.Fetcher("kis.volume-rank",
			func(ctx context.Context) ([]entity.VolumeRankItem, error) {
				return mu.src.Korea.VolumeRank(ctx, market)
			},
			func() []entity.VolumeRankItem { return mockdata.VolumeRank(market) },
		))
}

// Summary はKOSPI・KOSDAQ指数を返します。
func (mu *MarketUsecase) Summary(ctx context.Context) (cache.Result[entity.MarketSummary], error) {
	return cache.Remember(ctx, mu.accessor, cache.Key("summary"), mu.ttl.Summary,
		fallback.Fetcher("kis.summary",
			func(ctx context.Context) (entity.MarketSummary, error) {
				return mu.src.Korea.Summary(ctx)
			},
			func() entity.MarketSummary { return mockdata.Summary(mu.now()) },
		))
}

// Stocks は出来高ランキングと指数を並行して取得し、1つのレスポンスにまとめます。
// どちらか一方でもモックであれば全体をモックとして扱います。
func (mu *MarketUsecase) Stocks(ctx context.Context, market entity.Market) (cache.Result[entity.StockOverview], error) {
	var rank cache.Result[[]entity.VolumeRankItem]
	var summary cache.Result[entity.MarketSummary]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rank, err = mu.VolumeRank(gctx, market)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = mu.Summary(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return cache.Result[entity.StockOverview]{}, err
	}

	out := cache.Result[entity.StockOverview]{
		Value: entity.StockOverview{
			VolumeRank:  rank.Value,
			MarketIndex: summary.Value,
		},
		Source: combine(rank.Source, summary.Source),
		Cached: rank.Cached && summary.Cached,
	}
	return out, nil
}

// USStocks はウォッチリストの米国株の気配値を返します。
func (mu *MarketUsecase) USStocks(ctx context.Context) (cache.Result[[]entity.StockData], error) {
	tickers := mu.tickers(ctx, entity.AssetClassUSStock, mockdata.DefaultUSTickers)
	return cache.Remember(ctx, mu.accessor, cache.Key("stocks-us", symbolsKey(tickers)), mu.ttl.USStocks,
		fallback.Fetcher("finnhub.quotes",
			func(ctx context.Context) ([]entity.StockData, error) {
				return mu.src.US.Quotes(ctx, tickers)
			},
			func() []entity.StockData { return mockdata.USStocks(tickers, mu.now()) },
		))
}

// Crypto はウォッチリストの暗号資産の価格を返します。
func (mu *MarketUsecase) Crypto(ctx context.Context) (cache.Result[[]entity.CryptoData], error) {
	tickers := mu.tickers(ctx, entity.AssetClassCrypto, mockdata.DefaultCryptoTickers)
	return cache.Remember(ctx, mu.accessor, cache.Key("crypto", symbolsKey(tickers)), mu.ttl.Crypto,
		fallback.Fetcher("crypto.tickers",
			func(ctx context.Context) ([]entity.CryptoData, error) {
				return mu.src.Crypto.Tickers(ctx, tickers)
			},
			func() []entity.CryptoData { return mockdata.Crypto(tickers, mu.now()) },
		))
}

// Gold は金・銀の価格を返します。
func (mu *MarketUsecase) Gold(ctx context.Context) (cache.Result[entity.GoldSilverData], error) {
	return cache.Remember(ctx, mu.accessor, cache.Key("gold"), mu.ttl.Gold,
		fallback.Fetcher("goldapi.gold-silver",
			func(ctx context.Context) (entity.GoldSilverData, error) {
				return mu.src.Metals.GoldSilver(ctx)
			},
			func() entity.GoldSilverData { return mockdata.GoldSilver(mu.now()) },
		))
}

// Bonds は債券利回りを返します。
func (mu *MarketUsecase) Bonds(ctx context.Context) (cache.Result[[]entity.BondData], error) {
	return cache.Remember(ctx, mu.accessor, cache.Key("bonds"), mu.ttl.Bonds,
		fallback.Fetcher("datagokr.bonds",
			func(ctx context.Context) ([]entity.BondData, error) {
				return mu.src.Bonds.Bonds(ctx)
			},
			func() []entity.BondData { return mockdata.Bonds(mu.now()) },
		))
}

// Picks はKOSPI・KOSDAQの出来高ランキングから注目銘柄を選びます。
// 両市場のランキングがライブの場合のみキャッシュされます。
func (mu *MarketUsecase) Picks(ctx context.Context) (cache.Result[[]entity.StockPick], error) {
	return cache.Remember(ctx, mu.accessor, cache.Key("picks"), mu.ttl.Picks,
		func(ctx context.Context) (cache.Result[[]entity.StockPick], error) {
			kospi, err := mu.VolumeRank(ctx, entity.KOSPI)
			if err != nil {
				return cache.Result[[]entity.StockPick]{}, err
			}
			kosdaq, err := mu.VolumeRank(ctx, entity.KOSDAQ)
			if err != nil {
				return cache.Result[[]entity.StockPick]{}, err
			}
			picks := SelectPicks(map[entity.Market][]entity.VolumeRankItem{
				entity.KOSPI:  kospi.Value,
				entity.KOSDAQ: kosdaq.Value,
			})
			return cache.Result[[]entity.StockPick]{
				Value:  picks,
				Source: combine(kospi.Source, kosdaq.Source),
			}, nil
		})
}

// CacheStats はキャッシュのヒット数などのカウンタを返します。
func (mu *MarketUsecase) CacheStats() cache.Stats {
	return mu.accessor.Stats()
}

// tickers はウォッチリストから有効な銘柄を読み込みます。
// 読み込み結果は ttl.Watchlist の間保持するため、キャッシュヒット時にDBへ問い合わせません。
// 読み込みに失敗した、または空の場合は defaults を返し、その結果は保持しません。
func (mu *MarketUsecase) tickers(ctx context.Context, assetClass string, defaults []entity.Ticker) []entity.Ticker {
	if mu.watchlist == nil {
		return defaults
	}

	mu.tickerMu.Lock()
	c, ok := mu.tickerCache[assetClass]
	mu.tickerMu.Unlock()
	if ok && mu.now().Before(c.expiresAt) {
		return c.tickers
	}

	ts, err := mu.watchlist.ActiveTickers(ctx, assetClass)
	if err != nil {
		slog.Warn("failed to read watchlist; using default tickers", "assetClass", assetClass, "error", err)
		return defaults
	}
	if len(ts) == 0 {
		return defaults
	}

	mu.tickerMu.Lock()
	mu.tickerCache[assetClass] = cachedTickers{tickers: ts, expiresAt: mu.now().Add(mu.ttl.Watchlist)}
	mu.tickerMu.Unlock()
	return ts
}

func symbolsKey(tickers []entity.Ticker) string {
	symbols := make([]string, 0, len(tickers))
	for _, t := range tickers {
		symbols = append(symbols, t.Symbol)
	}
	return strings.Join(symbols, ",")
}

// combine はすべての入力がライブの場合のみライブを返します。
func combine(sources ...cache.Source) cache.Source {
	for _, s := range sources {
		if s != cache.SourceLive {
			return cache.SourceMock
		}
	}
	return cache.SourceLive
}
