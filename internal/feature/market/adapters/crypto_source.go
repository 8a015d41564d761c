package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/feature/market/usecase"
	"market_backend/internal/platform/externalapi/upbit"
)

// KRWTicker はKRW建てティッカーの取得元です（Upbit）。
type KRWTicker interface {
	Tickers(ctx context.Context, symbols []string) ([]upbit.Ticker, error)
}

// USDPricer はCoinGecko IDからUSD価格を引く取得元です（CoinGecko）。
type USDPricer interface {
	PricesUSD(ctx context.Context, ids []string) (map[string]float64, error)
}

// CryptoSource はUpbitのKRW価格とCoinGeckoのUSD価格を組み合わせるCryptoSource実装です。
// USD価格は補助情報のため、取得に失敗しても priceUsd を0にして処理を続けます。
type CryptoSource struct {
	krw KRWTicker
	usd USDPricer
}

var _ usecase.CryptoSource = (*CryptoSource)(nil)

// NewCryptoSource は新しいCryptoSourceを生成します。usd はnilでも構いません。
func NewCryptoSource(krw KRWTicker, usd USDPricer) *CryptoSource {
	return &CryptoSource{krw: krw, usd: usd}
}

// Tickers は指定された暗号資産の価格をウォッチリストの順序で返します。
// Upbitに上場していない銘柄がある場合はエラーになります。
func (s *CryptoSource) Tickers(ctx context.Context, tickers []entity.Ticker) ([]entity.CryptoData, error) {
	symbols := make([]string, 0, len(tickers))
	ids := make([]string, 0, len(tickers))
	for _, t := range tickers {
		symbols = append(symbols, t.Symbol)
		if t.ExternalID != "" {
			ids = append(ids, t.ExternalID)
		}
	}

	var krw []upbit.Ticker
	var usd map[string]float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		krw, err = s.krw.Tickers(gctx, symbols)
		return err
	})
	if s.usd != nil && len(ids) > 0 {
		// gctx ではなく ctx を使い、Upbit側の失敗でUSD取得を巻き込まないようにする
		g.Go(func() error {
			prices, err := s.usd.PricesUSD(ctx, ids)
			if err != nil {
				slog.Warn("usd price lookup failed; priceUsd left at 0", "error", err)
				return nil
			}
			usd = prices
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bySymbol := make(map[string]upbit.Ticker, len(krw))
	for _, k := range krw {
		bySymbol[strings.ToUpper(k.Symbol)] = k
	}

	out := make([]entity.CryptoData, 0, len(tickers))
	for _, t := range tickers {
		k, ok := bySymbol[strings.ToUpper(t.Symbol)]
		if !ok {
			return nil, fmt.Errorf("upbit: no KRW market for %s", t.Symbol)
		}
		out = append(out, entity.CryptoData{
			Symbol:        t.Symbol,
			Name:          t.Name,
			Price:         k.Price,
			PriceUSD:      usd[t.ExternalID],
			Change:        k.Change,
			ChangePercent: k.ChangePercent,
			Volume24h:     k.Volume24h,
			Timestamp:     k.Timestamp,
		})
	}
	return out, nil
}
