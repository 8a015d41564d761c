package usecase

import (
	"context"

	"market_backend/internal/feature/market/domain/entity"
)

// 外部データソースのインターフェース群です。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
// 実装は資格情報が未設定の場合、ネットワークに触れる前に fallback.ErrNotConfigured を返します。

// KoreanStockSource は国内株式（KOSPI/KOSDAQ）のデータを取得します。
type KoreanStockSource interface {
	VolumeRank(ctx context.Context, market entity.Market) ([]entity.VolumeRankItem, error)
	Summary(ctx context.Context) (entity.MarketSummary, error)
}

// USStockSource は米国株の気配値を取得します。
type USStockSource interface {
	Quotes(ctx context.Context, tickers []entity.Ticker) ([]entity.StockData, error)
}

// CryptoSource は暗号資産のティッカーを取得します。
type CryptoSource interface {
	Tickers(ctx context.Context, tickers []entity.Ticker) ([]entity.CryptoData, error)
}

// MetalSource は金・銀の価格を取得します。
type MetalSource interface {
	GoldSilver(ctx context.Context) (entity.GoldSilverData, error)
}

// BondSource は債券利回りを取得します。
type BondSource interface {
	Bonds(ctx context.Context) ([]entity.BondData, error)
}

// WatchlistReader はウォッチリストに登録された銘柄を返します。
type WatchlistReader interface {
	ActiveTickers(ctx context.Context, assetClass string) ([]entity.Ticker, error)
}

// Sources はMarketUsecaseが利用する全データソースをまとめたものです。
type Sources struct {
	Korea  KoreanStockSource
	US     USStockSource
	Crypto CryptoSource
	Metals MetalSource
	Bonds  BondSource
}
