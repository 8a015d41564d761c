package usecase

import (
	"context"
	"errors"
	"log/slog"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/platform/cache"
)

// WarmReport は Warm の結果の集計です。
type WarmReport struct {
	Live  int
	Mock  int
	Hit   int
	Error int
}

// Warm は全エンドポイントのデータを順に取得してキャッシュを温めます。
// 1つが失敗しても処理を止めずにログに出力し、次の処理を続けます。
// 返すエラーは発生したエラーをすべてまとめたものです。
func (mu *MarketUsecase) Warm(ctx context.Context) (WarmReport, error) {
	var report WarmReport
	var errs []error

	record := func(name string, src cache.Source, cached bool, err error) {
		switch {
		case err != nil:
			report.Error++
			errs = append(errs, err)
			slog.Error("failed to warm cache", "endpoint", name, "error", err)
		case cached:
			report.Hit++
		case src == cache.SourceLive:
			report.Live++
		default:
			report.Mock++
			slog.Warn("warmed with mock data; entry not cached", "endpoint", name)
		}
	}

	for _, m := range []entity.Market{entity.KOSPI, entity.KOSDAQ} {
		r, err := mu.VolumeRank(ctx, m)
		record("volume-rank:"+string(m), r.Source, r.Cached, err)
	}
	{
		r, err := mu.Summary(ctx)
		record("summary", r.Source, r.Cached, err)
	}
	{
		r, err := mu.USStocks(ctx)
		record("stocks-us", r.Source, r.Cached, err)
	}
	{
		r, err := mu.Crypto(ctx)
		record("crypto", r.Source, r.Cached, err)
	}
	{
		r, err := mu.Gold(ctx)
		record("gold", r.Source, r.Cached, err)
	}
	{
		r, err := mu.Bonds(ctx)
		record("bonds", r.Source, r.Cached, err)
	}
	{
		r, err := mu.Picks(ctx)
		record("picks", r.Source, r.Cached, err)
	}

	return report, errors.Join(errs...)
}
