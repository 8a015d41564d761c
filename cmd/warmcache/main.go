// Command warmcache は全エンドポイントのキャッシュを一度ずつ埋めます。
// 共有キャッシュ（CACHE_BACKEND=redis）と組み合わせてcronなどから実行します。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"market_backend/internal/app/config"
	"market_backend/internal/app/di"
	marketusecase "market_backend/internal/feature/market/usecase"
	watchlistentity "market_backend/internal/feature/watchlist/domain/entity"
	"market_backend/internal/platform/cache"
	infradb "market_backend/internal/platform/db"
	infraredis "market_backend/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	err := run(ctx, config.Load())
	cancel()
	if err != nil {
		slog.Error("warm failed", "error", err)
		os.Exit(1)
	}
}

// run は依存を初期化してキャッシュを温め、後片付けまで行います。
func run(ctx context.Context, cfg config.Config) error {
	var rdb *redisv9.Client
	if cfg.CacheBackend == config.CacheBackendRedis {
		tmp, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig())
		if err != nil {
			slog.Warn("Redis unavailable. Warming an in-memory cache only.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	} else {
		slog.Warn("CACHE_BACKEND is not redis; warmed values are discarded when this process exits")
	}

	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), &watchlistentity.Symbol{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	watchlistUC, err := di.NewWatchlist(ctx, db, cfg.WatchlistSeed)
	if err != nil {
		return fmt.Errorf("initialize watchlist: %w", err)
	}

	accessor := cache.NewAccessor(di.NewStore(rdb), cache.Options{CoalesceMisses: true})
	uc := marketusecase.NewMarketUsecase(accessor, di.NewSources(), watchlistUC, cfg.TTLs)

	report, err := uc.Warm(ctx)
	slog.Info("warm finished", "live", report.Live, "mock", report.Mock, "hit", report.Hit, "error", report.Error)
	return err
}
