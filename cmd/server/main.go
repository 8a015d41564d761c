package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"market_backend/internal/app/config"
	"market_backend/internal/app/di"
	"market_backend/internal/app/router"
	markethandler "market_backend/internal/feature/market/transport/handler"
	marketusecase "market_backend/internal/feature/market/usecase"
	watchlistentity "market_backend/internal/feature/watchlist/domain/entity"
	watchlisthandler "market_backend/internal/feature/watchlist/transport/handler"
	"market_backend/internal/platform/cache"
	infradb "market_backend/internal/platform/db"
	platformhandler "market_backend/internal/platform/http/handler"
	infraredis "market_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	if err := run(config.Load()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// run は依存を初期化してサーバーを起動し、SIGINT/SIGTERMで停止するまでブロックします。
func run(cfg config.Config) error {
	ctx := context.Background()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), &watchlistentity.Symbol{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	checks := map[string]platformhandler.CheckFunc{
		"db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	// Redis（CACHE_BACKEND=redis のときのみ。接続できなければメモリキャッシュで動く）
	var rdb *redisv9.Client
	if cfg.CacheBackend == config.CacheBackendRedis {
		tmp, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig())
		if err != nil {
			slog.Warn("Redis unavailable. Falling back to in-memory cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	// Usecase
	watchlistUC, err := di.NewWatchlist(ctx, db, cfg.WatchlistSeed)
	if err != nil {
		return fmt.Errorf("initialize watchlist: %w", err)
	}
	accessor := cache.NewAccessor(di.NewStore(rdb), cache.Options{CoalesceMisses: cfg.CoalesceMisses})
	marketUC := marketusecase.NewMarketUsecase(accessor, di.NewSources(), watchlistUC, cfg.TTLs)

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Market:    markethandler.NewMarketHandler(marketUC),
		Watchlist: watchlisthandler.NewSymbolHandler(watchlistUC),
		Health:    platformhandler.NewHealthHandler(checks),
	}, cfg.AllowOrigins)

	// JWT_SECRETチェック（管理用エンドポイントが使えないだけなので警告に留める）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Admin endpoints will respond with 500.")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "cache", cfg.CacheBackend, "coalesce", cfg.CoalesceMisses)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-sigChan:
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
