// Package config はアプリケーション全体の設定を環境変数から読み込みます。
// 外部APIごとの資格情報は各クライアントパッケージの LoadConfig が読み込みます。
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"market_backend/internal/feature/market/usecase"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds process-wide settings.
type Config struct {
	Port           string
	CacheBackend   string
	CoalesceMisses bool
	TTLs           usecase.TTLs
	AllowOrigins   []string
	WatchlistSeed  string
	JWTSecret      string
}

// Load は環境変数から設定を読み込みます。未設定・不正な値はデフォルトに置き換えます。
func Load() Config {
	def := usecase.DefaultTTLs()

	backend := strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory))
	if backend != CacheBackendMemory && backend != CacheBackendRedis {
		slog.Warn("unknown CACHE_BACKEND, using memory", "value", backend)
		backend = CacheBackendMemory
	}

	return Config{
		Port:           getEnv("PORT", "8080"),
		CacheBackend:   backend,
		CoalesceMisses: getEnvBool("CACHE_COALESCE_MISSES", false),
		TTLs: usecase.TTLs{
			VolumeRank: getEnvSeconds("CACHE_TTL_VOLUME_RANK", def.VolumeRank),
			Summary:    getEnvSeconds("CACHE_TTL_SUMMARY", def.Summary),
			USStocks:   getEnvSeconds("CACHE_TTL_STOCKS_US", def.USStocks),
			Crypto:     getEnvSeconds("CACHE_TTL_CRYPTO", def.Crypto),
			Gold:       getEnvSeconds("CACHE_TTL_GOLD", def.Gold),
			Bonds:      getEnvSeconds("CACHE_TTL_BONDS", def.Bonds),
			Picks:      getEnvSeconds("CACHE_TTL_PICKS", def.Picks),
			Watchlist:  getEnvSeconds("CACHE_TTL_WATCHLIST", def.Watchlist),
		},
		AllowOrigins:  splitList(os.Getenv("CORS_ALLOW_ORIGINS")),
		WatchlistSeed: os.Getenv("WATCHLIST_SEED"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}
}

// Addr returns the listen address for gin.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean env, using default", "key", key, "value", v)
		return def
	}
	return b
}

// getEnvSeconds reads a positive integer number of seconds.
func getEnvSeconds(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid TTL env, using default", "key", key, "value", v)
		return def
	}
	return time.Duration(n) * time.Second
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
