// Package ratelimiter は外部API呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は固定ウィンドウ方式で呼び出し回数を制限します。
// 上限を超えた呼び出しは後続ウィンドウの枠を順に予約し、その枠が開くまで待機します。
// 複数のリクエストから同時に呼ばれるため、内部状態はミューテックスで保護します。
type RateLimiter struct {
	mu          sync.Mutex
	limit       int           // ウィンドウあたりの上限
	interval    time.Duration // どの単位でリセットするか
	reserved    int           // windowStart 以降に予約済みの枠数（limit を超えると後続ウィンドウの分）
	windowStart time.Time
	now         func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:       limit,
		interval:    interval,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Wait は次の空き枠を予約し、その枠のウィンドウが始まるまで待機します。
// 待機中に ctx がキャンセルされた場合は ctx.Err() を返します。予約した枠は解放しません。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return ctx.Err()
	}

	rl.mu.Lock()
	now := rl.now()
	// 経過したウィンドウ分の枠を消化する
	if elapsed := now.Sub(rl.windowStart); elapsed >= rl.interval {
		windows := int(elapsed / rl.interval)
		rl.windowStart = rl.windowStart.Add(time.Duration(windows) * rl.interval)
		rl.reserved -= windows * rl.limit
		if rl.reserved < 0 {
			rl.reserved = 0
		}
	}
	slot := rl.reserved
	rl.reserved++
	opensAt := rl.windowStart.Add(time.Duration(slot/rl.limit) * rl.interval)
	rl.mu.Unlock()

	sleep := opensAt.Sub(now)
	if sleep <= 0 {
		return nil
	}
	slog.Info("rate limit reached; waiting", "limit", rl.limit, "sleep", sleep)

	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
