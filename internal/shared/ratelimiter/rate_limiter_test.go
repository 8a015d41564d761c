package ratelimiter

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRateLimiter_UnderLimit は上限以内の呼び出しが待機しないことを検証します。
func TestRateLimiter_UnderLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5, time.Minute)
	start := time.Now()
	for i := 0; i < 5; i++ {
		assert.NoError(t, rl.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}

// TestRateLimiter_WaitsForNextWindow は上限超過時に次のウィンドウまで待機することを検証します。
func TestRateLimiter_WaitsForNextWindow(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(2, 100*time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		assert.NoError(t, rl.Wait(context.Background()))
	}
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

// TestRateLimiter_ContextCancelled は待機中のキャンセルでエラーが返ることを検証します。
func TestRateLimiter_ContextCancelled(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, time.Hour)
	assert.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, rl.Wait(ctx), context.DeadlineExceeded)
}

// TestRateLimiter_Disabled は limit が0以下の場合に制限しないことを検証します。
func TestRateLimiter_Disabled(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0, time.Hour)
	for i := 0; i < 100; i++ {
		assert.NoError(t, rl.Wait(context.Background()))
	}
}

// TestRateLimiter_ConcurrentCallersShareWindows は同時に呼び出しても1ウィンドウあたりの上限を超えないことを検証します。
func TestRateLimiter_ConcurrentCallersShareWindows(t *testing.T) {
	t.Parallel()

	const (
		limit    = 2
		interval = 400 * time.Millisecond
		callers  = 6
	)
	start := time.Now()
	rl := NewRateLimiter(limit, interval)

	var (
		wg      sync.WaitGroup
		elapsed = make([]time.Duration, callers)
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, rl.Wait(context.Background()))
			elapsed[i] = time.Since(start)
		}(i)
	}
	wg.Wait()

	// 6件・上限2件なので、ウィンドウ0・1・2にそれぞれ2件ずつ解放される
	perWindow := make(map[int]int)
	for _, d := range elapsed {
		perWindow[int(d/interval)]++
	}
	for w, n := range perWindow {
		assert.LessOrEqual(t, n, limit, "window %d released %d calls", w, n)
	}
	assert.Equal(t, limit, perWindow[0])
}

// TestRateLimiter_ReservationsAdvanceWithClock は経過したウィンドウの予約が消化されることを注入した時刻で検証します。
func TestRateLimiter_ReservationsAdvanceWithClock(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	var offset atomic.Int64
	rl := NewRateLimiter(2, time.Minute)
	rl.windowStart = base
	rl.now = func() time.Time { return base.Add(time.Duration(offset.Load())) }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 1分目の2枠は即時、3件目は次のウィンドウを予約して待機（キャンセル済みなので即エラー）
	assert.NoError(t, rl.Wait(context.Background()))
	assert.NoError(t, rl.Wait(context.Background()))
	assert.ErrorIs(t, rl.Wait(ctx), context.Canceled)

	// 2分目: 予約済み1枠が消化対象になり、残り1枠は即時、その次は待機
	offset.Store(int64(time.Minute + time.Second))
	assert.NoError(t, rl.Wait(context.Background()))
	assert.ErrorIs(t, rl.Wait(ctx), context.Canceled)

	// 5分後: すべて消化されて即時
	offset.Store(int64(5 * time.Minute))
	assert.NoError(t, rl.Wait(context.Background()))
}
