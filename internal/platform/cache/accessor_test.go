package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterFetcher は呼び出し回数を値として返すライブフェッチャーを生成します。
func counterFetcher(calls *atomic.Int64) Fetcher[int64] {
	return func(ctx context.Context) (Result[int64], error) {
		return Live(calls.Add(1)), nil
	}
}

// failingStore は常にエラーを返すStoreです。
type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) (mo.Option[[]byte], error) {
	return mo.None[[]byte](), f.err
}

func (f failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return f.err
}

// TestRemember_HitSuppressesFetch はTTL内の2回目の呼び出しでフェッチャーが呼ばれないことを検証します。
func TestRemember_HitSuppressesFetch(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	acc := NewAccessor(NewMemoryStore(clock.Now), Options{})
	var calls atomic.Int64
	ctx := context.Background()

	first, err := Remember(ctx, acc, "x", 5*time.Second, counterFetcher(&calls))
	require.NoError(t, err)
	clock.Advance(4 * time.Second)
	second, err := Remember(ctx, acc, "x", 5*time.Second, counterFetcher(&calls))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Value)
	assert.False(t, first.Cached)
	assert.Equal(t, int64(1), second.Value)
	assert.True(t, second.Cached)
	assert.Equal(t, SourceLive, second.Source)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, Stats{Hits: 1, Misses: 1, LiveFetches: 1}, acc.Stats())
}

// TestRemember_ExpiryTriggersRefetch はTTL経過後にフェッチャーが再度呼ばれることを検証します。
func TestRemember_ExpiryTriggersRefetch(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	acc := NewAccessor(NewMemoryStore(clock.Now), Options{})
	var calls atomic.Int64
	ctx := context.Background()

	_, err := Remember(ctx, acc, "x", 5*time.Second, counterFetcher(&calls))
	require.NoError(t, err)

	clock.Advance(5 * time.Second)
	res, err := Remember(ctx, acc, "x", 5*time.Second, counterFetcher(&calls))
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.Value)
	assert.False(t, res.Cached)
	assert.Equal(t, int64(2), calls.Load())
}

// TestRemember_MockResultsAreNotStored はモック結果がキャッシュされず、毎回ライブ取得が再試行されることを検証します。
func TestRemember_MockResultsAreNotStored(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(newFakeClock().Now)
	acc := NewAccessor(store, Options{})
	var calls atomic.Int64
	fetch := func(ctx context.Context) (Result[string], error) {
		calls.Add(1)
		return Mock("placeholder"), nil
	}

	for i := 0; i < 3; i++ {
		res, err := Remember(context.Background(), acc, "gold", time.Minute, fetch)
		require.NoError(t, err)
		assert.Equal(t, "placeholder", res.Value)
		assert.Equal(t, SourceMock, res.Source)
	}

	assert.Equal(t, int64(3), calls.Load())
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, int64(3), acc.Stats().Fallbacks)
}

// TestRemember_FetchErrorPropagates はフェッチャーのエラーがそのまま返され、何も保存されないことを検証します。
func TestRemember_FetchErrorPropagates(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(nil)
	acc := NewAccessor(store, Options{})
	boom := errors.New("boom")

	_, err := Remember(context.Background(), acc, "k", time.Minute, func(ctx context.Context) (Result[int], error) {
		return Result[int]{}, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())
}

// TestRemember_StoreErrorsAreBestEffort はStoreの読み書きエラーが無視されフェッチ結果が返ることを検証します。
func TestRemember_StoreErrorsAreBestEffort(t *testing.T) {
	t.Parallel()

	acc := NewAccessor(failingStore{err: errors.New("redis down")}, Options{})
	var calls atomic.Int64

	for i := 1; i <= 2; i++ {
		res, err := Remember(context.Background(), acc, "k", time.Minute, counterFetcher(&calls))
		require.NoError(t, err)
		assert.Equal(t, int64(i), res.Value)
	}
}

// TestRemember_CorruptedEntryIsRefetched は破損したエントリがミス扱いとなり上書きされることを検証します。
func TestRemember_CorruptedEntryIsRefetched(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(nil)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("invalid json"), time.Minute))

	acc := NewAccessor(store, Options{})
	var calls atomic.Int64
	res, err := Remember(ctx, acc, "k", time.Minute, counterFetcher(&calls))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Value)

	opt, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), opt.OrEmpty())
}

// TestRemember_ConcurrentMissesAreNotCorrupting は同一キーへの同時ミスで全員が正しい結果を受け取り、最終エントリが有効であることを検証します。
func TestRemember_ConcurrentMissesAreNotCorrupting(t *testing.T) {
	t.Parallel()

	type payload struct {
		Items []int `json:"items"`
		N     int64 `json:"n"`
	}

	store := NewMemoryStore(nil)
	acc := NewAccessor(store, Options{})
	var calls atomic.Int64
	start := make(chan struct{})
	fetch := func(ctx context.Context) (Result[payload], error) {
		<-start
		n := calls.Add(1)
		return Live(payload{Items: []int{1, 2, 3}, N: n}), nil
	}

	const n = 32
	var wg sync.WaitGroup
	results := make([]Result[payload], n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Remember(context.Background(), acc, "crypto", time.Minute, fetch)
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, []int{1, 2, 3}, results[i].Value.Items)
		assert.Positive(t, results[i].Value.N)
	}

	opt, err := store.Get(context.Background(), "crypto")
	require.NoError(t, err)
	var final payload
	require.NoError(t, json.Unmarshal(opt.MustGet(), &final))
	assert.Equal(t, []int{1, 2, 3}, final.Items)
	assert.GreaterOrEqual(t, calls.Load(), int64(1))
	assert.LessOrEqual(t, calls.Load(), int64(n))
}

// TestRemember_CoalesceMisses は CoalesceMisses 有効時に同時ミスが1回のフェッチにまとめられることを検証します。
func TestRemember_CoalesceMisses(t *testing.T) {
	t.Parallel()

	acc := NewAccessor(NewMemoryStore(nil), Options{CoalesceMisses: true})
	var calls atomic.Int64
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	fetch := func(ctx context.Context) (Result[int64], error) {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		return Live(calls.Add(1)), nil
	}

	const n = 8
	var wg sync.WaitGroup
	values := make([]int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := Remember(context.Background(), acc, "picks", time.Hour, fetch)
			if err == nil {
				values[i] = res.Value
			}
		}(i)
	}

	<-entered
	// 他のゴルーチンが singleflight で待機するまで少し待つ
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, v := range values {
		assert.Equal(t, int64(1), v)
	}
	assert.Equal(t, int64(1), calls.Load())
}

// TestRemember_RedisStore はRedisStore上でもキャッシュヒット時にフェッチャーが呼ばれないことを検証します。
func TestRemember_RedisStore(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("market:x").RedisNil()
	mock.ExpectSet("market:x", []byte("1"), 5*time.Second).SetVal("OK")
	mock.ExpectGet("market:x").SetVal("1")

	acc := NewAccessor(NewRedisStore(rdb, "market"), Options{})
	var calls atomic.Int64
	ctx := context.Background()

	first, err := Remember(ctx, acc, "x", 5*time.Second, counterFetcher(&calls))
	require.NoError(t, err)
	second, err := Remember(ctx, acc, "x", 5*time.Second, counterFetcher(&calls))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Value)
	assert.Equal(t, int64(1), second.Value)
	assert.Equal(t, int64(1), calls.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}
