package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Source tells whether a value came from the live upstream API or from a mock generator.
type Source string

const (
	SourceLive Source = "live"
	SourceMock Source = "mock"
)

// Result is a value produced by a Fetcher or served from the cache.
type Result[T any] struct {
	Value  T
	Source Source
	// Cached is true when the value was read from the Store without calling the fetcher.
	Cached bool
}

// Live wraps v as a live result.
func Live[T any](v T) Result[T] {
	return Result[T]{Value: v, Source: SourceLive}
}

// Mock wraps v as a mock result.
func Mock[T any](v T) Result[T] {
	return Result[T]{Value: v, Source: SourceMock}
}

// Fetcher produces a fresh value on a cache miss.
type Fetcher[T any] func(ctx context.Context) (Result[T], error)

// Options configures an Accessor.
type Options struct {
	// CoalesceMisses collapses concurrent misses on the same key into one fetch.
	// When false every concurrent miss calls the fetcher and the last write wins.
	CoalesceMisses bool
}

// Stats is a snapshot of accessor counters.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	LiveFetches int64 `json:"liveFetches"`
	Fallbacks   int64 `json:"fallbacks"`
}

// Accessor wraps fetchers with a Store. It is created once at startup and handed to every usecase.
type Accessor struct {
	store    Store
	coalesce bool
	group    singleflight.Group

	hits        atomic.Int64
	misses      atomic.Int64
	liveFetches atomic.Int64
	fallbacks   atomic.Int64
}

// NewAccessor creates an Accessor over store.
func NewAccessor(store Store, opts Options) *Accessor {
	return &Accessor{store: store, coalesce: opts.CoalesceMisses}
}

// Stats returns the current counters.
func (a *Accessor) Stats() Stats {
	return Stats{
		Hits:        a.hits.Load(),
		Misses:      a.misses.Load(),
		LiveFetches: a.liveFetches.Load(),
		Fallbacks:   a.fallbacks.Load(),
	}
}

// Remember returns the cached value for key, or calls fetch on a miss.
//
// A hit never invokes fetch and never refreshes in the background.
// On a miss, a live result is stored for ttl before it is returned; mock results are returned
// without being stored, so the next call retries the upstream API.
// Errors from fetch are returned unchanged and nothing is stored.
func Remember[T any](ctx context.Context, a *Accessor, key string, ttl time.Duration, fetch Fetcher[T]) (Result[T], error) {
	if v, ok := lookup[T](ctx, a, key); ok {
		a.hits.Add(1)
		return Result[T]{Value: v, Source: SourceLive, Cached: true}, nil
	}
	a.misses.Add(1)

	if !a.coalesce {
		return load(ctx, a, key, ttl, fetch)
	}

	// The first caller's ctx drives the shared fetch.
	v, err, _ := a.group.Do(key, func() (any, error) {
		return load(ctx, a, key, ttl, fetch)
	})
	if err != nil {
		var zero Result[T]
		return zero, err
	}
	return v.(Result[T]), nil
}

// lookup reads and decodes key. Store errors and undecodable entries count as misses.
func lookup[T any](ctx context.Context, a *Accessor, key string) (T, bool) {
	var out T

	opt, err := a.store.Get(ctx, key)
	if err != nil {
		slog.Warn("cache read failed; treating as miss", "key", key, "error", err)
		return out, false
	}
	b, ok := opt.Get()
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(b, &out); err != nil {
		slog.Warn("corrupted cache entry; treating as miss", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return out, true
}

// load calls fetch and stores live results.
func load[T any](ctx context.Context, a *Accessor, key string, ttl time.Duration, fetch Fetcher[T]) (Result[T], error) {
	res, err := fetch(ctx)
	if err != nil {
		return res, err
	}
	if res.Source != SourceLive {
		a.fallbacks.Add(1)
		return res, nil
	}
	a.liveFetches.Add(1)

	// Best effort: a failed write only costs an extra upstream call later.
	b, err := json.Marshal(res.Value)
	if err != nil {
		slog.Warn("failed to encode cache entry", "key", key, "error", err)
		return res, nil
	}
	if err := a.store.Set(ctx, key, b, ttl); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
	return res, nil
}
