// Package fallback turns a live fetch into one that never fails by substituting mock data.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"market_backend/internal/platform/cache"
)

// ErrNotConfigured is returned by a live fetcher when its credentials are missing.
// Fetchers return it before doing any network I/O.
var ErrNotConfigured = errors.New("source not configured")

// LiveFunc fetches from the upstream API.
type LiveFunc[T any] func(ctx context.Context) (T, error)

// MockFunc builds the deterministic stand-in payload.
type MockFunc[T any] func() T

// Fetch calls live and returns its value tagged SourceLive.
// Any error or panic from live is logged and replaced by mock(), tagged SourceMock.
// An unconfigured source is treated the same as an unreachable one.
func Fetch[T any](ctx context.Context, name string, live LiveFunc[T], mock MockFunc[T]) cache.Result[T] {
	v, err := callLive(ctx, live)
	if err == nil {
		return cache.Live(v)
	}
	if errors.Is(err, ErrNotConfigured) {
		slog.Debug("source not configured; serving mock data", "source", name)
	} else {
		slog.Warn("live fetch failed; serving mock data", "source", name, "error", err)
	}
	return cache.Mock(mock())
}

// Fetcher adapts live/mock into a cache.Fetcher that never returns an error.
func Fetcher[T any](name string, live LiveFunc[T], mock MockFunc[T]) cache.Fetcher[T] {
	return func(ctx context.Context) (cache.Result[T], error) {
		return Fetch(ctx, name, live, mock), nil
	}
}

// callLive runs live, converting a panic into an error.
func callLive[T any](ctx context.Context, live LiveFunc[T]) (v T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			v, err = zero, fmt.Errorf("panic in live fetch: %v", rec)
		}
	}()
	return live(ctx)
}
