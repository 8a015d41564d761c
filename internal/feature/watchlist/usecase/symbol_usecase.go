// Package usecase implements the business logic for the watchlist.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	marketentity "market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/feature/watchlist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for watchlist symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context, assetClass string) ([]entity.Symbol, error)
	Count(ctx context.Context) (int64, error)
	UpsertBatch(ctx context.Context, symbols []entity.Symbol) error
}

// SymbolUsecase provides business logic for watchlist operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns active symbols, optionally filtered by asset class.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context, assetClass string) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx, assetClass)
}

// ActiveTickers returns the active symbols of assetClass as market tickers.
// It satisfies the market feature's WatchlistReader.
func (u *SymbolUsecase) ActiveTickers(ctx context.Context, assetClass string) ([]marketentity.Ticker, error) {
	symbols, err := u.repo.ListActive(ctx, assetClass)
	if err != nil {
		return nil, err
	}
	out := make([]marketentity.Ticker, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, marketentity.Ticker{Symbol: s.Code, Name: s.Name, ExternalID: s.ExternalID})
	}
	return out, nil
}

// SeedIfEmpty stores symbols only when the watchlist has no rows yet,
// so edits made after the first start are never overwritten.
// It reports whether the seed was applied.
func (u *SymbolUsecase) SeedIfEmpty(ctx context.Context, symbols []entity.Symbol) (bool, error) {
	n, err := u.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count watchlist: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := u.repo.UpsertBatch(ctx, symbols); err != nil {
		return false, fmt.Errorf("seed watchlist: %w", err)
	}
	slog.Info("watchlist seeded", "symbols", len(symbols))
	return true, nil
}
