package di

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	watchlistadapters "market_backend/internal/feature/watchlist/adapters"
	watchlistusecase "market_backend/internal/feature/watchlist/usecase"
)

// NewWatchlist creates the watchlist usecase and seeds the table from seedPath when it is empty.
// An empty seedPath uses the embedded default list.
func NewWatchlist(ctx context.Context, db *gorm.DB, seedPath string) (*watchlistusecase.SymbolUsecase, error) {
	uc := watchlistusecase.NewSymbolUsecase(watchlistadapters.NewSymbolRepository(db))

	symbols, err := watchlistadapters.LoadSeed(seedPath)
	if err != nil {
		return nil, fmt.Errorf("load watchlist seed: %w", err)
	}
	seeded, err := uc.SeedIfEmpty(ctx, symbols)
	if err != nil {
		return nil, err
	}
	if seeded {
		slog.Info("watchlist seeded", "symbols", len(symbols))
	}
	return uc, nil
}
