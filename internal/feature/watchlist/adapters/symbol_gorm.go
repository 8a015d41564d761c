// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"market_backend/internal/feature/watchlist/domain/entity"
	"market_backend/internal/feature/watchlist/usecase"
)

// symbolGorm はSymbolRepositoryインターフェースのGORM実装です。
// SQLiteとPostgreSQLの両方で動作します。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive はsort_key順にアクティブな銘柄を返します。
// assetClass が空の場合はすべての資産クラスを返します。
func (r *symbolGorm) ListActive(ctx context.Context, assetClass string) ([]entity.Symbol, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if assetClass != "" {
		q = q.Where("asset_class = ?", assetClass)
	}
	var symbols []entity.Symbol
	if err := q.Order("asset_class ASC").Order("sort_key ASC").Order("code ASC").Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Count は登録されている銘柄の件数を返します（非アクティブを含む）。
func (r *symbolGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Symbol{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// UpsertBatch は (asset_class, code) をキーに銘柄を挿入または更新します。
func (r *symbolGorm) UpsertBatch(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_class"}, {Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "external_id", "is_active", "sort_key", "updated_at"}),
	}).Create(&symbols).Error
}
