// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"twstock/internal/feature/symbollist/domain/entity"
	"twstock/internal/feature/symbollist/usecase"
)

type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は銘柄マスタのgormリポジトリを返します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

var activeOrder = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "sort_key"}},
	{Column: clause.Column{Name: "code"}},
}}

func (r *symbolGorm) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Clauses(activeOrder)
}

// ListActive は有効な銘柄を sort_key, code 順で返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.active(ctx).Find(&symbols).Error; err != nil {
		return nil, fmt.Errorf("list active symbols: %w", err)
	}
	return symbols, nil
}

// ListActiveCodes は取り込み対象のコードだけを返します。
func (r *symbolGorm) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.active(ctx).Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("list active codes: %w", err)
	}
	return codes, nil
}

// Upsert はcodeをキーに銘柄を登録・更新します。
// 既存行のis_activeは変更しないので、無効化した銘柄は再シードで復活しません。
func (r *symbolGorm) Upsert(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "market", "sort_key", "updated_at"}),
		}).
		Create(&symbols).Error
	if err != nil {
		return fmt.Errorf("upsert %d symbols: %w", len(symbols), err)
	}
	return nil
}
