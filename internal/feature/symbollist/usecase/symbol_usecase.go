// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"fmt"

	"twstock/internal/feature/symbollist/catalog"
	"twstock/internal/feature/symbollist/domain/entity"
)

const (
	// DefaultSearchLimit is used when the caller does not pass a limit.
	DefaultSearchLimit = 10
	// MaxSearchLimit caps search results.
	MaxSearchLimit = 50
)

// SymbolRepository abstracts the persistence layer for symbol (stock ticker) data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, symbols []entity.Symbol) error
}

// Catalog is the static code -> name table.
type Catalog interface {
	All() []catalog.Entry
	Search(q string, limit int) []catalog.Entry
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo    SymbolRepository
	catalog Catalog
}

// NewSymbolUsecase creates a new SymbolUsecase. repo may be nil when no database is configured.
func NewSymbolUsecase(r SymbolRepository, c Catalog) *SymbolUsecase {
	return &SymbolUsecase{repo: r, catalog: c}
}

// ListActiveSymbols returns all active symbols from the repository.
// Without a database the catalog is returned instead.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	if u.repo == nil {
		return fromCatalog(u.catalog.All()), nil
	}
	return u.repo.ListActive(ctx)
}

// Popular returns the catalog in display order.
func (u *SymbolUsecase) Popular() []catalog.Entry {
	return u.catalog.All()
}

// Search finds catalog entries by code prefix or name substring.
func (u *SymbolUsecase) Search(q string, limit int) []catalog.Entry {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	limit = min(limit, MaxSearchLimit)
	return u.catalog.Search(q, limit)
}

// SeedCatalog upserts every catalog entry into the symbol table.
func (u *SymbolUsecase) SeedCatalog(ctx context.Context) (int, error) {
	if u.repo == nil {
		return 0, nil
	}
	symbols := fromCatalog(u.catalog.All())
	if err := u.repo.Upsert(ctx, symbols); err != nil {
		return 0, fmt.Errorf("seed symbols: %w", err)
	}
	return len(symbols), nil
}

// ListActiveCodes returns the codes the ingest job should fetch.
func (u *SymbolUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	if u.repo == nil {
		entries := u.catalog.All()
		codes := make([]string, len(entries))
		for i, e := range entries {
			codes[i] = e.Code
		}
		return codes, nil
	}
	return u.repo.ListActiveCodes(ctx)
}

func fromCatalog(entries []catalog.Entry) []entity.Symbol {
	out := make([]entity.Symbol, len(entries))
	for i, e := range entries {
		market := e.Market
		if market == "" {
			market = entity.MarketTWSE
		}
		out[i] = entity.Symbol{
			Code:     e.Code,
			Name:     e.Name,
			Market:   market,
			IsActive: true,
			SortKey:  i + 1,
		}
	}
	return out
}
