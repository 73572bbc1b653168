package usecase

import (
	"context"

	"github.com/pkazanov/catalog-api/internal/domain"
)

type CatalogUC struct {
	Catalog domain.CatalogRepo
}

// Filter applies the parsed catalog query with pagination. Total is counted
// before the page window is applied.
func (uc *CatalogUC) Filter(ctx context.Context, q domain.CatalogQuery) ([]domain.Product, int64, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 10
	}
	if q.Page < 1 {
		return nil, 0, domain.Validationf("page must be >= 1")
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		return nil, 0, domain.Validationf("page_size must be between 1 and 100")
	}
	return uc.Catalog.FilterProducts(ctx, q)
}

// Statistics aggregates the filtered properties over the full matching set,
// without pagination.
func (uc *CatalogUC) Statistics(ctx context.Context, q domain.CatalogQuery) (map[string]domain.PropertyStats, int64, error) {
	return uc.Catalog.FilterStatistics(ctx, q)
}
