package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/pkazanov/catalog-api/internal/domain"
)

type CatalogRepo struct{ db *gorm.DB }

func NewCatalogRepo(db *gorm.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// matching builds the filter conjunction: every list filter and every int
// range must independently hold (AND across properties, membership within
// one list filter, closed interval for ranges).
func (r *CatalogRepo) matching(ctx context.Context, q domain.CatalogQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&domain.Product{})
	for pid, vals := range q.Filters {
		db = db.Where(
			"EXISTS (SELECT 1 FROM product_property_values ppv WHERE ppv.product_uid = products.uid AND ppv.property_uid = ? AND ppv.value_uid IN ?)",
			pid, vals,
		)
	}
	for pid, rng := range q.Ranges {
		cond := "EXISTS (SELECT 1 FROM product_property_ints ppi WHERE ppi.product_uid = products.uid AND ppi.property_uid = ?"
		args := []any{pid}
		if rng.From != nil {
			cond += " AND ppi.value >= ?"
			args = append(args, *rng.From)
		}
		if rng.To != nil {
			cond += " AND ppi.value <= ?"
			args = append(args, *rng.To)
		}
		cond += ")"
		db = db.Where(cond, args...)
	}
	if q.Name != "" {
		db = db.Where("LOWER(name) LIKE LOWER(?)", "%"+q.Name+"%")
	}
	return db
}

func (r *CatalogRepo) FilterProducts(ctx context.Context, q domain.CatalogQuery) ([]domain.Product, int64, error) {
	db := r.matching(ctx, q)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, &domain.StorageError{Err: err}
	}

	switch q.Sort {
	case "name":
		db = db.Order("name asc")
	case "uid":
		db = db.Order("uid asc")
	}

	offset := (q.Page - 1) * q.PageSize
	var list []domain.Product
	if err := db.Offset(offset).Limit(q.PageSize).
		Preload("PropertyValues.Value").
		Preload("PropertyInts").
		Find(&list).Error; err != nil {
		return nil, 0, &domain.StorageError{Err: err}
	}
	return list, total, nil
}

// FilterStatistics aggregates each filtered property over the product set
// matching the full conjunction, that property's own filter included.
func (r *CatalogRepo) FilterStatistics(ctx context.Context, q domain.CatalogQuery) (map[string]domain.PropertyStats, int64, error) {
	var total int64
	if err := r.matching(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, &domain.StorageError{Err: err}
	}

	stats := make(map[string]domain.PropertyStats, len(q.Filters)+len(q.Ranges))

	for pid := range q.Filters {
		var rows []struct {
			ValueUID string `gorm:"column:value_uid"`
			N        int64  `gorm:"column:n"`
		}
		sub := r.matching(ctx, q).Select("products.uid")
		if err := r.db.WithContext(ctx).Model(&domain.ProductPropertyValue{}).
			Select("value_uid, COUNT(*) AS n").
			Where("property_uid = ?", pid).
			Where("product_uid IN (?)", sub).
			Group("value_uid").
			Scan(&rows).Error; err != nil {
			return nil, 0, &domain.StorageError{Err: err}
		}
		values := make(map[string]int64, len(rows))
		var count int64
		for _, row := range rows {
			values[row.ValueUID] = row.N
			count += row.N
		}
		stats[pid] = domain.PropertyStats{Count: count, Values: values}
	}

	for pid := range q.Ranges {
		var row struct {
			MinValue *int  `gorm:"column:min_value"`
			MaxValue *int  `gorm:"column:max_value"`
			N        int64 `gorm:"column:n"`
		}
		sub := r.matching(ctx, q).Select("products.uid")
		if err := r.db.WithContext(ctx).Model(&domain.ProductPropertyInt{}).
			Select("MIN(value) AS min_value, MAX(value) AS max_value, COUNT(*) AS n").
			Where("property_uid = ?", pid).
			Where("product_uid IN (?)", sub).
			Scan(&row).Error; err != nil {
			return nil, 0, &domain.StorageError{Err: err}
		}
		stats[pid] = domain.PropertyStats{Count: row.N, MinValue: row.MinValue, MaxValue: row.MaxValue}
	}

	return stats, total, nil
}
