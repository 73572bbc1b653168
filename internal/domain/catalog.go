package domain

import "context"

// IntRange is a closed interval over an int property. A nil side is
// unbounded.
type IntRange struct {
	From *int
	To   *int
}

// CatalogQuery is the parsed form of the catalog query string. Filters and
// Ranges are keyed by the bare property uid; filter values are candidate
// value uids (membership test, OR within one property, AND across
// properties).
type CatalogQuery struct {
	Filters  map[string][]string
	Ranges   map[string]IntRange
	Name     string
	Sort     string
	Page     int
	PageSize int
}

// PropertyStats aggregates one filtered property over the matching product
// set: per-value counts for list properties, observed min/max for int
// properties. Count is the number of matching products carrying the
// property.
type PropertyStats struct {
	Count    int64            `json:"count"`
	Values   map[string]int64 `json:"values,omitempty"`
	MinValue *int             `json:"min_value,omitempty"`
	MaxValue *int             `json:"max_value,omitempty"`
}

type CatalogRepo interface {
	FilterProducts(ctx context.Context, q CatalogQuery) ([]Product, int64, error)
	FilterStatistics(ctx context.Context, q CatalogQuery) (map[string]PropertyStats, int64, error)
}
