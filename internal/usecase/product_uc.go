package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pkazanov/catalog-api/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
}

// Create persists a product with its property assignments. Per-assignment
// validation against the property definitions happens in the repository,
// inside the same transaction that writes the rows.
func (uc *ProductUC) Create(ctx context.Context, name string, assignments []domain.ProductAssignment) (*domain.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.Validationf("name is required")
	}
	return uc.Products.Create(ctx, name, assignments)
}

func (uc *ProductUC) Get(ctx context.Context, uid uuid.UUID) (*domain.Product, error) {
	return uc.Products.FindByUID(ctx, uid)
}

func (uc *ProductUC) Delete(ctx context.Context, uid uuid.UUID) error {
	return uc.Products.Delete(ctx, uid)
}
