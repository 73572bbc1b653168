package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pkazanov/catalog-api/internal/domain"
)

type PropertyUC struct {
	Properties domain.PropertyRepo
}

// Create validates the name/kind/values combination and persists the
// property with its values. List properties need at least one value, int
// properties must not carry any. A zero uid is replaced with a generated
// one; a client-supplied uid is kept.
func (uc *PropertyUC) Create(ctx context.Context, uid uuid.UUID, name string, kind domain.PropertyKind, values []domain.PropertyValue) (*domain.Property, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.Validationf("name is required")
	}
	switch kind {
	case domain.KindList:
		if len(values) == 0 {
			return nil, domain.Validationf("property of type list requires at least one value")
		}
	case domain.KindInt:
		if len(values) > 0 {
			return nil, domain.Validationf("property of type int shouldn't have values")
		}
	default:
		return nil, domain.Validationf("unknown property type %q", kind)
	}

	if uid == uuid.Nil {
		uid = uuid.New()
	}
	p := &domain.Property{UID: uid, Name: name, Kind: kind}
	for i := range values {
		if values[i].UID == uuid.Nil {
			values[i].UID = uuid.New()
		}
		values[i].PropertyUID = p.UID
	}
	if values == nil {
		values = []domain.PropertyValue{}
	}
	p.Values = values

	if err := uc.Properties.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *PropertyUC) Get(ctx context.Context, uid uuid.UUID) (*domain.Property, error) {
	return uc.Properties.FindByUID(ctx, uid)
}

func (uc *PropertyUC) List(ctx context.Context) ([]domain.Property, error) {
	return uc.Properties.FindAll(ctx)
}

func (uc *PropertyUC) Delete(ctx context.Context, uid uuid.UUID) error {
	return uc.Properties.Delete(ctx, uid)
}
