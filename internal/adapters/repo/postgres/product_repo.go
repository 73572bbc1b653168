package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pkazanov/catalog-api/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

// Create validates every assignment against its property definition and only
// then writes the product row plus one assignment row per property, all
// inside one transaction. A late failure therefore leaves no partial
// product behind.
func (r *ProductRepo) Create(ctx context.Context, name string, assignments []domain.ProductAssignment) (*domain.Product, error) {
	p := &domain.Product{UID: uuid.New(), Name: name}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listRows := make([]domain.ProductPropertyValue, 0, len(assignments))
		intRows := make([]domain.ProductPropertyInt, 0, len(assignments))

		for _, a := range assignments {
			var prop domain.Property
			if err := tx.First(&prop, "uid = ?", a.PropertyUID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.Validationf("property %s does not exist", a.PropertyUID)
				}
				return err
			}
			switch prop.Kind {
			case domain.KindList:
				if a.ValueUID == nil {
					return domain.Validationf("property %s requires value_uid (type: list)", a.PropertyUID)
				}
				if a.Value != nil {
					return domain.Validationf("property %s shouldn't have value (type: list)", a.PropertyUID)
				}
				var n int64
				if err := tx.Model(&domain.PropertyValue{}).
					Where("uid = ? AND property_uid = ?", *a.ValueUID, a.PropertyUID).
					Count(&n).Error; err != nil {
					return err
				}
				if n == 0 {
					return domain.Validationf("property value %s does not exist for property %s", *a.ValueUID, a.PropertyUID)
				}
				listRows = append(listRows, domain.ProductPropertyValue{
					ProductUID:  p.UID,
					PropertyUID: a.PropertyUID,
					ValueUID:    *a.ValueUID,
				})
			case domain.KindInt:
				if a.Value == nil {
					return domain.Validationf("property %s requires value (type: int)", a.PropertyUID)
				}
				if a.ValueUID != nil {
					return domain.Validationf("property %s shouldn't have value_uid (type: int)", a.PropertyUID)
				}
				intRows = append(intRows, domain.ProductPropertyInt{
					ProductUID:  p.UID,
					PropertyUID: a.PropertyUID,
					Value:       *a.Value,
				})
			default:
				return domain.Validationf("property %s has unknown type %q", a.PropertyUID, prop.Kind)
			}
		}

		if err := tx.Omit("PropertyValues", "PropertyInts").Create(p).Error; err != nil {
			return err
		}
		if len(listRows) > 0 {
			if err := tx.Create(&listRows).Error; err != nil {
				return err
			}
		}
		if len(intRows) > 0 {
			if err := tx.Create(&intRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return nil, ve
		}
		return nil, &domain.StorageError{Err: err}
	}
	return r.FindByUID(ctx, p.UID)
}

func (r *ProductRepo) FindByUID(ctx context.Context, uid uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).
		Preload("PropertyValues.Value").
		Preload("PropertyInts").
		First(&p, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StorageError{Err: err}
	}
	return &p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_uid = ?", uid).Delete(&domain.ProductPropertyValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_uid = ?", uid).Delete(&domain.ProductPropertyInt{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Product{}, "uid = ?", uid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return &domain.StorageError{Err: err}
	}
	return nil
}
