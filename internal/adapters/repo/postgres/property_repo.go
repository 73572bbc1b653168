package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pkazanov/catalog-api/internal/domain"
)

type PropertyRepo struct{ db *gorm.DB }

func NewPropertyRepo(db *gorm.DB) *PropertyRepo { return &PropertyRepo{db: db} }

// Create persists the property and its values in one transaction.
func (r *PropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Values").Create(p).Error; err != nil {
			return err
		}
		if len(p.Values) > 0 {
			return tx.Create(&p.Values).Error
		}
		return nil
	})
	if err != nil {
		return &domain.StorageError{Err: err}
	}
	return nil
}

func (r *PropertyRepo) FindByUID(ctx context.Context, uid uuid.UUID) (*domain.Property, error) {
	var p domain.Property
	if err := r.db.WithContext(ctx).Preload("Values").First(&p, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StorageError{Err: err}
	}
	if p.Values == nil {
		p.Values = []domain.PropertyValue{}
	}
	return &p, nil
}

func (r *PropertyRepo) FindAll(ctx context.Context) ([]domain.Property, error) {
	var list []domain.Property
	if err := r.db.WithContext(ctx).Preload("Values").Order("name asc").Find(&list).Error; err != nil {
		return nil, &domain.StorageError{Err: err}
	}
	for i := range list {
		if list[i].Values == nil {
			list[i].Values = []domain.PropertyValue{}
		}
	}
	return list, nil
}

// Delete removes the property together with its values and any product
// assignments referencing it, so no orphaned rows survive.
func (r *PropertyRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_uid = ?", uid).Delete(&domain.ProductPropertyValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_uid = ?", uid).Delete(&domain.ProductPropertyInt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_uid = ?", uid).Delete(&domain.PropertyValue{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Property{}, "uid = ?", uid)
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
