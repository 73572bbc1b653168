package domain

import (
	"context"

	"github.com/google/uuid"
)

type Product struct {
	UID            uuid.UUID              `gorm:"type:uuid;primaryKey" json:"uid"`
	Name           string                 `gorm:"size:180;not null" json:"name"`
	PropertyValues []ProductPropertyValue `gorm:"foreignKey:ProductUID" json:"-"`
	PropertyInts   []ProductPropertyInt   `gorm:"foreignKey:ProductUID" json:"-"`
}

func (Product) TableName() string { return "products" }

// ProductPropertyValue links a product to one enumerated value of a list
// property. value_uid must belong to the row's property_uid.
type ProductPropertyValue struct {
	ProductUID  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PropertyUID uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ValueUID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Value       *PropertyValue `gorm:"foreignKey:ValueUID;references:UID"`
}

func (ProductPropertyValue) TableName() string { return "product_property_values" }

// ProductPropertyInt holds a product's integer value for an int property.
type ProductPropertyInt struct {
	ProductUID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyUID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Value       int       `gorm:"not null"`
}

func (ProductPropertyInt) TableName() string { return "product_property_ints" }

// ProductAssignment is one property reference in a product create request.
// Exactly one of ValueUID (list) or Value (int) must be set, matching the
// referenced property's kind.
type ProductAssignment struct {
	PropertyUID uuid.UUID
	ValueUID    *uuid.UUID
	Value       *int
}

type ProductRepo interface {
	Create(ctx context.Context, name string, assignments []ProductAssignment) (*Product, error)
	FindByUID(ctx context.Context, uid uuid.UUID) (*Product, error)
	Delete(ctx context.Context, uid uuid.UUID) error
}
