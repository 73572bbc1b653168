package domain

import (
	"context"

	"github.com/google/uuid"
)

// PropertyKind is the closed set of property types. Every switch over it
// must handle all kinds plus a default for data that slipped past validation.
type PropertyKind string

const (
	KindList PropertyKind = "list"
	KindInt  PropertyKind = "int"
)

func (k PropertyKind) Valid() bool {
	switch k {
	case KindList, KindInt:
		return true
	}
	return false
}

type Property struct {
	UID    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"uid"`
	Name   string          `gorm:"size:180;not null" json:"name"`
	Kind   PropertyKind    `gorm:"column:type;type:varchar(10);not null" json:"type"`
	Values []PropertyValue `gorm:"foreignKey:PropertyUID;constraint:OnDelete:CASCADE" json:"values"`
}

func (Property) TableName() string { return "properties" }

// PropertyValue is one entry of a list property's enumerated set.
type PropertyValue struct {
	UID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"value_uid"`
	PropertyUID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Value       string    `gorm:"not null" json:"value"`
}

func (PropertyValue) TableName() string { return "property_values" }

type PropertyRepo interface {
	Create(ctx context.Context, p *Property) error
	FindByUID(ctx context.Context, uid uuid.UUID) (*Property, error)
	FindAll(ctx context.Context) ([]Property, error)
	Delete(ctx context.Context, uid uuid.UUID) error
}
