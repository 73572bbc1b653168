package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pkazanov/catalog-api/internal/domain"
)

// setupTestDB opens a unique in-memory database per test to avoid
// cross-test collisions.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Property{}, &domain.PropertyValue{},
		&domain.Product{}, &domain.ProductPropertyValue{}, &domain.ProductPropertyInt{},
	))
	return db
}

func seedListProperty(t *testing.T, db *gorm.DB, name string, values ...string) *domain.Property {
	t.Helper()
	p := &domain.Property{UID: uuid.New(), Name: name, Kind: domain.KindList}
	for _, v := range values {
		p.Values = append(p.Values, domain.PropertyValue{UID: uuid.New(), PropertyUID: p.UID, Value: v})
	}
	require.NoError(t, NewPropertyRepo(db).Create(context.Background(), p))
	return p
}

func seedIntProperty(t *testing.T, db *gorm.DB, name string) *domain.Property {
	t.Helper()
	p := &domain.Property{UID: uuid.New(), Name: name, Kind: domain.KindInt}
	require.NoError(t, NewPropertyRepo(db).Create(context.Background(), p))
	return p
}

func listAssignment(propertyUID, valueUID uuid.UUID) domain.ProductAssignment {
	v := valueUID
	return domain.ProductAssignment{PropertyUID: propertyUID, ValueUID: &v}
}

func intAssignment(propertyUID uuid.UUID, value int) domain.ProductAssignment {
	v := value
	return domain.ProductAssignment{PropertyUID: propertyUID, Value: &v}
}
