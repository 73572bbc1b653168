package app

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pkazanov/catalog-api/internal/adapters/httpserver"
	"github.com/pkazanov/catalog-api/internal/adapters/repo/postgres"
	"github.com/pkazanov/catalog-api/internal/domain"
	"github.com/pkazanov/catalog-api/internal/usecase"
)

type App struct {
	DB         *gorm.DB
	PropertyUC *usecase.PropertyUC
	ProductUC  *usecase.ProductUC
	CatalogUC  *usecase.CatalogUC
}

func New(db *gorm.DB) *App {
	propRepo := postgres.NewPropertyRepo(db)
	prodRepo := postgres.NewProductRepo(db)
	catRepo := postgres.NewCatalogRepo(db)

	return &App{
		DB:         db,
		PropertyUC: &usecase.PropertyUC{Properties: propRepo},
		ProductUC:  &usecase.ProductUC{Products: prodRepo},
		CatalogUC:  &usecase.CatalogUC{Catalog: catRepo},
	}
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.PropertyUC, a.ProductUC, a.CatalogUC)
}

func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(
		&domain.Property{}, &domain.PropertyValue{},
		&domain.Product{}, &domain.ProductPropertyValue{}, &domain.ProductPropertyInt{},
	); err != nil {
		return err
	}

	for _, stmt := range []string{
		"CREATE INDEX IF NOT EXISTS idx_product_property_values_property_uid ON product_property_values(property_uid)",
		"CREATE INDEX IF NOT EXISTS idx_product_property_ints_property_uid ON product_property_ints(property_uid)",
	} {
		if err := a.DB.Exec(stmt).Error; err != nil {
			log.Warn().Err(err).Str("stmt", stmt).Msg("failed to create index")
		}
	}

	return nil
}
