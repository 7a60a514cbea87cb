package repository

import (
	"time"

	"github.com/atelier-heritage/market/app/models"
)

// ArtisanRepository defines artisan directory operations. Artisans are
// created by the seed/admin flow and only read by the sync pipeline.
type ArtisanRepository interface {
	Create(artisan *models.Artisan) error
	GetByID(id uint) (*models.Artisan, error)
	GetByName(name string) (*models.Artisan, error)
	List() ([]models.Artisan, error)
}

// ProductRepository defines catalog read operations. All of them are
// restricted to active products; synchronization writes go through the
// shopsync repository instead.
type ProductRepository interface {
	GetBySlug(slug string) (*models.Product, error)
	Featured(limit int) ([]models.Product, error)
	Catalog(params CatalogParams) ([]models.Product, error)
	Search(query string, limit int) ([]ProductSearchResult, error)
}

// AnalyticsRepository defines the windowed aggregate reads behind the KPI and
// artisan dashboards. Every method is a pure read scoped to rows at or after
// the given window start.
type AnalyticsRepository interface {
	OrderTotals(start time.Time) (OrderTotals, error)
	UnitsSold(start time.Time) (int64, error)
	RepeatRate(start time.Time) (float64, error)
	DailyOrderTotals(start time.Time) ([]DailyOrderTotals, error)
	ArtisanTotals(artisanID uint, start time.Time) (ArtisanTotals, error)
	ArtisanTopProducts(artisanID uint, start time.Time, limit int) ([]ProductRevenue, error)
	TopProductsByUnits(start time.Time, limit int) ([]ProductUnits, error)
}

// Repositories holds all repository instances.
type Repositories struct {
	Artisan   ArtisanRepository
	Product   ProductRepository
	Analytics AnalyticsRepository
}
