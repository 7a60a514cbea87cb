package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons per
// DB handle.
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory around an injected DB handle.
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories.
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// NewRepositories creates all repository instances.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Artisan:   NewArtisanRepository(db),
		Product:   NewProductRepository(db),
		Analytics: NewAnalyticsRepository(db),
	}
}

// GetArtisanRepository returns the artisan repository instance.
func (f *Factory) GetArtisanRepository() ArtisanRepository {
	return f.GetRepositories().Artisan
}

// GetProductRepository returns the product repository instance.
func (f *Factory) GetProductRepository() ProductRepository {
	return f.GetRepositories().Product
}

// GetAnalyticsRepository returns the analytics repository instance.
func (f *Factory) GetAnalyticsRepository() AnalyticsRepository {
	return f.GetRepositories().Analytics
}
