package repository

import (
	"github.com/atelier-heritage/market/app/models"
	"gorm.io/gorm"
)

type artisanRepository struct {
	db *gorm.DB
}

// NewArtisanRepository creates a new artisan repository instance.
func NewArtisanRepository(db *gorm.DB) ArtisanRepository {
	return &artisanRepository{db: db}
}

func (r *artisanRepository) Create(artisan *models.Artisan) error {
	return r.db.Create(artisan).Error
}

func (r *artisanRepository) GetByID(id uint) (*models.Artisan, error) {
	var artisan models.Artisan
	if err := r.db.First(&artisan, id).Error; err != nil {
		return nil, err
	}
	return &artisan, nil
}

func (r *artisanRepository) GetByName(name string) (*models.Artisan, error) {
	var artisan models.Artisan
	if err := r.db.Where("name = ?", name).First(&artisan).Error; err != nil {
		return nil, err
	}
	return &artisan, nil
}

func (r *artisanRepository) List() ([]models.Artisan, error) {
	var artisans []models.Artisan
	if err := r.db.Order("created_at DESC").Find(&artisans).Error; err != nil {
		return nil, err
	}
	return artisans, nil
}
