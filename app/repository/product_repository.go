package repository

import (
	"github.com/atelier-heritage/market/app/models"
	"gorm.io/gorm"
)

// Catalog sort modes.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

const catalogLimit = 48

// CatalogParams narrows the storefront catalog listing.
type CatalogParams struct {
	Search    string
	ArtisanID *uint
	Sort      string
}

// ProductSearchResult is one full-text hit, ranked by relevance.
type ProductSearchResult struct {
	ID         uint    `gorm:"column:id" json:"id"`
	UUID       string  `gorm:"column:uuid" json:"uuid"`
	Title      string  `gorm:"column:title" json:"title"`
	Slug       string  `gorm:"column:slug" json:"slug"`
	PriceCents int64   `gorm:"column:price_cents" json:"price_cents"`
	Currency   string  `gorm:"column:currency" json:"currency"`
	ImageURL   *string `gorm:"column:image_url" json:"image_url"`
	Relevance  float64 `gorm:"column:relevance" json:"-"`
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("slug = ? AND status = ?", slug, models.ProductStatusActive).
		Preload("Artisan").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Featured(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("status = ?", models.ProductStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Catalog(params CatalogParams) ([]models.Product, error) {
	if params.Search != "" {
		return r.catalogSearch(params)
	}

	query := r.db.Where("status = ?", models.ProductStatusActive)
	if params.ArtisanID != nil {
		query = query.Where("artisan_id = ?", *params.ArtisanID)
	}
	switch params.Sort {
	case SortPriceAsc:
		query = query.Order("price_cents ASC")
	case SortPriceDesc:
		query = query.Order("price_cents DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var products []models.Product
	if err := query.Limit(catalogLimit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// catalogSearch ranks the catalog by full-text relevance instead of the
// requested sort. Requires the MySQL FULLTEXT index on (title, description)
// created by the migrations.
func (r *productRepository) catalogSearch(params CatalogParams) ([]models.Product, error) {
	sql := `SELECT p.*,
		MATCH(p.title, p.description) AGAINST (? IN NATURAL LANGUAGE MODE) AS relevance
		FROM products p
		WHERE p.status = 'active'`
	args := []interface{}{params.Search}
	if params.ArtisanID != nil {
		sql += " AND p.artisan_id = ?"
		args = append(args, *params.ArtisanID)
	}
	sql += " ORDER BY relevance DESC LIMIT ?"
	args = append(args, catalogLimit)

	var products []models.Product
	if err := r.db.Raw(sql, args...).Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Search(query string, limit int) ([]ProductSearchResult, error) {
	var results []ProductSearchResult
	err := r.db.Raw(`SELECT p.id, p.uuid, p.title, p.slug, p.price_cents, p.currency, p.image_url,
		MATCH(p.title, p.description) AGAINST (? IN NATURAL LANGUAGE MODE) AS relevance
		FROM products p
		WHERE p.status = 'active'
		  AND MATCH(p.title, p.description) AGAINST (? IN NATURAL LANGUAGE MODE)
		ORDER BY relevance DESC
		LIMIT ?`, query, query, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
