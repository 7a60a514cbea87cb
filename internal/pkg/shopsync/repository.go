package shopsync

import (
	"github.com/atelier-heritage/market/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides the DB operations used by the synchronizer. Transaction
// yields a Repository bound to the transaction so every multi-step mutation
// (ledger insert, order upsert, item replacement) commits or rolls back as
// one unit.
type Repository interface {
	Transaction(fn func(Repository) error) error
	CreateProcessedWebhookIfNotExists(event *models.ProcessedWebhook) (bool, error)
	FindArtisanByName(name string) (*models.Artisan, error)
	FindProductByShopifyID(shopifyID string) (*models.Product, error)
	UpsertProduct(product *models.Product) error
	UpsertOrder(order *models.Order) error
	ReplaceOrderItems(orderID uint, items []models.OrderItem) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a sync repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

// CreateProcessedWebhookIfNotExists writes the idempotency ledger row. The
// insert is conflict-tolerant on the webhook-id primary key; a zero
// rows-affected result is the authoritative duplicate signal, so concurrent
// deliveries of the same id cannot both pass the gate.
func (r *gormRepository) CreateProcessedWebhookIfNotExists(event *models.ProcessedWebhook) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "webhook_id"}},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) FindArtisanByName(name string) (*models.Artisan, error) {
	var artisan models.Artisan
	if err := r.db.Where("name = ?", name).First(&artisan).Error; err != nil {
		return nil, err
	}
	return &artisan, nil
}

func (r *gormRepository) FindProductByShopifyID(shopifyID string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("shopify_id = ?", shopifyID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormRepository) UpsertProduct(product *models.Product) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shopify_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"artisan_id",
			"title",
			"slug",
			"description",
			"price_cents",
			"currency",
			"tags",
			"status",
			"image_url",
			"updated_at",
		}),
	}).Create(product).Error; err != nil {
		return err
	}

	return r.db.Where("shopify_id = ?", product.ShopifyID).First(product).Error
}

func (r *gormRepository) UpsertOrder(order *models.Order) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shopify_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"created_at",
			"financial_status",
			"total_cents",
			"currency",
			"customer_email_hash",
			"source_name",
		}),
	}).Create(order).Error; err != nil {
		return err
	}

	return r.db.Where("shopify_id = ?", order.ShopifyID).First(order).Error
}

// ReplaceOrderItems drops every existing item for the order and inserts the
// current payload's items. Callers run this inside Transaction so readers
// never observe the deleted-but-not-reinserted intermediate state.
func (r *gormRepository) ReplaceOrderItems(orderID uint, items []models.OrderItem) error {
	if err := r.db.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}
