package repository

import (
	"testing"
	"time"

	"github.com/atelier-heritage/market/app/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Artisan{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ProcessedWebhook{},
	); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedArtisan(t *testing.T, db *gorm.DB, name string) *models.Artisan {
	t.Helper()
	artisan := &models.Artisan{Name: name}
	if err := db.Create(artisan).Error; err != nil {
		t.Fatalf("seeding artisan %q: %v", name, err)
	}
	return artisan
}

func seedProduct(t *testing.T, db *gorm.DB, p models.Product) *models.Product {
	t.Helper()
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.Status == "" {
		p.Status = models.ProductStatusActive
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seeding product %q: %v", p.Title, err)
	}
	return &p
}

func seedOrder(t *testing.T, db *gorm.DB, o models.Order, items ...models.OrderItem) *models.Order {
	t.Helper()
	if o.Currency == "" {
		o.Currency = "USD"
	}
	if o.FinancialStatus == "" {
		o.FinancialStatus = "paid"
	}
	if err := db.Create(&o).Error; err != nil {
		t.Fatalf("seeding order %q: %v", o.ShopifyID, err)
	}
	for i := range items {
		items[i].OrderID = o.ID
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = o.CreatedAt
		}
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			t.Fatalf("seeding items for order %q: %v", o.ShopifyID, err)
		}
	}
	return &o
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parsing %q: %v", value, err)
	}
	return ts.UTC()
}
