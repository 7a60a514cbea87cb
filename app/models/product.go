package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product status values. Only "active" products are visible in the catalog
// and the search index.
const (
	ProductStatusDraft    = "draft"
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product mirrors one Shopify product. ShopifyID is the natural key for the
// sync pipeline; there is exactly one row per external product and the upsert
// keyed on it is the only mutation path.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UUID        string         `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	ShopifyID   string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"shopify_id"`
	ArtisanID   *uint          `gorm:"index" json:"artisan_id,omitempty"`
	Artisan     *Artisan       `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string         `gorm:"type:varchar(255);index;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	PriceCents  int64          `gorm:"not null;default:0" json:"price_cents"`
	Currency    string         `gorm:"type:char(3);not null;default:'USD'" json:"currency"`
	Tags        datatypes.JSON `gorm:"type:json" json:"tags"`
	Status      string         `gorm:"type:varchar(10);not null;default:'draft';index" json:"status"`
	ImageURL    *string        `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}
