package models

import "time"

// OrderItem is one line of an order. Items are never patched in place: every
// order upsert deletes all existing items for the order and reinserts them
// from the payload.
//
// ArtisanID is a snapshot of the referenced product's artisan at insert time,
// kept so artisan payout rollups survive later catalog edits. It is not a
// live foreign key and can drift from products.artisan_id.
type OrderItem struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	OrderID           uint      `gorm:"index;not null" json:"order_id"`
	ProductID         *uint     `gorm:"index" json:"product_id,omitempty"`
	Product           *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ShopifyLineItemID string    `gorm:"type:varchar(64);not null" json:"shopify_line_item_id"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	UnitPriceCents    int64     `gorm:"not null" json:"unit_price_cents"`
	ArtisanID         *uint     `gorm:"index" json:"artisan_id,omitempty"`
	CreatedAt         time.Time `gorm:"index;not null" json:"created_at"`
}
