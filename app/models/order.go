package models

import "time"

// Order mirrors one Shopify order, upserted keyed on ShopifyID. CreatedAt is
// the order's creation time as reported by the platform (stored in UTC), not
// the time the row was written. CustomerEmailHash is a salted SHA-256
// pseudonym of the buyer email; the clear email is never persisted.
type Order struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	ShopifyID         string      `gorm:"type:varchar(64);uniqueIndex;not null" json:"shopify_id"`
	CreatedAt         time.Time   `gorm:"index;not null" json:"created_at"`
	FinancialStatus   string      `gorm:"type:varchar(50);not null" json:"financial_status"`
	TotalCents        int64       `gorm:"not null" json:"total_cents"`
	Currency          string      `gorm:"type:char(3);not null" json:"currency"`
	CustomerEmailHash *string     `gorm:"type:varchar(128);index" json:"-"`
	SourceName        *string     `gorm:"type:varchar(100)" json:"source_name,omitempty"`
	Items             []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}
