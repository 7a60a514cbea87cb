package models

import "time"

// Artisan is a maker whose pieces are sold through the storefront. Rows are
// created by the seed/admin flow; the sync pipeline only ever reads them to
// resolve vendor names.
type Artisan struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"name"`
	ContactEmail *string   `gorm:"type:varchar(255)" json:"contact_email,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
