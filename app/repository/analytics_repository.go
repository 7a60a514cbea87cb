package repository

import (
	"time"

	"gorm.io/gorm"
)

// OrderTotals are window-wide order sums.
type OrderTotals struct {
	GMVCents int64 `gorm:"column:gmv_cents" json:"gmv_cents"`
	Orders   int64 `gorm:"column:orders" json:"orders"`
}

// DailyOrderTotals is one calendar-day bucket. Day is the stored UTC
// timestamp's date, formatted YYYY-MM-DD. Days without orders produce no row.
type DailyOrderTotals struct {
	Day      string `gorm:"column:day" json:"date"`
	GMVCents int64  `gorm:"column:gmv_cents" json:"gmv"`
	Orders   int64  `gorm:"column:orders" json:"orders"`
}

// ArtisanTotals are window-wide sums over one artisan's order items.
type ArtisanTotals struct {
	SalesCents int64 `gorm:"column:sales_cents" json:"sales_cents"`
	Units      int64 `gorm:"column:units" json:"units"`
	Orders     int64 `gorm:"column:orders" json:"orders"`
}

// ProductRevenue is one product's revenue rollup inside a window.
type ProductRevenue struct {
	ID           uint   `gorm:"column:id" json:"id"`
	Title        string `gorm:"column:title" json:"title"`
	Slug         string `gorm:"column:slug" json:"slug"`
	Units        int64  `gorm:"column:units" json:"units"`
	RevenueCents int64  `gorm:"column:revenue_cents" json:"revenue"`
}

// ProductUnits is one product's unit-count rollup inside a window.
type ProductUnits struct {
	ID    uint   `gorm:"column:id" json:"id"`
	Title string `gorm:"column:title" json:"title"`
	Units int64  `gorm:"column:units" json:"units"`
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository instance.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) OrderTotals(start time.Time) (OrderTotals, error) {
	var totals OrderTotals
	err := r.db.Raw(`SELECT
			COALESCE(SUM(o.total_cents), 0) AS gmv_cents,
			COUNT(DISTINCT o.id) AS orders
		FROM orders o
		WHERE o.created_at >= ?`, start).Scan(&totals).Error
	return totals, err
}

func (r *analyticsRepository) UnitsSold(start time.Time) (int64, error) {
	var units int64
	err := r.db.Raw(`SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		WHERE oi.created_at >= ?`, start).Scan(&units).Error
	return units, err
}

// RepeatRate returns the fraction of distinct hashed customers in the window
// with more than one order. Orders without a customer hash are excluded from
// the denominator; with no hashed customers at all the rate is 0.
func (r *analyticsRepository) RepeatRate(start time.Time) (float64, error) {
	var rate float64
	err := r.db.Raw(`SELECT COALESCE(AVG(CASE WHEN order_count > 1 THEN 1.0 ELSE 0.0 END), 0)
		FROM (
			SELECT customer_email_hash, COUNT(*) AS order_count
			FROM orders
			WHERE customer_email_hash IS NOT NULL AND created_at >= ?
			GROUP BY customer_email_hash
		) AS customer_stats`, start).Scan(&rate).Error
	return rate, err
}

func (r *analyticsRepository) DailyOrderTotals(start time.Time) ([]DailyOrderTotals, error) {
	var rows []DailyOrderTotals
	err := r.db.Raw(`SELECT
			CAST(DATE(o.created_at) AS CHAR) AS day,
			COALESCE(SUM(o.total_cents), 0) AS gmv_cents,
			COUNT(DISTINCT o.id) AS orders
		FROM orders o
		WHERE o.created_at >= ?
		GROUP BY DATE(o.created_at)
		ORDER BY day ASC`, start).Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) ArtisanTotals(artisanID uint, start time.Time) (ArtisanTotals, error) {
	var totals ArtisanTotals
	err := r.db.Raw(`SELECT
			COALESCE(SUM(oi.unit_price_cents * oi.quantity), 0) AS sales_cents,
			COALESCE(SUM(oi.quantity), 0) AS units,
			COUNT(DISTINCT oi.order_id) AS orders
		FROM order_items oi
		WHERE oi.artisan_id = ? AND oi.created_at >= ?`, artisanID, start).Scan(&totals).Error
	return totals, err
}

func (r *analyticsRepository) ArtisanTopProducts(artisanID uint, start time.Time, limit int) ([]ProductRevenue, error) {
	var rows []ProductRevenue
	err := r.db.Raw(`SELECT p.id, p.title, p.slug,
			COALESCE(SUM(oi.quantity), 0) AS units,
			COALESCE(SUM(oi.unit_price_cents * oi.quantity), 0) AS revenue_cents
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.artisan_id = ? AND oi.created_at >= ?
		GROUP BY p.id, p.title, p.slug
		ORDER BY revenue_cents DESC
		LIMIT ?`, artisanID, start, limit).Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) TopProductsByUnits(start time.Time, limit int) ([]ProductUnits, error) {
	var rows []ProductUnits
	err := r.db.Raw(`SELECT p.id, p.title,
			COALESCE(SUM(oi.quantity), 0) AS units
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.created_at >= ?
		GROUP BY p.id, p.title
		ORDER BY units DESC
		LIMIT ?`, start, limit).Scan(&rows).Error
	return rows, err
}
