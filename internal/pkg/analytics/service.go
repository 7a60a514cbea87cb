package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/atelier-heritage/market/app/repository"
	"github.com/atelier-heritage/market/internal/pkg/cache"
	"github.com/shopspring/decimal"
)

const (
	cacheKeySummary = "analytics:kpis:%s" // format with range
	cacheExpiration = 5 * time.Minute
)

// payoutShare is the artisan's fixed share of item revenue; the retained 30%
// is a business constant.
var payoutShare = decimal.RequireFromString("0.70")

// Summary is the storefront-wide KPI block for one window. Money fields are
// integer cents except AOV, which is a derived average.
type Summary struct {
	GMVCents   int64   `json:"gmv"`
	Orders     int64   `json:"orders"`
	Units      int64   `json:"units"`
	AOVCents   float64 `json:"aov"`
	RepeatRate float64 `json:"repeatRate"`
}

// ArtisanSummary is the per-artisan rollup for one window.
type ArtisanSummary struct {
	SalesCents  int64                       `json:"sales"`
	Units       int64                       `json:"units"`
	Orders      int64                       `json:"orders"`
	PayoutsDue  int64                       `json:"payoutsDue"`
	TopProducts []repository.ProductRevenue `json:"topProducts"`
}

// Overview is the 30-day dashboard block.
type Overview struct {
	Summary     *Summary                    `json:"summary"`
	Timeseries  []repository.DailyOrderTotals `json:"timeseries"`
	TopProducts []repository.ProductUnits   `json:"topProducts"`
}

// Service computes windowed aggregates from persisted orders and order
// items. All computations are pure reads; the only side effect is the
// best-effort KPI summary cache.
type Service struct {
	repo repository.AnalyticsRepository
	now  func() time.Time
}

// NewService creates an analytics service from an injected repository.
func NewService(repo repository.AnalyticsRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// KpiSummary returns GMV, order count, unit count, average order value and
// repeat-customer rate for the window. Results are cached briefly; cache
// failures fall through to the store.
func (s *Service) KpiSummary(r Range) (*Summary, error) {
	cacheKey := fmt.Sprintf(cacheKeySummary, r)
	if cached, err := cache.Get(cacheKey); err == nil {
		var summary Summary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
	}

	start := r.Start(s.now())
	totals, err := s.repo.OrderTotals(start)
	if err != nil {
		return nil, err
	}
	units, err := s.repo.UnitsSold(start)
	if err != nil {
		return nil, err
	}
	repeatRate, err := s.repo.RepeatRate(start)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		GMVCents:   totals.GMVCents,
		Orders:     totals.Orders,
		Units:      units,
		RepeatRate: repeatRate,
	}
	if totals.Orders > 0 {
		summary.AOVCents = float64(totals.GMVCents) / float64(totals.Orders)
	}

	if encoded, err := json.Marshal(summary); err == nil {
		if err := cache.Set(cacheKey, string(encoded), cacheExpiration); err != nil && !errors.Is(err, cache.ErrNotConfigured) {
			log.Printf("analytics: could not cache KPI summary: %v", err)
		}
	}
	return summary, nil
}

// Timeseries returns per-day GMV and order counts, chronologically ascending.
// Days without orders are omitted; gap-filling is a presentation concern.
func (s *Service) Timeseries(r Range) ([]repository.DailyOrderTotals, error) {
	return s.repo.DailyOrderTotals(r.Start(s.now()))
}

// ArtisanSummaryFor computes one artisan's sales, units, distinct orders,
// payout due and top five products by revenue inside the window.
func (s *Service) ArtisanSummaryFor(artisanID uint, r Range) (*ArtisanSummary, error) {
	start := r.Start(s.now())
	totals, err := s.repo.ArtisanTotals(artisanID, start)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.repo.ArtisanTopProducts(artisanID, start, 5)
	if err != nil {
		return nil, err
	}
	if topProducts == nil {
		topProducts = []repository.ProductRevenue{}
	}

	return &ArtisanSummary{
		SalesCents:  totals.SalesCents,
		Units:       totals.Units,
		Orders:      totals.Orders,
		PayoutsDue:  PayoutsDue(totals.SalesCents),
		TopProducts: topProducts,
	}, nil
}

// DashboardOverview bundles the 30-day summary, timeseries and top products
// for the internal dashboard.
func (s *Service) DashboardOverview() (*Overview, error) {
	summary, err := s.KpiSummary(Range30D)
	if err != nil {
		return nil, err
	}
	timeseries, err := s.Timeseries(Range30D)
	if err != nil {
		return nil, err
	}
	if timeseries == nil {
		timeseries = []repository.DailyOrderTotals{}
	}
	topProducts, err := s.repo.TopProductsByUnits(Range30D.Start(s.now()), 5)
	if err != nil {
		return nil, err
	}
	if topProducts == nil {
		topProducts = []repository.ProductUnits{}
	}

	return &Overview{
		Summary:     summary,
		Timeseries:  timeseries,
		TopProducts: topProducts,
	}, nil
}

// PayoutsDue is the artisan's 70% share of sales, rounded to the nearest
// cent.
func PayoutsDue(salesCents int64) int64 {
	return decimal.NewFromInt(salesCents).Mul(payoutShare).Round(0).IntPart()
}
