package analytics

import (
	"testing"
	"time"

	"github.com/atelier-heritage/market/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalyticsRepo returns canned aggregates and records the window starts
// it was asked for.
type stubAnalyticsRepo struct {
	totals     repository.OrderTotals
	units      int64
	repeatRate float64
	daily      []repository.DailyOrderTotals
	artisan    repository.ArtisanTotals
	top        []repository.ProductRevenue
	topUnits   []repository.ProductUnits

	starts []time.Time
}

func (s *stubAnalyticsRepo) OrderTotals(start time.Time) (repository.OrderTotals, error) {
	s.starts = append(s.starts, start)
	return s.totals, nil
}

func (s *stubAnalyticsRepo) UnitsSold(start time.Time) (int64, error) {
	return s.units, nil
}

func (s *stubAnalyticsRepo) RepeatRate(start time.Time) (float64, error) {
	return s.repeatRate, nil
}

func (s *stubAnalyticsRepo) DailyOrderTotals(start time.Time) ([]repository.DailyOrderTotals, error) {
	return s.daily, nil
}

func (s *stubAnalyticsRepo) ArtisanTotals(artisanID uint, start time.Time) (repository.ArtisanTotals, error) {
	return s.artisan, nil
}

func (s *stubAnalyticsRepo) ArtisanTopProducts(artisanID uint, start time.Time, limit int) ([]repository.ProductRevenue, error) {
	return s.top, nil
}

func (s *stubAnalyticsRepo) TopProductsByUnits(start time.Time, limit int) ([]repository.ProductUnits, error) {
	return s.topUnits, nil
}

func newTestService(repo repository.AnalyticsRepository) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestKpiSummary(t *testing.T) {
	repo := &stubAnalyticsRepo{
		totals:     repository.OrderTotals{GMVCents: 123000, Orders: 4},
		units:      9,
		repeatRate: 0.25,
	}
	svc := newTestService(repo)

	summary, err := svc.KpiSummary(Range30D)
	require.NoError(t, err)
	assert.Equal(t, int64(123000), summary.GMVCents)
	assert.Equal(t, int64(4), summary.Orders)
	assert.Equal(t, int64(9), summary.Units)
	assert.InDelta(t, 30750.0, summary.AOVCents, 1e-9)
	assert.InDelta(t, 0.25, summary.RepeatRate, 1e-9)

	require.Len(t, repo.starts, 1)
	assert.Equal(t, time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC), repo.starts[0])
}

func TestKpiSummary_EmptyWindow(t *testing.T) {
	svc := newTestService(&stubAnalyticsRepo{})

	summary, err := svc.KpiSummary(Range1D)
	require.NoError(t, err)
	assert.Zero(t, summary.GMVCents)
	assert.Zero(t, summary.Orders)
	assert.Zero(t, summary.AOVCents) // no division by zero
	assert.Zero(t, summary.RepeatRate)
}

func TestArtisanSummaryFor(t *testing.T) {
	repo := &stubAnalyticsRepo{
		artisan: repository.ArtisanTotals{SalesCents: 10000, Units: 3, Orders: 2},
		top: []repository.ProductRevenue{
			{ID: 1, Title: "Vase", Slug: "vase", Units: 2, RevenueCents: 8000},
		},
	}
	svc := newTestService(repo)

	summary, err := svc.ArtisanSummaryFor(1, Range30D)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), summary.SalesCents)
	assert.Equal(t, int64(7000), summary.PayoutsDue)
	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, "Vase", summary.TopProducts[0].Title)
}

func TestArtisanSummaryFor_NoProducts(t *testing.T) {
	svc := newTestService(&stubAnalyticsRepo{})

	summary, err := svc.ArtisanSummaryFor(42, Range7D)
	require.NoError(t, err)
	assert.NotNil(t, summary.TopProducts)
	assert.Empty(t, summary.TopProducts)
	assert.Zero(t, summary.PayoutsDue)
}

func TestDashboardOverview(t *testing.T) {
	repo := &stubAnalyticsRepo{
		totals: repository.OrderTotals{GMVCents: 5000, Orders: 1},
		daily: []repository.DailyOrderTotals{
			{Day: "2026-03-01", GMVCents: 5000, Orders: 1},
		},
		topUnits: []repository.ProductUnits{{ID: 1, Title: "Vase", Units: 1}},
	}
	svc := newTestService(repo)

	overview, err := svc.DashboardOverview()
	require.NoError(t, err)
	require.NotNil(t, overview.Summary)
	assert.Equal(t, int64(5000), overview.Summary.GMVCents)
	require.Len(t, overview.Timeseries, 1)
	require.Len(t, overview.TopProducts, 1)
}

func TestPayoutsDue(t *testing.T) {
	cases := []struct {
		sales int64
		want  int64
	}{
		{10000, 7000},
		{0, 0},
		{1, 1},   // 0.7 rounds up
		{99, 69}, // 69.3 rounds down
		{45000, 31500},
	}
	for _, tc := range cases {
		if got := PayoutsDue(tc.sales); got != tc.want {
			t.Fatalf("PayoutsDue(%d) = %d, want %d", tc.sales, got, tc.want)
		}
	}
}
