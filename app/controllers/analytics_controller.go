package controllers

import (
	"errors"
	"strconv"

	"github.com/atelier-heritage/market/app/repository"
	"github.com/atelier-heritage/market/internal/pkg/analytics"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AnalyticsController serves the dashboard's aggregate read endpoints. All
// handlers are pure reads; invalid parameters answer 400 and never partially
// computed results.
type AnalyticsController struct {
	svc      *analytics.Service
	artisans repository.ArtisanRepository
}

// NewAnalyticsController creates an analytics controller around an injected
// service and the artisan directory used for existence checks.
func NewAnalyticsController(svc *analytics.Service, artisans repository.ArtisanRepository) *AnalyticsController {
	return &AnalyticsController{svc: svc, artisans: artisans}
}

// HandleKpiSummary returns gmv/orders/units/aov/repeatRate for ?range=
// (1d|7d|30d|90d, default 30d).
func (ac *AnalyticsController) HandleKpiSummary(c *fiber.Ctx) error {
	r, err := analytics.ParseRange(c.Query("range"), analytics.Range30D, analytics.SummaryRanges)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_range"})
	}

	summary, err := ac.svc.KpiSummary(r)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "kpi_query_failed"})
	}
	return c.JSON(summary)
}

// HandleKpiTimeseries returns per-day gmv/orders for ?range= (30d|90d,
// default 90d). Only day granularity is supported.
func (ac *AnalyticsController) HandleKpiTimeseries(c *fiber.Ctx) error {
	r, err := analytics.ParseRange(c.Query("range"), analytics.Range90D, analytics.TimeseriesRanges)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_range"})
	}
	granularity := c.Query("granularity", "day")
	if granularity != "day" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_granularity"})
	}

	data, err := ac.svc.Timeseries(r)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "timeseries_query_failed"})
	}
	if data == nil {
		data = []repository.DailyOrderTotals{}
	}
	return c.JSON(fiber.Map{
		"granularity": granularity,
		"range":       r,
		"data":        data,
	})
}

// HandleArtisanSummary returns one artisan's windowed sales rollup for
// ?range= (1d|7d|30d|90d, default 30d).
func (ac *AnalyticsController) HandleArtisanSummary(c *fiber.Ctx) error {
	artisanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_artisan_id"})
	}
	r, err := analytics.ParseRange(c.Query("range"), analytics.Range30D, analytics.SummaryRanges)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_range"})
	}

	if _, err := ac.artisans.GetByID(uint(artisanID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artisan_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "artisan_query_failed"})
	}

	summary, err := ac.svc.ArtisanSummaryFor(uint(artisanID), r)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "artisan_query_failed"})
	}
	return c.JSON(summary)
}

// HandleDashboard returns the 30-day overview block.
func (ac *AnalyticsController) HandleDashboard(c *fiber.Ctx) error {
	overview, err := ac.svc.DashboardOverview()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "dashboard_query_failed"})
	}
	return c.JSON(overview)
}
