package router

import (
	"time"

	"github.com/atelier-heritage/market/app/controllers"
	"github.com/atelier-heritage/market/app/repository"
	"github.com/atelier-heritage/market/internal/pkg/analytics"
	"github.com/atelier-heritage/market/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type ApiRouter struct {
	db *gorm.DB
}

func NewApiRouter(db *gorm.DB) *ApiRouter {
	return &ApiRouter{db: db}
}

func (h *ApiRouter) InstallRouter(app *fiber.App) {
	repos := repository.NewFactory(h.db).GetRepositories()
	analyticsCtl := controllers.NewAnalyticsController(analytics.NewService(repos.Analytics), repos.Artisan)
	catalogCtl := controllers.NewCatalogController(repos.Product, repos.Artisan)

	api := app.Group("/api")
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	dashboardAuth := middleware.DashboardTokenMiddleware()
	v1.Get("/kpis", dashboardAuth, analyticsCtl.HandleKpiSummary)
	v1.Get("/kpis/timeseries", dashboardAuth, analyticsCtl.HandleKpiTimeseries)
	v1.Get("/artisans", catalogCtl.HandleArtisans)
	v1.Get("/artisans/:id/summary", dashboardAuth, analyticsCtl.HandleArtisanSummary)
	v1.Get("/dashboard", dashboardAuth, analyticsCtl.HandleDashboard)
	v1.Get("/catalog", catalogCtl.HandleCatalog)
	v1.Get("/products/featured", catalogCtl.HandleFeatured)
	v1.Get("/products/:slug", catalogCtl.HandleProductBySlug)

	// Search carries its own fixed-window limit, separate from the webhook
	// one. Counters live in process memory and reset on restart.
	v1.Get("/search", limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
	}), catalogCtl.HandleSearch)
}
