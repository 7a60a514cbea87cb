package router

import (
	"time"

	"github.com/atelier-heritage/market/app/controllers"
	"github.com/atelier-heritage/market/internal/pkg/env"
	"github.com/atelier-heritage/market/internal/pkg/shopsync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type WebhookRouter struct {
	db *gorm.DB
}

func NewWebhookRouter(db *gorm.DB) *WebhookRouter {
	return &WebhookRouter{db: db}
}

func (h *WebhookRouter) InstallRouter(app *fiber.App) {
	svc := shopsync.NewServiceFromDB(h.db, env.GetEnv("CUSTOMER_HASH_SALT", ""))
	webhookCtl := controllers.NewWebhookController(svc)

	app.Post("/api/webhooks/shopify", limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}), webhookCtl.HandleShopifyWebhook)
}
