package router

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter wires all HTTP surfaces against the injected DB handle. The
// webhook router goes first so ingestion works even if later routers grow
// middleware of their own.
func InstallRouter(app *fiber.App, db *gorm.DB) {
	setup(app, NewWebhookRouter(db), NewApiRouter(db))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
