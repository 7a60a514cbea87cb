package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/atelier-heritage/market/internal/pkg/cache"
	"github.com/atelier-heritage/market/internal/pkg/database"
	"github.com/atelier-heritage/market/internal/pkg/env"
	"github.com/atelier-heritage/market/internal/pkg/router"
)

func main() {
	env.SetupEnvFile()

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	cache.SetupCache()

	app := NewApplication(db)

	// graceful shutdown on SIGINT/SIGTERM
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))
	if err := app.Listen(addr); err != nil {
		log.Printf("server stopped: %v", err)
	}

	if err := database.Close(db); err != nil {
		log.Printf("database close failed: %v", err)
	}
}

// NewApplication builds the Fiber app around an injected DB handle.
func NewApplication(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "HeritageMarket",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// SWAGGER / OPENAPI
	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "public/docs/v1/openapi.yml",
		Path:     "v1",
	}))

	// ROUTER
	router.InstallRouter(app, db)

	return app
}
