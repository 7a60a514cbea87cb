package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atelier-heritage/market/app/models"
	"github.com/atelier-heritage/market/internal/pkg/shopsync"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testWebhookSecret = "test-webhook-secret"

func setupControllerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Artisan{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ProcessedWebhook{},
	); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func newWebhookTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("SHOPIFY_WEBHOOK_SHARED_SECRET", testWebhookSecret)

	db := setupControllerTestDB(t)
	wc := NewWebhookController(shopsync.NewServiceFromDB(db, "test-salt"))

	app := fiber.New()
	app.Post("/api/webhooks/shopify", wc.HandleShopifyWebhook)
	return app, db
}

func postWebhook(t *testing.T, app *fiber.App, body, signature, topic, webhookID string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/shopify", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Shopify-Hmac-Sha256", signature)
	}
	if topic != "" {
		req.Header.Set("X-Shopify-Topic", topic)
	}
	if webhookID != "" {
		req.Header.Set("X-Shopify-Webhook-Id", webhookID)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("performing request: %v", err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decoding response %q: %v", raw, err)
		}
	}
	return resp, decoded
}

func sign(body string) string {
	return shopsync.ComputeSignature([]byte(body), testWebhookSecret)
}

func TestHandleShopifyWebhook_AppliesProduct(t *testing.T) {
	app, db := newWebhookTestApp(t)

	body := `{"id":"p-1","title":"Gilded Ring","handle":"gilded-ring","variants":[{"id":"v1","price":"450.00"}]}`
	resp, decoded := postWebhook(t, app, body, sign(body), "products/create", "wh-1")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decoded["ok"])

	var product models.Product
	require.NoError(t, db.Where("shopify_id = ?", "p-1").First(&product).Error)
	assert.Equal(t, int64(45000), product.PriceCents)
}

func TestHandleShopifyWebhook_DuplicateDelivery(t *testing.T) {
	app, db := newWebhookTestApp(t)

	body := `{"id":"p-1","title":"Original","handle":"piece"}`
	replay := `{"id":"p-1","title":"Replayed","handle":"piece"}`

	resp, _ := postWebhook(t, app, body, sign(body), "products/create", "wh-dup")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, decoded := postWebhook(t, app, replay, sign(replay), "products/create", "wh-dup")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decoded["duplicate"])

	var product models.Product
	require.NoError(t, db.Where("shopify_id = ?", "p-1").First(&product).Error)
	assert.Equal(t, "Original", product.Title)
}

func TestHandleShopifyWebhook_InvalidSignature(t *testing.T) {
	app, db := newWebhookTestApp(t)

	body := `{"id":"p-1","title":"Piece","handle":"piece"}`
	resp, decoded := postWebhook(t, app, body, shopsync.ComputeSignature([]byte(body), "wrong-secret"), "products/create", "wh-1")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_signature", decoded["error"])

	var ledgerCount int64
	require.NoError(t, db.Model(&models.ProcessedWebhook{}).Count(&ledgerCount).Error)
	assert.Zero(t, ledgerCount, "rejected webhooks must not be ledgered")
}

func TestHandleShopifyWebhook_MissingSignature(t *testing.T) {
	app, _ := newWebhookTestApp(t)

	body := `{"id":"p-1"}`
	resp, _ := postWebhook(t, app, body, "", "products/create", "wh-1")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleShopifyWebhook_MissingWebhookID(t *testing.T) {
	app, _ := newWebhookTestApp(t)

	body := `{"id":"p-1","title":"Piece","handle":"piece"}`
	resp, decoded := postWebhook(t, app, body, sign(body), "products/create", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "missing_webhook_id", decoded["error"])
}

func TestHandleShopifyWebhook_MalformedBody(t *testing.T) {
	app, _ := newWebhookTestApp(t)

	body := `{"id":`
	resp, decoded := postWebhook(t, app, body, sign(body), "products/create", "wh-1")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "malformed_body", decoded["error"])
}

func TestHandleShopifyWebhook_InvalidPayloadStillLedgered(t *testing.T) {
	app, db := newWebhookTestApp(t)

	body := `{"id":"p-1"}`
	resp, decoded := postWebhook(t, app, body, sign(body), "products/create", "wh-bad")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_payload", decoded["error"])

	var ledger models.ProcessedWebhook
	require.NoError(t, db.First(&ledger, "webhook_id = ?", "wh-bad").Error)
}

func TestHandleShopifyWebhook_UnknownTopicIgnored(t *testing.T) {
	app, _ := newWebhookTestApp(t)

	body := `{"id":1}`
	resp, decoded := postWebhook(t, app, body, sign(body), "customers/create", "wh-x")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decoded["ignored"])
}

func TestHandleShopifyWebhook_SecretNotConfigured(t *testing.T) {
	t.Setenv("SHOPIFY_WEBHOOK_SHARED_SECRET", "")

	db := setupControllerTestDB(t)
	wc := NewWebhookController(shopsync.NewServiceFromDB(db, ""))
	app := fiber.New()
	app.Post("/api/webhooks/shopify", wc.HandleShopifyWebhook)

	body := `{"id":"p-1"}`
	resp, decoded := postWebhook(t, app, body, sign(body), "products/create", "wh-1")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "webhook_secret_not_configured", decoded["error"])
}

func TestHandleShopifyWebhook_OrderEndToEnd(t *testing.T) {
	app, db := newWebhookTestApp(t)

	require.NoError(t, db.Create(&models.Artisan{Name: "Maison Verre"}).Error)
	var artisan models.Artisan
	require.NoError(t, db.Where("name = ?", "Maison Verre").First(&artisan).Error)
	product := models.Product{ShopifyID: "prod-1", ArtisanID: &artisan.ID, Title: "Vase", Slug: "vase", PriceCents: 34000, Currency: "USD", Status: models.ProductStatusActive}
	require.NoError(t, db.Create(&product).Error)

	body := `{"id":"ord-1","created_at":"2026-03-01T10:00:00Z","financial_status":"paid","current_total_price":"790.00","currency":"USD","email":"collector@example.com","line_items":[{"id":"l1","product_id":"prod-1","quantity":2,"price":"340.00"},{"id":"l2","product_id":"ghost","quantity":1,"price":"110.00"}]}`
	resp, _ := postWebhook(t, app, body, sign(body), "orders/create", "wh-ord")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var order models.Order
	require.NoError(t, db.Where("shopify_id = ?", "ord-1").First(&order).Error)
	assert.Equal(t, int64(79000), order.TotalCents)
	require.NotNil(t, order.CustomerEmailHash)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("shopify_line_item_id").Find(&items).Error)
	require.Len(t, items, 2)
	assert.NotNil(t, items[0].ProductID)
	assert.Nil(t, items[1].ProductID)
}
