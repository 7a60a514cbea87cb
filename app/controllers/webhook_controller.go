package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/atelier-heritage/market/internal/pkg/env"
	"github.com/atelier-heritage/market/internal/pkg/shopsync"
	"github.com/gofiber/fiber/v2"
)

// WebhookController receives platform webhooks and feeds them through the
// synchronizer.
type WebhookController struct {
	svc *shopsync.Service
}

// NewWebhookController creates a webhook controller around an injected
// synchronizer.
func NewWebhookController(svc *shopsync.Service) *WebhookController {
	return &WebhookController{svc: svc}
}

// HandleShopifyWebhook ingests one signed webhook. The response code is the
// only signal the platform acts on: 2xx stops redelivery, anything else
// triggers a retry. Duplicates therefore answer 200 with a duplicate marker.
func (wc *WebhookController) HandleShopifyWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("X-Shopify-Hmac-Sha256"))
	topic := c.Get("X-Shopify-Topic", "unknown")
	webhookID := strings.TrimSpace(c.Get("X-Shopify-Webhook-Id"))

	secret := env.GetEnv("SHOPIFY_WEBHOOK_SHARED_SECRET", "")
	if secret == "" {
		// Fail closed: a missing secret is a server misconfiguration, never
		// an open door.
		log.Println("SHOPIFY_WEBHOOK_SHARED_SECRET missing, rejecting webhook")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_secret_not_configured"})
	}

	if !shopsync.VerifySignature(rawBody, signature, secret) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	if webhookID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing_webhook_id"})
	}
	if !json.Valid(rawBody) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed_body"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := wc.svc.ProcessWebhook(ctx, shopsync.WebhookInput{
		WebhookID: webhookID,
		Topic:     topic,
		Payload:   rawBody,
	})
	if err != nil {
		if errors.Is(err, shopsync.ErrMissingWebhookID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing_webhook_id"})
		}
		log.Printf("webhook %s (%s): persistence failed: %v", webhookID, topic, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}

	switch result.Outcome {
	case shopsync.OutcomeDuplicate:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	case shopsync.OutcomeIgnored:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	case shopsync.OutcomeInvalid:
		log.Printf("webhook %s (%s): %v", webhookID, topic, result.ValidationErr)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	default:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	}
}
