package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProcessedWebhook is the idempotency ledger for inbound platform webhooks.
// The webhook id delivered by the platform is the primary key; a row is
// written at most once and never updated or deleted, so its existence is the
// duplicate signal and the stored payload is always the first delivery.
type ProcessedWebhook struct {
	WebhookID  string         `gorm:"column:webhook_id;type:varchar(128);primaryKey" json:"webhook_id"`
	Topic      string         `gorm:"type:varchar(100);not null;index" json:"topic"`
	Payload    datatypes.JSON `gorm:"type:json;not null" json:"payload"`
	ReceivedAt time.Time      `gorm:"autoCreateTime" json:"received_at"`
}
