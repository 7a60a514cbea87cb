package shopsync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Topic prefixes routed by the synchronizer. Anything else is accepted and
// ignored.
const (
	TopicPrefixProducts = "products/"
	TopicPrefixOrders   = "orders/"
)

// FlexibleID accepts JSON ids that Shopify delivers as either a number or a
// string and normalizes them to a string.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// ValidationError reports that a webhook payload does not match the expected
// shape for its topic family. It is a normal result of processing, not a
// transport failure: the webhook is still ledgered so the platform stops
// redelivering it, but no domain record is written.
type ValidationError struct {
	Topic  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s payload: %s", e.Topic, e.Reason)
}

// productPayload is the vendor-side product webhook shape.
type productPayload struct {
	ID       FlexibleID       `json:"id" validate:"required"`
	Title    string           `json:"title" validate:"required"`
	Handle   string           `json:"handle" validate:"required"`
	BodyHTML string           `json:"body_html"`
	Vendor   *string          `json:"vendor"`
	Status   string           `json:"status"`
	Tags     string           `json:"tags"`
	Images   []imagePayload   `json:"images"`
	Image    *imagePayload    `json:"image"`
	Variants []variantPayload `json:"variants"`
}

type imagePayload struct {
	Src *string `json:"src"`
}

type variantPayload struct {
	ID    FlexibleID `json:"id"`
	Price string     `json:"price"`
	SKU   *string    `json:"sku"`
}

// orderPayload is the vendor-side order webhook shape.
type orderPayload struct {
	ID                FlexibleID        `json:"id" validate:"required"`
	CreatedAt         string            `json:"created_at" validate:"required"`
	FinancialStatus   string            `json:"financial_status" validate:"required"`
	CurrentTotalPrice string            `json:"current_total_price" validate:"required"`
	Currency          string            `json:"currency" validate:"required,len=3"`
	Email             *string           `json:"email"`
	SourceName        *string           `json:"source_name"`
	LineItems         []lineItemPayload `json:"line_items" validate:"required,dive"`
}

type lineItemPayload struct {
	ID        FlexibleID `json:"id" validate:"required"`
	ProductID FlexibleID `json:"product_id"`
	Quantity  int        `json:"quantity" validate:"min=0"`
	Price     string     `json:"price"`
	Title     string     `json:"title"`
}

// ProductRecord is a normalized product ready for upserting.
type ProductRecord struct {
	ShopifyID   string
	Title       string
	Slug        string
	Description string
	Vendor      string
	PriceCents  int64
	Currency    string
	Tags        []string
	Status      string
	ImageURL    *string
}

// OrderRecord is a normalized order ready for upserting.
type OrderRecord struct {
	ShopifyID       string
	CreatedAt       time.Time
	FinancialStatus string
	TotalCents      int64
	Currency        string
	Email           *string
	SourceName      *string
	Items           []OrderLineRecord
}

// OrderLineRecord is one normalized line item. ProductShopifyID is empty when
// the platform did not reference a product.
type OrderLineRecord struct {
	ShopifyLineItemID string
	ProductShopifyID  string
	Quantity          int
	UnitPriceCents    int64
}

// WebhookInput carries one raw inbound webhook into the synchronizer.
type WebhookInput struct {
	WebhookID string
	Topic     string
	Payload   []byte
}

// ProcessOutcome tags the result of processing one webhook.
type ProcessOutcome string

const (
	// OutcomeApplied means the ledger row and the domain mutation were
	// committed together.
	OutcomeApplied ProcessOutcome = "applied"
	// OutcomeDuplicate means the webhook id was already ledgered; nothing
	// was written.
	OutcomeDuplicate ProcessOutcome = "duplicate"
	// OutcomeIgnored means the topic is outside the products/orders
	// families; only the ledger row was written.
	OutcomeIgnored ProcessOutcome = "ignored"
	// OutcomeInvalid means the payload failed shape validation; the ledger
	// row was committed so redelivery terminates, but no domain record was
	// written.
	OutcomeInvalid ProcessOutcome = "invalid"
)

// ProcessResult is the tagged outcome of ProcessWebhook. ValidationErr is set
// only for OutcomeInvalid.
type ProcessResult struct {
	Outcome       ProcessOutcome
	ValidationErr *ValidationError
}
