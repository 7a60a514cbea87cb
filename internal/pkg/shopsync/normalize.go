package shopsync

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NormalizeProduct validates a products/* payload and maps it into a
// ProductRecord. A non-nil *ValidationError means the payload shape is wrong;
// any transform beyond that is lenient (missing prices become 0, missing
// images stay nil).
func NormalizeProduct(raw []byte) (*ProductRecord, *ValidationError) {
	var payload productPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &ValidationError{Topic: "product", Reason: err.Error()}
	}
	if err := validate.Struct(&payload); err != nil {
		return nil, &ValidationError{Topic: "product", Reason: describeFieldErrors(err)}
	}

	rec := &ProductRecord{
		ShopifyID:   string(payload.ID),
		Title:       payload.Title,
		Slug:        payload.Handle,
		Description: payload.BodyHTML,
		Currency:    "USD",
		Tags:        splitTags(payload.Tags),
		Status:      normalizeStatus(payload.Status),
		ImageURL:    pickImageURL(payload),
	}
	if payload.Vendor != nil {
		rec.Vendor = strings.TrimSpace(*payload.Vendor)
	}
	if len(payload.Variants) > 0 {
		rec.PriceCents = ParsePrice(payload.Variants[0].Price)
	}
	return rec, nil
}

// NormalizeOrder validates an orders/* payload and maps it into an
// OrderRecord. The order's created_at must be RFC 3339; it is normalized to
// UTC so calendar-day bucketing in the analytics layer is stable.
func NormalizeOrder(raw []byte) (*OrderRecord, *ValidationError) {
	var payload orderPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &ValidationError{Topic: "order", Reason: err.Error()}
	}
	if err := validate.Struct(&payload); err != nil {
		return nil, &ValidationError{Topic: "order", Reason: describeFieldErrors(err)}
	}

	createdAt, err := time.Parse(time.RFC3339, payload.CreatedAt)
	if err != nil {
		return nil, &ValidationError{Topic: "order", Reason: "created_at is not a valid timestamp"}
	}

	rec := &OrderRecord{
		ShopifyID:       string(payload.ID),
		CreatedAt:       createdAt.UTC(),
		FinancialStatus: payload.FinancialStatus,
		TotalCents:      ParsePrice(payload.CurrentTotalPrice),
		Currency:        strings.ToUpper(payload.Currency),
		Email:           payload.Email,
		SourceName:      payload.SourceName,
		Items:           make([]OrderLineRecord, 0, len(payload.LineItems)),
	}
	for _, item := range payload.LineItems {
		rec.Items = append(rec.Items, OrderLineRecord{
			ShopifyLineItemID: string(item.ID),
			ProductShopifyID:  string(item.ProductID),
			Quantity:          item.Quantity,
			UnitPriceCents:    ParsePrice(item.Price),
		})
	}
	return rec, nil
}

// splitTags turns the platform's comma-separated tag string into a trimmed,
// empty-filtered set.
func splitTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return []string{}
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeStatus maps the vendor status onto the internal product status.
// A missing status counts as active (platform products default to visible);
// anything not case-insensitively "active" lands in draft.
func normalizeStatus(status string) string {
	s := strings.TrimSpace(status)
	if s == "" {
		s = "active"
	}
	if strings.EqualFold(s, "active") {
		return "active"
	}
	return "draft"
}

// pickImageURL prefers the singular image field, then the first entry of the
// image list with a non-empty source.
func pickImageURL(payload productPayload) *string {
	if payload.Image != nil && payload.Image.Src != nil && *payload.Image.Src != "" {
		return payload.Image.Src
	}
	for _, img := range payload.Images {
		if img.Src != nil && *img.Src != "" {
			return img.Src
		}
	}
	return nil
}

func describeFieldErrors(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Namespace()+" ("+fe.Tag()+")")
	}
	return "failed on " + strings.Join(fields, ", ")
}
