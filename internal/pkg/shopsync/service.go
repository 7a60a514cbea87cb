package shopsync

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/atelier-heritage/market/app/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrMissingWebhookID is returned when a webhook arrives without an id; such
// requests are rejected before any persistence.
var ErrMissingWebhookID = errors.New("webhook id is required")

// Service synchronizes inbound platform webhooks into the local store.
type Service struct {
	repo      Repository
	emailSalt string
}

// NewService creates a synchronizer from an injected repository. emailSalt
// may be empty; hashing then falls back to the built-in default salt.
func NewService(repo Repository, emailSalt string) *Service {
	return &Service{repo: repo, emailSalt: emailSalt}
}

// NewServiceFromDB creates a synchronizer from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, emailSalt string) *Service {
	return NewService(NewRepository(db), emailSalt)
}

// ProcessWebhook runs one webhook through the idempotency gate, the
// normalizer and the upsert routines inside a single transaction. The ledger
// row and the domain mutation commit together; on a validation failure only
// the ledger row is kept so the platform stops redelivering the broken
// payload. A persistence error rolls back everything, leaving the id
// unledgered for the sender's retry.
func (s *Service) ProcessWebhook(ctx context.Context, in WebhookInput) (*ProcessResult, error) {
	_ = ctx
	if strings.TrimSpace(in.WebhookID) == "" {
		return nil, ErrMissingWebhookID
	}

	result := &ProcessResult{}
	err := s.repo.Transaction(func(r Repository) error {
		created, err := r.CreateProcessedWebhookIfNotExists(&models.ProcessedWebhook{
			WebhookID: in.WebhookID,
			Topic:     in.Topic,
			Payload:   datatypes.JSON(in.Payload),
		})
		if err != nil {
			return err
		}
		if !created {
			result.Outcome = OutcomeDuplicate
			return nil
		}

		switch {
		case strings.HasPrefix(in.Topic, TopicPrefixProducts):
			rec, verr := NormalizeProduct(in.Payload)
			if verr != nil {
				result.Outcome = OutcomeInvalid
				result.ValidationErr = verr
				return nil
			}
			if err := s.applyProduct(r, rec); err != nil {
				return err
			}
		case strings.HasPrefix(in.Topic, TopicPrefixOrders):
			rec, verr := NormalizeOrder(in.Payload)
			if verr != nil {
				result.Outcome = OutcomeInvalid
				result.ValidationErr = verr
				return nil
			}
			if err := s.applyOrder(r, rec); err != nil {
				return err
			}
		default:
			result.Outcome = OutcomeIgnored
			return nil
		}

		result.Outcome = OutcomeApplied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyProduct resolves the vendor name to an artisan by exact match (no
// fuzzy matching; unmatched vendors stay unlinked) and upserts the product
// keyed on its external id.
func (s *Service) applyProduct(r Repository, rec *ProductRecord) error {
	var artisanID *uint
	if rec.Vendor != "" {
		artisan, err := r.FindArtisanByName(rec.Vendor)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if artisan != nil {
			artisanID = &artisan.ID
		}
	}

	tagsJSON, err := json.Marshal(rec.Tags)
	if err != nil {
		return err
	}

	return r.UpsertProduct(&models.Product{
		ShopifyID:   rec.ShopifyID,
		ArtisanID:   artisanID,
		Title:       rec.Title,
		Slug:        rec.Slug,
		Description: rec.Description,
		PriceCents:  rec.PriceCents,
		Currency:    rec.Currency,
		Tags:        datatypes.JSON(tagsJSON),
		Status:      rec.Status,
		ImageURL:    rec.ImageURL,
	})
}

// applyOrder upserts the order keyed on its external id, then rebuilds its
// line items from scratch. Each line resolves its product (and that
// product's artisan, snapshotted onto the item) by external product id;
// unknown products leave both references null.
func (s *Service) applyOrder(r Repository, rec *OrderRecord) error {
	var emailHash *string
	if rec.Email != nil {
		if h := HashCustomerEmail(*rec.Email, s.emailSalt); h != "" {
			emailHash = &h
		}
	}

	order := &models.Order{
		ShopifyID:         rec.ShopifyID,
		CreatedAt:         rec.CreatedAt,
		FinancialStatus:   rec.FinancialStatus,
		TotalCents:        rec.TotalCents,
		Currency:          rec.Currency,
		CustomerEmailHash: emailHash,
		SourceName:        rec.SourceName,
	}
	if err := r.UpsertOrder(order); err != nil {
		return err
	}

	items := make([]models.OrderItem, 0, len(rec.Items))
	for _, line := range rec.Items {
		item := models.OrderItem{
			OrderID:           order.ID,
			ShopifyLineItemID: line.ShopifyLineItemID,
			Quantity:          line.Quantity,
			UnitPriceCents:    line.UnitPriceCents,
			CreatedAt:         rec.CreatedAt,
		}
		if line.ProductShopifyID != "" {
			product, err := r.FindProductByShopifyID(line.ProductShopifyID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if product != nil {
				productID := product.ID
				item.ProductID = &productID
				item.ArtisanID = product.ArtisanID
			}
		}
		items = append(items, item)
	}

	return r.ReplaceOrderItems(order.ID, items)
}
