package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/atelier-heritage/market/app/repository"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultSearchLimit = 24
const maxSearchLimit = 100

// CatalogController serves the storefront's catalog and search endpoints.
type CatalogController struct {
	products repository.ProductRepository
	artisans repository.ArtisanRepository
}

// NewCatalogController creates a catalog controller around injected
// repositories.
func NewCatalogController(products repository.ProductRepository, artisans repository.ArtisanRepository) *CatalogController {
	return &CatalogController{products: products, artisans: artisans}
}

// HandleSearch runs full-text search over active products. An empty query
// returns an empty result set without touching the store.
func (cc *CatalogController) HandleSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSearchLimit {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_limit"})
		}
		limit = parsed
	}

	if query == "" {
		return c.JSON(fiber.Map{"query": query, "results": []repository.ProductSearchResult{}})
	}

	results, err := cc.products.Search(query, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search_failed"})
	}
	if results == nil {
		results = []repository.ProductSearchResult{}
	}
	return c.JSON(fiber.Map{"query": query, "results": results})
}

// HandleCatalog lists active products with optional search, artisan filter
// and sort (newest|price-asc|price-desc).
func (cc *CatalogController) HandleCatalog(c *fiber.Ctx) error {
	params := repository.CatalogParams{
		Search: strings.TrimSpace(c.Query("search")),
		Sort:   c.Query("sort", repository.SortNewest),
	}
	switch params.Sort {
	case repository.SortNewest, repository.SortPriceAsc, repository.SortPriceDesc:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_sort"})
	}
	if raw := c.Query("artisan_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_artisan_id"})
		}
		id := uint(parsed)
		params.ArtisanID = &id
	}

	products, err := cc.products.Catalog(params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "catalog_query_failed"})
	}
	return c.JSON(fiber.Map{"products": products})
}

// HandleFeatured returns the newest active products for the landing page.
func (cc *CatalogController) HandleFeatured(c *fiber.Ctx) error {
	products, err := cc.products.Featured(4)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "catalog_query_failed"})
	}
	return c.JSON(fiber.Map{"products": products})
}

// HandleProductBySlug returns one active product or 404.
func (cc *CatalogController) HandleProductBySlug(c *fiber.Ctx) error {
	product, err := cc.products.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "product_query_failed"})
	}
	return c.JSON(product)
}

// HandleArtisans returns the artisan directory, newest first.
func (cc *CatalogController) HandleArtisans(c *fiber.Ctx) error {
	artisans, err := cc.artisans.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "artisan_query_failed"})
	}
	return c.JSON(fiber.Map{"artisans": artisans})
}
