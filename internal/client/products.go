package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/vivass/storefront/pkg/httpclient"

	"github.com/vivass/storefront/internal/domain"
)

// productWire mirrors the product representation on the product service wire.
// Prices travel as decimal rubles and are converted to kopecks at this boundary.
type productWire struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	OldPrice    decimal.NullDecimal `json:"old_price"`
	ImageURL    string              `json:"image_url"`
	Badge       string              `json:"badge"`
	Sizes       []string            `json:"sizes"`
	Category    string              `json:"category"`
}

func (w productWire) toDomain() domain.Product {
	var oldPrice int64
	if w.OldPrice.Valid {
		oldPrice = domain.Kopecks(w.OldPrice.Decimal)
	}
	return domain.Product{
		ID:          w.ID,
		Name:        w.Name,
		Slug:        w.Slug,
		Description: w.Description,
		Price:       domain.Kopecks(w.Price),
		OldPrice:    oldPrice,
		ImageRef:    w.ImageURL,
		Badge:       w.Badge,
		Sizes:       w.Sizes,
		Category:    w.Category,
	}
}

// CreateProductInput holds the fields for creating a product via the
// product service.
type CreateProductInput struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Description string   `json:"description"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	OldPrice    int64    `json:"old_price" validate:"omitempty,gt=0"`
	ImageRef    string   `json:"image_ref" validate:"omitempty,url"`
	Badge       string   `json:"badge" validate:"omitempty,oneof=ХИТ NEW SALE"`
	Sizes       []string `json:"sizes"`
	Category    string   `json:"category" validate:"required"`
}

// ProductsClient calls the remote product service.
type ProductsClient struct {
	httpClient HTTPDoer
	baseURL    string
	logger     *slog.Logger
}

// NewProductsClient creates a client for the product service.
func NewProductsClient(httpClient HTTPDoer, baseURL string, logger *slog.Logger) *ProductsClient {
	return &ProductsClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// List fetches products matching the filter. Unconstrained axes (empty or
// the "Все" sentinel) are omitted from the query string entirely.
func (c *ProductsClient) List(ctx context.Context, filter domain.Filter) ([]domain.Product, error) {
	q := url.Values{}
	if filter.ConstrainsCategory() {
		q.Set("category", filter.Category)
	}
	if filter.ConstrainsSize() {
		q.Set("size", filter.Size)
	}

	reqURL := c.baseURL + "/products"
	if encoded := q.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create products request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("call product service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "product-service")
	}

	var wire struct {
		Products []productWire `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	products := make([]domain.Product, len(wire.Products))
	for i, p := range wire.Products {
		products[i] = p.toDomain()
	}

	c.logger.DebugContext(ctx, "products fetched",
		slog.String("category", filter.Category),
		slog.String("size", filter.Size),
		slog.Int("count", len(products)),
	)

	return products, nil
}

// Create registers a new product with the product service and returns the
// stored representation.
func (c *ProductsClient) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	// json.Number keeps prices as bare decimal literals on the wire.
	wireReq := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"price":       json.Number(domain.Rubles(input.Price).String()),
		"image_url":   input.ImageRef,
		"badge":       input.Badge,
		"sizes":       input.Sizes,
		"category":    input.Category,
	}
	if input.OldPrice > 0 {
		wireReq["old_price"] = json.Number(domain.Rubles(input.OldPrice).String())
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, fmt.Errorf("marshal create product request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create product request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("call product service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "product-service")
	}

	var wire productWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode create product response: %w", err)
	}

	product := wire.toDomain()

	c.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return &product, nil
}
