package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vivass/storefront/pkg/httpclient"

	"github.com/vivass/storefront/internal/domain"
)

// orderWire mirrors the order representation on the order service wire.
type orderWire struct {
	ID              int64           `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerEmail   string          `json:"customer_email"`
	DeliveryAddress string          `json:"delivery_address"`
	PaymentMethod   string          `json:"payment_method"`
	DeliveryMethod  string          `json:"delivery_method"`
	Comment         string          `json:"comment"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
}

func (w orderWire) toDomain() domain.Order {
	return domain.Order{
		ID:              w.ID,
		CustomerName:    w.CustomerName,
		CustomerPhone:   w.CustomerPhone,
		CustomerEmail:   w.CustomerEmail,
		DeliveryAddress: w.DeliveryAddress,
		PaymentMethod:   w.PaymentMethod,
		DeliveryMethod:  w.DeliveryMethod,
		Comment:         w.Comment,
		TotalAmount:     domain.Kopecks(w.TotalAmount),
		Status:          domain.OrderStatus(w.Status),
		CreatedAt:       w.CreatedAt,
	}
}

// OrdersClient calls the remote order service.
type OrdersClient struct {
	httpClient HTTPDoer
	baseURL    string
	logger     *slog.Logger
}

// NewOrdersClient creates a client for the order service.
func NewOrdersClient(httpClient HTTPDoer, baseURL string, logger *slog.Logger) *OrdersClient {
	return &OrdersClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// List fetches all orders from the order service.
func (c *OrdersClient) List(ctx context.Context) ([]domain.Order, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create orders request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("call order service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "order-service")
	}

	var wire struct {
		Orders []orderWire `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode orders response: %w", err)
	}

	orders := make([]domain.Order, len(wire.Orders))
	for i, o := range wire.Orders {
		orders[i] = o.toDomain()
	}

	c.logger.DebugContext(ctx, "orders fetched", slog.Int("count", len(orders)))

	return orders, nil
}

// UpdateStatus asks the order service to move an order to the given status.
// The order service owns transition legality; this call only relays the request.
func (c *OrdersClient) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	body, err := json.Marshal(map[string]any{
		"id":     orderID,
		"status": string(status),
	})
	if err != nil {
		return fmt.Errorf("marshal status update request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create status update request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(ctx, httpReq)
	if err != nil {
		return fmt.Errorf("call order service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return httpclient.ParseResponseError(resp, "order-service")
	}

	c.logger.InfoContext(ctx, "order status updated",
		slog.Int64("order_id", orderID),
		slog.String("status", string(status)),
	)

	return nil
}
