package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/vivass/storefront/pkg/errors"

	"github.com/vivass/storefront/internal/client"
	"github.com/vivass/storefront/internal/domain"
)

// OrdersGateway is the slice of the order service the admin panel uses.
// *client.OrdersClient satisfies it.
type OrdersGateway interface {
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
}

// ProductsGateway is the slice of the product service the admin panel uses.
// *client.ProductsClient satisfies it.
type ProductsGateway interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Product, error)
	Create(ctx context.Context, input client.CreateProductInput) (*domain.Product, error)
}

// OrderEventPublisher publishes order domain events. *event.Producer satisfies it.
type OrderEventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, orderID int64, status domain.OrderStatus) error
}

// ImportReport tallies the outcome of a best-effort bulk import.
type ImportReport struct {
	Total   int           `json:"total"`
	Created int           `json:"created"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors,omitempty"`
}

// ImportError records a single failed import item.
type ImportError struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error"`
}

// AdminService implements the admin panel operations: order management and
// product management against the remote services.
type AdminService struct {
	orders   OrdersGateway
	products ProductsGateway
	producer OrderEventPublisher
	logger   *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(orders OrdersGateway, products ProductsGateway, producer OrderEventPublisher, logger *slog.Logger) *AdminService {
	return &AdminService{
		orders:   orders,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// ListOrders fetches all orders for the admin orders tab.
func (s *AdminService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// SetStatus asks the order service to move an order to the given status and
// then re-fetches the full list. There is no optimistic local update: the
// refreshed list is the only source of truth, so a failed update leaves the
// view unchanged.
func (s *AdminService) SetStatus(ctx context.Context, orderID int64, status domain.OrderStatus) ([]domain.Order, error) {
	if orderID <= 0 {
		return nil, apperrors.InvalidInput("order id is required")
	}
	if !domain.IsValidStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown order status: %s", status))
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if err := s.producer.PublishOrderStatusChanged(ctx, orderID, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.Int64("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status set",
		slog.Int64("order_id", orderID),
		slog.String("status", string(status)),
	)

	return s.ListOrders(ctx)
}

// ListProducts fetches the unfiltered catalog for the admin products tab.
func (s *AdminService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx, domain.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// CreateProduct registers a single product with the product service.
func (s *AdminService) CreateProduct(ctx context.Context, input client.CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price <= 0 {
		return nil, apperrors.InvalidInput("product price must be positive")
	}
	if input.Category == "" {
		return nil, apperrors.InvalidInput("product category is required")
	}

	product, err := s.products.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// ImportProducts performs a best-effort bulk import: each item is created
// sequentially, failures are tallied per item, and nothing is retried or
// rolled back. A failed item never stops the remaining imports.
func (s *AdminService) ImportProducts(ctx context.Context, inputs []client.CreateProductInput) (*ImportReport, error) {
	if len(inputs) == 0 {
		return nil, apperrors.InvalidInput("at least one product is required")
	}

	report := &ImportReport{Total: len(inputs)}

	for i, input := range inputs {
		if _, err := s.CreateProduct(ctx, input); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, ImportError{
				Index: i,
				Name:  input.Name,
				Error: err.Error(),
			})
			continue
		}
		report.Created++
	}

	s.logger.InfoContext(ctx, "product import finished",
		slog.Int("total", report.Total),
		slog.Int("created", report.Created),
		slog.Int("failed", report.Failed),
	)

	return report, nil
}
