package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/vivass/storefront/pkg/kafka"
	"github.com/vivass/storefront/pkg/logger"

	"github.com/vivass/storefront/internal/domain"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated        = "storefront.cart.updated"
	TopicCartCleared        = "storefront.cart.cleared"
	TopicOrderStatusChanged = "storefront.order.status_changed"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string         `json:"session_id"`
	Lines     []CartLineData `json:"lines"`
	ItemCount int            `json:"item_count"`
	Total     int64          `json:"total"`
	Currency  string         `json:"currency"`
}

// CartLineData is the line payload within cart events.
type CartLineData struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	lines := make([]CartLineData, len(cart.Lines))
	for i, line := range cart.Lines {
		lines[i] = CartLineData{
			ProductID: line.ProductID,
			Size:      line.Size,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		}
	}

	data := CartUpdatedData{
		SessionID: cart.SessionID,
		Lines:     lines,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
		Currency:  cart.Currency,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", cart.SessionID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	data := CartClearedData{SessionID: sessionID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)

	return nil
}

// PublishOrderStatusChanged publishes an order.status_changed event after the
// order service accepted a status update.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	data := OrderStatusChangedData{OrderID: orderID, Status: string(status)}

	event, err := pkgkafka.NewEvent(TopicOrderStatusChanged, fmt.Sprintf("%d", orderID), AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.status_changed event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicOrderStatusChanged, event); err != nil {
		return fmt.Errorf("publish order.status_changed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.status_changed event",
		slog.Int64("order_id", orderID),
		slog.String("status", string(status)),
	)

	return nil
}
