package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/vivass/storefront/pkg/errors"

	"github.com/vivass/storefront/internal/domain"
	"github.com/vivass/storefront/internal/repository"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerLine is the maximum quantity allowed for a single cart line.
	MaxQuantityPerLine = 100
	// MaxLinesPerCart is the maximum number of distinct lines allowed in a cart.
	MaxLinesPerCart = 50
	// MaxPriceKopecks is the maximum unit price in kopecks (1,000,000.00 RUB) allowed per line.
	MaxPriceKopecks = 1_000_000_00
)

// AddLineInput holds the parameters for adding a line to the cart.
// Each add contributes quantity 1; repeated adds of the same
// (product, size) pair merge into one line.
type AddLineInput struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Size      string `json:"size"`
	Name      string `json:"name" validate:"required"`
	UnitPrice int64  `json:"unit_price" validate:"required,gte=0"`
	ImageRef  string `json:"image_ref"`
}

// CartEventPublisher publishes cart domain events. *event.Producer satisfies it.
type CartEventPublisher interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishCartCleared(ctx context.Context, sessionID string) error
}

// CartService implements the business logic for cart operations.
type CartService struct {
	repo     repository.CartRepository
	producer CartEventPublisher
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer CartEventPublisher, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a session. A missing snapshot yields an
// empty cart. A corrupted snapshot is logged and also yields an empty cart;
// the next successful mutation overwrites it.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return newEmptyCart(sessionID), nil
		}
		if errors.Is(err, repository.ErrSnapshotCorrupted) {
			s.logger.WarnContext(ctx, "cart snapshot corrupted, starting empty",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
			return newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddLine adds one unit of a product to the session's cart. If a line with
// the same (product, size) identity exists, its quantity is incremented;
// otherwise a new line with quantity 1 is appended.
func (s *CartService) AddLine(ctx context.Context, sessionID string, input AddLineInput) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.ProductID <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.UnitPrice < 0 {
		return nil, apperrors.InvalidInput("unit price must not be negative")
	}
	if input.UnitPrice > MaxPriceKopecks {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unit price must not exceed %d kopecks", MaxPriceKopecks))
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindLineIndex(input.ProductID, input.Size); idx >= 0 {
		if cart.Lines[idx].Quantity >= MaxQuantityPerLine {
			return nil, apperrors.InvalidInput(fmt.Sprintf("line quantity must not exceed %d", MaxQuantityPerLine))
		}
		cart.Lines[idx].Quantity++
		// Refresh descriptive fields in case the catalog changed.
		cart.Lines[idx].Name = input.Name
		cart.Lines[idx].UnitPrice = input.UnitPrice
		cart.Lines[idx].ImageRef = input.ImageRef
	} else {
		if len(cart.Lines) >= MaxLinesPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d lines", MaxLinesPerCart))
		}
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID: input.ProductID,
			Size:      input.Size,
			Name:      input.Name,
			UnitPrice: input.UnitPrice,
			Quantity:  1,
			ImageRef:  input.ImageRef,
		})
	}

	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "line added to cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", input.ProductID),
		slog.String("size", input.Size),
	)

	return cart, nil
}

// ChangeQuantity applies a delta to the quantity of an existing line.
// A resulting quantity of zero or below removes the line. Other lines are
// untouched. An unknown (product, size) identity is a NotFound error.
func (s *CartService) ChangeQuantity(ctx context.Context, sessionID string, productID int64, size string, delta int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if delta == 0 {
		return nil, apperrors.InvalidInput("delta must not be zero")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindLineIndex(productID, size)
	if idx < 0 {
		return nil, apperrors.NotFound("cart line", lineID(productID, size))
	}

	newQty := cart.Lines[idx].Quantity + delta
	switch {
	case newQty <= 0:
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	case newQty > MaxQuantityPerLine:
		return nil, apperrors.InvalidInput(fmt.Sprintf("line quantity must not exceed %d", MaxQuantityPerLine))
	default:
		cart.Lines[idx].Quantity = newQty
	}

	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart line quantity changed",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
		slog.String("size", size),
		slog.Int("delta", delta),
	)

	return cart, nil
}

// RemoveLine removes a line from the cart by its (product, size) identity.
func (s *CartService) RemoveLine(ctx context.Context, sessionID string, productID int64, size string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindLineIndex(productID, size)
	if idx < 0 {
		return nil, apperrors.NotFound("cart line", lineID(productID, size))
	}

	cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "line removed from cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
		slog.String("size", size),
	)

	return cart, nil
}

// Clear removes the session's cart unconditionally.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

// publishUpdated publishes a cart.updated event. Publish failures are logged
// and never fail the operation.
func (s *CartService) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

// newEmptyCart creates a new empty cart for the given session.
func newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Lines:     []domain.CartLine{},
		Currency:  "RUB",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// lineID renders a (product, size) identity for error messages.
func lineID(productID int64, size string) string {
	if size == "" {
		return fmt.Sprintf("%d", productID)
	}
	return fmt.Sprintf("%d/%s", productID, size)
}
