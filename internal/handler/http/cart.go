package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/vivass/storefront/pkg/errors"
	"github.com/vivass/storefront/pkg/httputil"
	"github.com/vivass/storefront/pkg/validator"

	"github.com/vivass/storefront/internal/service"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a cart line.
type AddItemRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Size      string `json:"size"`
	Name      string `json:"name" validate:"required"`
	UnitPrice int64  `json:"unit_price" validate:"required,gte=0"`
	ImageRef  string `json:"image_ref"`
}

// ChangeQuantityRequest is the JSON request body for a quantity delta.
type ChangeQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), SessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.AddLine(r.Context(), SessionIDFromContext(r.Context()), service.AddLineInput{
		ProductID: req.ProductID,
		Size:      req.Size,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		ImageRef:  req.ImageRef,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// ChangeQuantity handles PUT /api/v1/cart/items/{productID}/quantity
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be an integer"), h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<10)
	var req ChangeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	cart, err := h.service.ChangeQuantity(r.Context(), SessionIDFromContext(r.Context()), productID, r.URL.Query().Get("size"), req.Delta)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be an integer"), h.logger)
		return
	}

	cart, err := h.service.RemoveLine(r.Context(), SessionIDFromContext(r.Context()), productID, r.URL.Query().Get("size"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), SessionIDFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/v1/cart/checkout. Order placement is not part
// of the storefront yet; the cart is left untouched.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusNotImplemented, httputil.Response{
		Error: &httputil.ErrorResponse{
			Code:    "NOT_IMPLEMENTED",
			Message: "checkout is not available yet",
		},
	})
}
