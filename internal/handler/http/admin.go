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

	"github.com/vivass/storefront/internal/client"
	"github.com/vivass/storefront/internal/domain"
	"github.com/vivass/storefront/internal/service"
)

// AdminHandler handles the gated admin panel endpoints.
type AdminHandler struct {
	service *service.AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// UpdateOrderStatusRequest is the JSON request body for an order status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new processing shipped delivered cancelled"`
}

// ImportProductsRequest is the JSON request body for a bulk product import.
type ImportProductsRequest struct {
	Products []client.CreateProductInput `json:"products" validate:"required,min=1,max=500"`
}

// --- Handlers ---

// ListOrders handles GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/{id}/status. The
// response carries the refreshed order list.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("order id must be an integer"), h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<10)
	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	orders, err := h.service.SetStatus(r.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}

// ListProducts handles GET /api/v1/admin/products
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// CreateProduct handles POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req client.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// ImportProducts handles POST /api/v1/admin/products/import. Items are
// imported best-effort; the response tallies successes and failures.
func (h *AdminHandler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 8<<20) // 8 MB limit for bulk payloads
	var req ImportProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	report, err := h.service.ImportProducts(r.Context(), req.Products)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: report})
}
