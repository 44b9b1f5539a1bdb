package http

import (
	"log/slog"
	"net/http"

	"github.com/vivass/storefront/pkg/httputil"

	"github.com/vivass/storefront/internal/domain"
	"github.com/vivass/storefront/internal/service"
)

// CatalogHandler handles HTTP requests for the public catalog.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// CatalogResponse is the JSON payload for a catalog page: the products
// matching the active filter plus the filter chips the UI renders.
type CatalogResponse struct {
	Categories []string         `json:"categories"`
	Sizes      []string         `json:"sizes"`
	Category   string           `json:"category"`
	Size       string           `json:"size"`
	Products   []domain.Product `json:"products"`
}

// catalogSizes lists the size chips in display order, starting with the
// unconstrained sentinel.
var catalogSizes = []string{domain.FilterAll, "48", "50", "52", "54", "56", "58", "60", "62", "64"}

// Browse handles GET /api/v1/catalog. Missing query parameters mean the
// unconstrained sentinel for that axis. The view is tracked per session, so
// one visitor's filter results never answer another visitor's request.
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	filter := domain.Filter{
		Category: r.URL.Query().Get("category"),
		Size:     r.URL.Query().Get("size"),
	}
	if filter.Category == "" {
		filter.Category = domain.FilterAll
	}
	if filter.Size == "" {
		filter.Size = domain.FilterAll
	}

	view, err := h.service.SetFilter(r.Context(), SessionIDFromContext(r.Context()), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: CatalogResponse{
		Categories: domain.Categories,
		Sizes:      catalogSizes,
		Category:   view.Filter.Category,
		Size:       view.Filter.Size,
		Products:   view.Products,
	}})
}
