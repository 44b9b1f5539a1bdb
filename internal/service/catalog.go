package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vivass/storefront/internal/domain"
)

// ProductLister fetches catalog slices from the product service.
// *client.ProductsClient satisfies it.
type ProductLister interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Product, error)
}

// CatalogView is a snapshot of the catalog as a visitor currently filters it.
type CatalogView struct {
	Filter   domain.Filter
	Products []domain.Product
}

// Tracked session view bounds. When the table is full, views idle longer
// than sessionViewTTL are dropped before a new session is admitted.
const (
	maxTrackedSessions = 10000
	sessionViewTTL     = time.Hour
)

// sessionView is one visitor's catalog view, guarded by that visitor's own
// request generation.
type sessionView struct {
	generation uint64
	view       CatalogView
	lastSeen   time.Time
}

// CatalogService serves catalog queries. Every query is a fresh round trip
// to the product service: there is no debounce and no client-side cache.
//
// The service keeps the current view per session, each guarded by its own
// request generation counter. A SetFilter stamps its fetch with the
// session's generation; the response is only installed if that session has
// not issued a newer fetch since, so a slow response can never overwrite
// newer results. Views are never shared between sessions: one visitor's
// fetch cannot surface in another visitor's response.
type CatalogService struct {
	products ProductLister
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*sessionView
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products ProductLister, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger,
		sessions: make(map[string]*sessionView),
	}
}

// Query fetches the products matching the filter without touching any view.
func (s *CatalogService) Query(ctx context.Context, filter domain.Filter) ([]domain.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// SetFilter switches the session's view to the given filter and fetches the
// matching products. If the same session has issued a newer SetFilter while
// the fetch was in flight, the stale response is discarded and the session's
// newer view is returned instead. With no session ID the result is returned
// without being tracked.
func (s *CatalogService) SetFilter(ctx context.Context, sessionID string, filter domain.Filter) (CatalogView, error) {
	if sessionID == "" {
		products, err := s.Query(ctx, filter)
		if err != nil {
			return CatalogView{}, err
		}
		return CatalogView{Filter: filter, Products: products}, nil
	}

	s.mu.Lock()
	sv, ok := s.sessions[sessionID]
	if !ok {
		s.evictStaleLocked()
		sv = &sessionView{view: CatalogView{Products: []domain.Product{}}}
		s.sessions[sessionID] = sv
	}
	sv.generation++
	sv.lastSeen = time.Now()
	gen := sv.generation
	s.mu.Unlock()

	products, err := s.Query(ctx, filter)
	if err != nil {
		return CatalogView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != sv.generation {
		// The session issued a newer fetch while this one was in flight.
		s.logger.DebugContext(ctx, "stale catalog response discarded",
			slog.String("session_id", sessionID),
			slog.Uint64("generation", gen),
			slog.Uint64("current", sv.generation),
			slog.String("category", filter.Category),
			slog.String("size", filter.Size),
		)
		return sv.view, nil
	}

	sv.view = CatalogView{Filter: filter, Products: products}

	s.logger.InfoContext(ctx, "catalog view updated",
		slog.String("session_id", sessionID),
		slog.String("category", filter.Category),
		slog.String("size", filter.Size),
		slog.Int("count", len(products)),
	)

	return sv.view, nil
}

// Current returns the session's catalog view snapshot. An untracked session
// gets an empty view.
func (s *CatalogService) Current(sessionID string) CatalogView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sv, ok := s.sessions[sessionID]; ok {
		return sv.view
	}
	return CatalogView{Products: []domain.Product{}}
}

// evictStaleLocked drops idle session views once the table is full.
// Caller must hold s.mu.
func (s *CatalogService) evictStaleLocked() {
	if len(s.sessions) < maxTrackedSessions {
		return
	}
	cutoff := time.Now().Add(-sessionViewTTL)
	for id, sv := range s.sessions {
		if sv.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
