package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vivass/storefront/pkg/health"
	"github.com/vivass/storefront/pkg/middleware"

	"github.com/vivass/storefront/internal/service"
)

// RouterConfig carries the router wiring dependencies.
type RouterConfig struct {
	CartService    *service.CartService
	CatalogService *service.CatalogService
	AdminService   *service.AdminService
	AuthService    service.AuthService
	HealthHandler  *health.Handler
	Logger         *slog.Logger

	Environment    string
	AllowedOrigins []string
	LoginRateRPS   int
	LoginRateBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	secureCookies := cfg.Environment == "production"

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.AllowedOrigins
	corsCfg.Environment = cfg.Environment

	// Global middleware
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(cfg.CartService, cfg.Logger)
	catalogHandler := NewCatalogHandler(cfg.CatalogService, cfg.Logger)
	contentHandler := NewContentHandler(cfg.Logger)
	authHandler := NewAuthHandler(cfg.AuthService, secureCookies, cfg.Logger)
	adminHandler := NewAdminHandler(cfg.AdminService, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public storefront
		r.Get("/pages/{page}", contentHandler.GetPage)

		// Session-scoped storefront: the cookie keys the cart and the
		// per-visitor catalog view.
		r.Group(func(r chi.Router) {
			r.Use(Session(secureCookies))

			r.Get("/catalog", catalogHandler.Browse)
			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productID}/quantity", cartHandler.ChangeQuantity)
			r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)
			r.Post("/cart/checkout", cartHandler.Checkout)
		})

		// Admin auth
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.LoginRateRPS, cfg.LoginRateBurst, cfg.Logger))
			r.Post("/auth/login", authHandler.Login)
		})
		r.Post("/auth/logout", authHandler.Logout)

		// Admin panel, gated
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminGate(cfg.AuthService))

			r.Get("/orders", adminHandler.ListOrders)
			r.Put("/orders/{id}/status", adminHandler.UpdateOrderStatus)
			r.Get("/products", adminHandler.ListProducts)
			r.Post("/products", adminHandler.CreateProduct)
			r.Post("/products/import", adminHandler.ImportProducts)
		})
	})

	return r
}
