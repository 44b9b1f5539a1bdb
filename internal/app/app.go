package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vivass/storefront/pkg/health"
	"github.com/vivass/storefront/pkg/httpclient"
	pkgkafka "github.com/vivass/storefront/pkg/kafka"

	"github.com/vivass/storefront/internal/auth"
	"github.com/vivass/storefront/internal/client"
	"github.com/vivass/storefront/internal/config"
	"github.com/vivass/storefront/internal/event"
	handler "github.com/vivass/storefront/internal/handler/http"
	redisrepo "github.com/vivass/storefront/internal/repository/redis"
	"github.com/vivass/storefront/internal/service"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Redis holds the session carts.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka carries the storefront domain events best-effort.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Remote collaborators, each behind retries and its own circuit breaker.
	baseClient := httpclient.New(httpclient.DefaultConfig())
	productsHTTP := httpclient.NewCircuitBreakerClient(baseClient,
		httpclient.DefaultCircuitBreakerConfig("product-service"), logger)
	ordersHTTP := httpclient.NewCircuitBreakerClient(baseClient,
		httpclient.DefaultCircuitBreakerConfig("order-service"), logger)

	productsClient := client.NewProductsClient(productsHTTP, cfg.ProductServiceURL, logger)
	ordersClient := client.NewOrdersClient(ordersHTTP, cfg.OrderServiceURL, logger)

	// Build the dependency graph.
	cartTTL := time.Duration(cfg.CartTTL) * time.Hour
	repo := redisrepo.NewCartRepository(rdb, cartTTL)
	eventProducer := event.NewProducer(producer, logger)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	cartService := service.NewCartService(repo, eventProducer, logger)
	catalogService := service.NewCatalogService(productsClient, logger)
	adminService := service.NewAdminService(ordersClient, productsClient, eventProducer, logger)
	authService := service.NewStaticPasswordAuth(cfg.AdminPassword, tokens, logger)

	// Health checks. Redis is critical: without it carts are gone. Kafka is
	// not: events are best-effort.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	router := handler.NewRouter(handler.RouterConfig{
		CartService:    cartService,
		CatalogService: catalogService,
		AdminService:   adminService,
		AuthService:    authService,
		HealthHandler:  healthHandler,
		Logger:         logger,

		Environment:    cfg.Environment,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		LoginRateRPS:   cfg.LoginRateRPS,
		LoginRateBurst: cfg.LoginRateBurst,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
