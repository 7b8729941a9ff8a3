package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mesa-pos/mesa/internal"
	"github.com/mesa-pos/mesa/internal/billing"
	"github.com/mesa-pos/mesa/internal/cart"
	"github.com/mesa-pos/mesa/internal/domain"
	"github.com/mesa-pos/mesa/internal/events"
	"github.com/mesa-pos/mesa/internal/handler"
	"github.com/mesa-pos/mesa/internal/menu"
	"github.com/mesa-pos/mesa/internal/middleware"
	"github.com/mesa-pos/mesa/internal/order"
	"github.com/mesa-pos/mesa/internal/orderapi"
	"github.com/mesa-pos/mesa/internal/postgres"
	"github.com/mesa-pos/mesa/internal/pricing"
	"github.com/mesa-pos/mesa/internal/router"
	"github.com/mesa-pos/mesa/internal/routes"
	"github.com/mesa-pos/mesa/internal/table"
	"github.com/mesa-pos/mesa/internal/tax"
	"github.com/mesa-pos/mesa/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// ==========================================================================
	// Menu catalog: Postgres when configured, static fixture otherwise
	// ==========================================================================

	var menuService domain.MenuService
	if cfg.DatabaseUrl != "" {
		logger.Info("Connecting to database...")
		sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		logger.Info("Database connection established")

		logger.Info("Running database migrations...")
		if err := internal.RunMigrations(sqlDB); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()

		menuService = postgres.NewMenuService(pool)
	} else {
		logger.Warn("DATABASE_URL not set, serving the built-in menu fixture")
		menuService = menu.NewStaticService(menu.DefaultMenu()...)
	}

	// ==========================================================================
	// Core services
	// ==========================================================================

	taxCalculator := tax.NewPercentageCalculator(cfg.TaxRate)
	vouchers := pricing.NewVoucherCatalog(pricing.DefaultVouchers()...)
	cartService := cart.NewService(menuService, taxCalculator, vouchers, cfg.ServiceChargeRate)

	// Sweep abandoned carts in the background
	janitor := cart.NewJanitor(cartService, cart.JanitorConfig{}, logger)
	go func() {
		if err := janitor.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("cart janitor stopped", "error", err)
		}
	}()

	// Kitchen backend client with circuit breaker
	orderClient := orderapi.NewClient(orderapi.Config{
		BaseURL: cfg.OrderAPI.BaseURL,
		Timeout: cfg.OrderAPI.Timeout,
	})

	// Billing provider for card settlements; cash-only without a key
	var billingProvider billing.Provider
	if cfg.Stripe.SecretKey != "" {
		logger.Info("Initializing Stripe billing provider...")
		billingProvider, err = billing.NewStripeProvider(cfg.Stripe.SecretKey)
		if err != nil {
			return fmt.Errorf("failed to initialize Stripe provider: %w", err)
		}
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, card settlements disabled")
	}

	tableService := table.NewRegistry(billingProvider, cfg.Currency, table.DefaultTables())

	// Event publisher for the waiter task feed
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		logger.Info("Connecting to NATS...", "url", cfg.NATS.URL)
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	} else {
		logger.Warn("NATS_URL not set, order events disabled")
	}

	// Telemetry
	businessMetrics := telemetry.NewBusinessMetrics("mesa")
	dashboardStats := telemetry.NewDashboardStats()

	orderService := order.NewService(
		cartService,
		tableService,
		orderClient,
		publisher,
		businessMetrics,
		dashboardStats,
		logger,
	)

	// ==========================================================================
	// HTTP surface
	// ==========================================================================

	metrics := middleware.NewMetrics("mesa")

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		router.CORS(cfg.AllowedOrigins),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		middleware.RateLimit(middleware.DefaultRateLimiterConfig()),
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		MenuHandler:      handler.NewMenuHandler(menuService, logger),
		CartHandler:      handler.NewCartHandler(cartService, menuService, businessMetrics, logger),
		CheckoutHandler:  handler.NewCheckoutHandler(orderService, logger),
		TableHandler:     handler.NewTableHandler(tableService, businessMetrics, logger),
		DashboardHandler: handler.NewDashboardHandler(dashboardStats, logger),
	})
	routes.RegisterOpsRoutes(r, routes.OpsDeps{Metrics: metrics})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
