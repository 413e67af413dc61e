package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LidioGab/PI4-Ratech/internal/config"
	"github.com/LidioGab/PI4-Ratech/internal/database"
	"github.com/LidioGab/PI4-Ratech/internal/handler"
	"github.com/LidioGab/PI4-Ratech/internal/repository"
	"github.com/LidioGab/PI4-Ratech/internal/router"
	"github.com/LidioGab/PI4-Ratech/internal/seed"
	"github.com/LidioGab/PI4-Ratech/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting ratech API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Bootstrap schema
	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	imageRepo := repository.NewProductImageRepository(pool, logger)

	// Opt-in development seeding
	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, userRepo, logger); err != nil {
			return fmt.Errorf("failed to seed development accounts: %w", err)
		}
	}

	// Initialize services
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, cartRepo, logger)
	checkoutService := service.NewCheckoutService(customerRepo, productRepo, logger)
	productService := service.NewProductService(productRepo, imageRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	customerService := service.NewCustomerService(customerRepo, logger)
	loginService := service.NewLoginService(userRepo, customerRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	dashboardService := service.NewDashboardService(productRepo, userRepo, logger)
	imageService := service.NewImageService(imageRepo, productRepo, cfg.Uploads.Dir, logger)

	// Initialize HTTP handlers and router
	handlers := router.Handlers{
		Order:     handler.NewOrderHandler(orderService, logger),
		Shipping:  handler.NewShippingHandler(logger),
		Checkout:  handler.NewCheckoutHandler(checkoutService, logger),
		Product:   handler.NewProductHandler(productService, logger),
		Image:     handler.NewImageHandler(imageService, logger),
		Cart:      handler.NewCartHandler(cartService, logger),
		Customer:  handler.NewCustomerHandler(customerService, logger),
		Auth:      handler.NewAuthHandler(loginService, logger),
		User:      handler.NewUserHandler(userService, logger),
		Dashboard: handler.NewDashboardHandler(dashboardService, logger),
	}
	mux := router.New(handlers, cfg.Uploads.Dir, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
