package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"print-kart/db"
	"print-kart/internal/auth"
	"print-kart/internal/config"
	"print-kart/internal/database"
	"print-kart/internal/events"
	"print-kart/internal/handler"
	"print-kart/internal/repository"
	"print-kart/internal/router"
	"print-kart/internal/service"
	"print-kart/internal/storage"

	"github.com/redis/go-redis/v9"
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
	logger.Info().Msg("starting print-kart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, db.Schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize image storage with S3 and local fallback
	localStore := storage.NewLocalStore(cfg.Storage.LocalDir, logger)
	var store storage.Store

	if cfg.S3.Enabled {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 storage, falling back to local file system only")
			store = localStore
		} else {
			store = s3Store
		}
	} else {
		store = localStore
		logger.Info().Msg("using local file system for uploads (S3 disabled)")
	}

	// Initialize product cache
	var productCache repository.ProductCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		defer client.Close()
		productCache = repository.NewRedisProductCache(client, cfg.Redis.TTL, logger)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("product cache enabled")
	} else {
		productCache = repository.NewNopProductCache()
	}

	// Initialize order event publisher
	var publisher events.Publisher
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka, logger)
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("order events enabled")
	} else {
		publisher = events.NewNopPublisher()
	}
	defer publisher.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	favoriteRepo := repository.NewFavoriteRepository(pool, logger)
	bannerRepo := repository.NewBannerRepository(pool, logger)
	offerBarRepo := repository.NewOfferBarRepository(pool, logger)
	complaintRepo := repository.NewComplaintRepository(pool, logger)

	// Initialize services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	productService := service.NewProductService(productRepo, categoryRepo, productCache, logger)
	cartService := service.NewCartService(cartRepo, productRepo, store, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, cartRepo, complaintRepo, store, publisher, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo, logger)
	bannerService := service.NewBannerService(bannerRepo, store, cfg.Storage.PublicBaseURL, logger)
	offerBarService := service.NewOfferBarService(offerBarRepo, logger)

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Auth:     handler.NewAuthHandler(authService, logger),
		Category: handler.NewCategoryHandler(categoryService, logger),
		Product:  handler.NewProductHandler(productService, logger),
		Banner:   handler.NewBannerHandler(bannerService, logger),
		OfferBar: handler.NewOfferBarHandler(offerBarService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Favorite: handler.NewFavoriteHandler(favoriteService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}, tokens, logger)

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
