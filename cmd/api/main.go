package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"book-bazaar/internal/addon"
	"book-bazaar/internal/config"
	"book-bazaar/internal/database"
	"book-bazaar/internal/handler"
	"book-bazaar/internal/notify"
	"book-bazaar/internal/payu"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/router"
	"book-bazaar/internal/service"
	"book-bazaar/internal/session"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

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
	logger.Info().Msg("starting book-bazaar API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply pending schema migrations before accepting traffic
	if err := database.Migrate(cfg.Database, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize Redis-backed session store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	sessionTTL := time.Duration(cfg.Session.TTL) * time.Second
	sessions := session.NewRedisStore(redisClient, sessionTTL, logger)

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(pool, logger)
	verificationRepo := repository.NewVerificationRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Load the add-on price table with S3 and local fallback
	addons := loadAddons(ctx, cfg.Addon, logger)

	// Initialize notification channels
	smsClient := notify.NewSMSClient(cfg.Notify.SMSBaseURL, cfg.Notify.SMSAPIKey, logger)
	emailNotifier := notify.NewEmailNotifier(
		cfg.Notify.SMTPHost, cfg.Notify.SMTPPort,
		cfg.Notify.SMTPFrom, cfg.Notify.SMTPPassword,
		cfg.Notify.AdminEmail, logger,
	)
	orderNotifier := notify.NewOrderNotifier(emailNotifier, smsClient)

	payuConfig := payu.Config{
		MerchantKey: cfg.PayU.MerchantKey,
		Salt:        cfg.PayU.Salt,
		GatewayURL:  cfg.PayU.GatewayURL,
		SuccessURL:  cfg.PayU.SuccessURL,
		FailureURL:  cfg.PayU.FailureURL,
	}

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, logger)
	cartService := service.NewCartService(sessions, catalogRepo, addons, logger)
	verificationService := service.NewVerificationService(
		verificationRepo, smsClient, sessions,
		cfg.OTP.Digits, time.Duration(cfg.OTP.TTL)*time.Second, logger,
	)
	checkoutService := service.NewCheckoutService(orderRepo, verificationRepo, sessions, addons, payuConfig, logger)
	paymentService := service.NewPaymentService(orderRepo, verificationRepo, sessions, orderNotifier, payuConfig, logger)

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	otpHandler := handler.NewOTPHandler(verificationService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)

	// Initialize router
	mux := router.New(
		catalogHandler, cartHandler, otpHandler, checkoutHandler, paymentHandler,
		cfg.Session.CookieName, sessionTTL, logger,
	)

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

// loadAddons resolves the add-on price table. Any loading problem falls back
// to the built-in table rather than blocking startup.
func loadAddons(ctx context.Context, cfg config.AddonConfig, logger zerolog.Logger) *addon.Catalog {
	if cfg.FilePath == "" {
		logger.Info().Msg("using built-in addon price table")
		return addon.Default()
	}

	fileLoader := addon.NewFileLoader(logger)
	var loader addon.Loader = fileLoader

	if cfg.S3Enabled {
		s3Loader, err := addon.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = addon.NewFallbackLoader(s3Loader, fileLoader, cfg.S3Prefix, true, logger)
		}
	}

	catalog, err := loader.Load(ctx, cfg.FilePath)
	if err != nil {
		logger.Warn().Err(err).Str("file", cfg.FilePath).Msg("failed to load addon table, using built-in defaults")
		return addon.Default()
	}

	return catalog
}
