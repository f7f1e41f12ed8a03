package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/clients/backend"
	"github.com/SscSPs/invoice_wizard/internal/clients/events"
	"github.com/SscSPs/invoice_wizard/internal/clients/logostore"
	"github.com/SscSPs/invoice_wizard/internal/clients/mailer"
	"github.com/SscSPs/invoice_wizard/internal/core/ports"
	portsrepo "github.com/SscSPs/invoice_wizard/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_wizard/internal/core/services"
	"github.com/SscSPs/invoice_wizard/internal/handlers"
	"github.com/SscSPs/invoice_wizard/internal/middleware"
	"github.com/SscSPs/invoice_wizard/internal/platform/config"
	"github.com/SscSPs/invoice_wizard/internal/repositories/database/pgsql"
	"github.com/SscSPs/invoice_wizard/internal/repositories/storage"
	"github.com/SscSPs/invoice_wizard/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Invoice Wizard API
// @version 1.0
// @description Draft, render and export invoices.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	var invoices portsrepo.InvoiceRepositoryFacade
	if cfg.BackendBaseURL != "" {
		invoices = backend.NewClient(backend.Config{
			BaseURL:  cfg.BackendBaseURL,
			Timeout:  cfg.BackendTimeout,
			RetryMax: cfg.BackendRetryMax,
		})
		logger.Info("Backend of record configured", slog.String("url", cfg.BackendBaseURL))
	}

	repos := portsrepo.RepositoryProvider{InvoiceRepo: invoices}
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		logger.Info("Running database migrations...")
		if err := pgsql.Migrate(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		repos = pgsql.NewRepositoryProvider(dbPool, invoices)
	case config.StorageMemory:
		repos.SlotRepo = storage.NewMemoryStore()
	default:
		fileStore, err := storage.NewFileStore(cfg.StorageDir)
		if err != nil {
			logger.Error("Failed to initialize file storage", slog.String("dir", cfg.StorageDir), slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos.SlotRepo = fileStore
	}
	logger.Info("Draft storage ready", slog.String("driver", cfg.StorageDriver))

	clients, closeClients := newClients(cfg, logger)
	defer closeClients()

	container := services.NewServiceContainer(cfg, repos, clients)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.New(corsConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newClients builds the optional outbound collaborators. Unconfigured ones stay nil.
func newClients(cfg *config.Config, logger *slog.Logger) (ports.ClientProvider, func()) {
	clients := ports.ClientProvider{}
	closers := []func(){}

	if cfg.SMTP.Enabled() {
		clients.Mailer = mailer.New(cfg.SMTP)
	}

	if cfg.S3Bucket != "" {
		store, err := logostore.NewS3Store(cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			logger.Warn("S3 logo storage unavailable, logos will be stored inline", slog.String("error", err.Error()))
		} else {
			clients.LogoStore = store
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewKafkaPublisher(logger, cfg.KafkaBrokers, cfg.KafkaTopic)
		clients.Events = publisher
		closers = append(closers, publisher.Close)
	} else {
		clients.Events = events.LogPublisher{}
	}

	return clients, func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", "X-Page-Count", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return c
}
