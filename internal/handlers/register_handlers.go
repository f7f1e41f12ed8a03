package handlers

import (
	"log/slog"

	"github.com/SscSPs/invoice_wizard/cmd/docs"
	portssvc "github.com/SscSPs/invoice_wizard/internal/core/ports/services"
	"github.com/SscSPs/invoice_wizard/internal/middleware"
	"github.com/SscSPs/invoice_wizard/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultExportRateLimit = "20-M"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerReferenceRoutes(v1)
	registerTemplateRoutes(v1, service.Export)
	registerSettingsRoutes(v1, service.Settings)

	draft := v1.Group("/draft")
	registerDraftRoutes(draft, service.Draft, service.Logo)
	registerExportRoutes(draft, service.Export, exportRateLimit(cfg.ExportRateLimit))
}

func exportRateLimit(formatted string) gin.HandlerFunc {
	limiterInstance, err := middleware.NewRateLimiter(formatted)
	if err != nil {
		slog.Warn("Invalid EXPORT_RATE_LIMIT, using default",
			slog.String("value", formatted), slog.String("default", defaultExportRateLimit))
		limiterInstance, _ = middleware.NewRateLimiter(defaultExportRateLimit)
	}
	return middleware.RateLimit(limiterInstance)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
