// Package http exposes the kit service over a gin router.
package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/kit-service/internal/metrics"
	"github.com/guttosm/kit-service/internal/middleware"
	"github.com/guttosm/kit-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimiter    *middleware.RateLimiter
	RequestTimeout time.Duration
	Idempotency    middleware.IdempotencyConfig
	// APIKeys and JWT are only enforced when EnableAuth is set.
	EnableAuth  bool
	APIKeys     map[string]bool
	JWT         middleware.JWTConfig
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string

	Catalog     service.CatalogService
	Assignments service.AssignmentService
	Planning    service.PlanningService
}

// NewRouter creates and configures the Gin router for the kit service.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	for _, group := range routeGroups(&cfg) {
		group.RegisterRoutes(api)
	}

	return router
}

func routeGroups(cfg *RouterConfig) []RouteGroup {
	var groups []RouteGroup
	if cfg.Catalog != nil {
		groups = append(groups, CatalogRoutes{handler: NewCatalogHandler(cfg.Catalog)})
	}
	if cfg.Assignments != nil && cfg.Planning != nil {
		groups = append(groups, AssignmentRoutes{handler: NewAssignmentHandler(cfg.Assignments, cfg.Planning)})
	}
	if cfg.Planning != nil {
		groups = append(groups, PlanningRoutes{handler: NewPlanningHandler(cfg.Planning)})
	}
	return groups
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language",
			"Authorization", "X-API-Key", "Idempotency-Key", "X-Request-ID",
		},
		ExposeHeaders:    []string{"X-Request-ID", "X-Idempotency-Replayed", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group. Authentication
// runs before rate limiting and idempotency so both can key on the operator.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.EnableAuth {
		if len(cfg.APIKeys) > 0 {
			api.Use(middleware.APIKeyAuth(cfg.APIKeys))
		}
		if len(cfg.JWT.Secret) > 0 {
			api.Use(middleware.JWTAuth(cfg.JWT))
		}
	}
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Middleware())
	}
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	api.Use(middleware.Idempotency(cfg.Idempotency))
}
