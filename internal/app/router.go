package app

import (
	"github.com/guttosm/kit-service/config"
	"github.com/guttosm/kit-service/internal/http"
	"github.com/guttosm/kit-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// Stop releases the background goroutines of the rate limiter and idempotency cache.
func (r *RouterComponents) Stop() {
	if r.Config.RateLimiter != nil {
		r.Config.RateLimiter.Stop()
	}
	r.Config.Idempotency.Stop()
}

// InitializeRouter initializes the health handler and router configuration.
func InitializeRouter(cfg config.Config, storage *StorageComponents, services *ServiceComponents) *RouterComponents {
	healthHandler := http.NewHealthHandler()
	if storage.HealthCheck != nil {
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(storage.HealthCheck))
	}
	for name, cb := range storage.CircuitBreakers {
		healthHandler.RegisterCircuitBreaker(name, cb)
	}

	routerCfg := http.RouterConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		Idempotency:    middleware.NewIdempotencyConfig(cfg.Server.IdempotencyTTL),
		EnableAuth:     cfg.Auth.Enabled,
		APIKeys:        cfg.Auth.APIKeys,
		JWT: middleware.JWTConfig{
			Secret: []byte(cfg.Auth.JWTSecretKey),
			Issuer: cfg.Auth.JWTIssuer,
		},
		CORSOrigins: cfg.Server.CORSOrigins,
		SwaggerUser: cfg.Server.SwaggerUser,
		SwaggerPass: cfg.Server.SwaggerPass,
		Catalog:     services.Catalog,
		Assignments: services.Assignments,
		Planning:    services.Planning,
	}
	if cfg.Server.RateLimit > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
