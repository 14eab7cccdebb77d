package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/kit-service/config"
	"github.com/guttosm/kit-service/internal/circuitbreaker"
	"github.com/guttosm/kit-service/internal/metrics"
	"github.com/guttosm/kit-service/internal/repository"
	"github.com/guttosm/kit-service/internal/repository/memory"
)

// StorageComponents holds the repositories every service is built from.
type StorageComponents struct {
	Kits         repository.KitRepositoryInterface
	Inventory    repository.InventoryRepositoryInterface
	Assignments  repository.AssignmentRepositoryInterface
	OrderHistory repository.OrderHistoryRepositoryInterface
	Transactor   repository.Transactor
	// CircuitBreakers is keyed by collection; empty for the in-memory store.
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
	// HealthCheck pings the database; nil for the in-memory store.
	HealthCheck func(ctx context.Context) error

	close func(ctx context.Context) error
}

// Close releases the database connection.
func (s *StorageComponents) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// InitializeDatabase connects to MongoDB and wraps every repository in its own
// circuit breaker. With MongoDB disabled the in-memory store is used instead.
func InitializeDatabase(cfg config.DatabaseConfig) (*StorageComponents, error) {
	if !cfg.Enabled {
		log.Warn().Msg("MongoDB disabled, using in-memory store; data is lost on restart")
		return newMemoryStorage(), nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	return newMongoStorage(db, cfg), nil
}

func newMemoryStorage() *StorageComponents {
	store := memory.NewStore()
	return &StorageComponents{
		Kits:            store.Kits(),
		Inventory:       store.Inventory(),
		Assignments:     store.Assignments(),
		OrderHistory:    store.OrderHistory(),
		Transactor:      store,
		CircuitBreakers: map[string]*circuitbreaker.CircuitBreaker{},
	}
}

func newMongoStorage(db *repository.MongoDB, cfg config.DatabaseConfig) *StorageComponents {
	breakers := map[string]*circuitbreaker.CircuitBreaker{}
	newBreaker := func(collection string) *circuitbreaker.CircuitBreaker {
		cb := circuitbreaker.New(circuitBreakerConfig(cfg, "mongodb-"+collection))
		breakers["mongodb_"+collection] = cb
		metrics.SetCircuitBreakerState(cb.Name(), int(cb.State()))
		return cb
	}

	return &StorageComponents{
		Kits: repository.NewKitRepositoryWithCircuitBreaker(
			repository.NewKitRepository(db), newBreaker("kits")),
		Inventory: repository.NewInventoryRepositoryWithCircuitBreaker(
			repository.NewInventoryRepository(db), newBreaker("inventory")),
		Assignments: repository.NewAssignmentRepositoryWithCircuitBreaker(
			repository.NewAssignmentRepository(db), newBreaker("assignments")),
		OrderHistory: repository.NewOrderHistoryRepositoryWithCircuitBreaker(
			repository.NewOrderHistoryRepository(db), newBreaker("order_history")),
		Transactor:      db,
		CircuitBreakers: breakers,
		HealthCheck:     db.HealthCheck,
		close:           db.Close,
	}
}

// circuitBreakerConfig counts only infrastructure failures and mirrors every
// state change into the breaker gauge.
func circuitBreakerConfig(cfg config.DatabaseConfig, name string) circuitbreaker.Config {
	return circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        repository.IsInfrastructureError,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn().
				Str("circuit_breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
			metrics.SetCircuitBreakerState(name, int(to))
		},
	}
}
