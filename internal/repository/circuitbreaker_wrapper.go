package repository

import (
	"context"
	"errors"

	"github.com/guttosm/kit-service/internal/circuitbreaker"
	"github.com/guttosm/kit-service/internal/domain/model"
)

// IsInfrastructureError reports whether err says something about the database
// rather than about the data. Only those errors count against a circuit.
func IsInfrastructureError(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, model.ErrKitNotFound),
		errors.Is(err, model.ErrAssignmentNotFound),
		errors.Is(err, model.ErrInventoryItemNotFound),
		errors.Is(err, model.ErrStatusConflict),
		errors.Is(err, ErrDuplicateID),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}

func execute[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = fn()
		return cbErr
	})
	return result, err
}

// KitRepositoryWithCircuitBreaker wraps a kit repository with circuit breaker protection.
type KitRepositoryWithCircuitBreaker struct {
	repo           KitRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewKitRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewKitRepositoryWithCircuitBreaker(repo KitRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *KitRepositoryWithCircuitBreaker {
	return &KitRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *KitRepositoryWithCircuitBreaker) Upsert(ctx context.Context, kit *model.Kit) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Upsert(ctx, kit)
	})
}

func (r *KitRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.Kit, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.Kit, error) {
		return r.repo.FindByID(ctx, id)
	})
}

func (r *KitRepositoryWithCircuitBreaker) List(ctx context.Context) ([]model.Kit, error) {
	return execute(ctx, r.circuitBreaker, func() ([]model.Kit, error) {
		return r.repo.List(ctx)
	})
}

func (r *KitRepositoryWithCircuitBreaker) AdjustStock(ctx context.Context, id string, delta int64) (int64, error) {
	return execute(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.AdjustStock(ctx, id, delta)
	})
}

// InventoryRepositoryWithCircuitBreaker wraps an inventory repository with circuit breaker protection.
type InventoryRepositoryWithCircuitBreaker struct {
	repo           InventoryRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewInventoryRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewInventoryRepositoryWithCircuitBreaker(repo InventoryRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *InventoryRepositoryWithCircuitBreaker {
	return &InventoryRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *InventoryRepositoryWithCircuitBreaker) Upsert(ctx context.Context, item *model.InventoryItem) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Upsert(ctx, item)
	})
}

func (r *InventoryRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.InventoryItem, error) {
		return r.repo.FindByID(ctx, id)
	})
}

func (r *InventoryRepositoryWithCircuitBreaker) List(ctx context.Context) ([]model.InventoryItem, error) {
	return execute(ctx, r.circuitBreaker, func() ([]model.InventoryItem, error) {
		return r.repo.List(ctx)
	})
}

// AssignmentRepositoryWithCircuitBreaker wraps an assignment repository with circuit breaker protection.
type AssignmentRepositoryWithCircuitBreaker struct {
	repo           AssignmentRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewAssignmentRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewAssignmentRepositoryWithCircuitBreaker(repo AssignmentRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *AssignmentRepositoryWithCircuitBreaker {
	return &AssignmentRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *AssignmentRepositoryWithCircuitBreaker) Insert(ctx context.Context, a *model.Assignment) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Insert(ctx, a)
	})
}

func (r *AssignmentRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.Assignment, error) {
		return r.repo.FindByID(ctx, id)
	})
}

func (r *AssignmentRepositoryWithCircuitBreaker) List(ctx context.Context, filter model.AssignmentFilter) ([]model.Assignment, error) {
	return execute(ctx, r.circuitBreaker, func() ([]model.Assignment, error) {
		return r.repo.List(ctx, filter)
	})
}

func (r *AssignmentRepositoryWithCircuitBreaker) Delete(ctx context.Context, id string) (*model.Assignment, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.Assignment, error) {
		return r.repo.Delete(ctx, id)
	})
}

func (r *AssignmentRepositoryWithCircuitBreaker) CompareAndSetStatus(ctx context.Context, id string, from, to model.AssignmentStatus, patch StatusPatch) (*model.Assignment, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.Assignment, error) {
		return r.repo.CompareAndSetStatus(ctx, id, from, to, patch)
	})
}

// OrderHistoryRepositoryWithCircuitBreaker wraps an order history repository with circuit breaker protection.
type OrderHistoryRepositoryWithCircuitBreaker struct {
	repo           OrderHistoryRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewOrderHistoryRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewOrderHistoryRepositoryWithCircuitBreaker(repo OrderHistoryRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *OrderHistoryRepositoryWithCircuitBreaker {
	return &OrderHistoryRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *OrderHistoryRepositoryWithCircuitBreaker) Archive(ctx context.Context, record *model.OrderHistoryRecord) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Archive(ctx, record)
	})
}

func (r *OrderHistoryRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.OrderHistoryRecord, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.OrderHistoryRecord, error) {
		return r.repo.FindByID(ctx, id)
	})
}

var (
	_ KitRepositoryInterface          = (*KitRepositoryWithCircuitBreaker)(nil)
	_ InventoryRepositoryInterface    = (*InventoryRepositoryWithCircuitBreaker)(nil)
	_ AssignmentRepositoryInterface   = (*AssignmentRepositoryWithCircuitBreaker)(nil)
	_ OrderHistoryRepositoryInterface = (*OrderHistoryRepositoryWithCircuitBreaker)(nil)
)
