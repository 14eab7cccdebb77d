// Package repository provides persistence for kits, inventory and assignments.
package repository

import (
	"context"
	"time"

	"github.com/guttosm/kit-service/internal/domain/model"
)

// KitRepositoryInterface defines kit persistence. AdjustStock is the only stock writer.
type KitRepositoryInterface interface {
	Upsert(ctx context.Context, kit *model.Kit) error
	FindByID(ctx context.Context, id string) (*model.Kit, error)
	List(ctx context.Context) ([]model.Kit, error)
	// AdjustStock atomically adds delta to the kit's stock count and returns the new value.
	AdjustStock(ctx context.Context, id string, delta int64) (int64, error)
}

// InventoryRepositoryInterface defines inventory persistence.
type InventoryRepositoryInterface interface {
	Upsert(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id string) (*model.InventoryItem, error)
	List(ctx context.Context) ([]model.InventoryItem, error)
}

// AssignmentRepositoryInterface defines persistence of active assignments.
type AssignmentRepositoryInterface interface {
	Insert(ctx context.Context, a *model.Assignment) error
	FindByID(ctx context.Context, id string) (*model.Assignment, error)
	List(ctx context.Context, filter model.AssignmentFilter) ([]model.Assignment, error)
	// Delete removes the assignment and returns it as it was stored.
	Delete(ctx context.Context, id string) (*model.Assignment, error)
	// CompareAndSetStatus moves the status only if it still equals from.
	CompareAndSetStatus(ctx context.Context, id string, from, to model.AssignmentStatus, patch StatusPatch) (*model.Assignment, error)
}

// StatusPatch carries the fields written together with a status change.
type StatusPatch struct {
	UpdatedAt time.Time
	// DispatchedAt is written only when set.
	DispatchedAt *time.Time
}

// OrderHistoryRepositoryInterface stores delivered assignments.
type OrderHistoryRepositoryInterface interface {
	Archive(ctx context.Context, record *model.OrderHistoryRecord) error
	FindByID(ctx context.Context, id string) (*model.OrderHistoryRecord, error)
}

// Transactor runs fn so that every repository call made with the ctx it receives
// commits or aborts together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
