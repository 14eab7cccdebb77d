// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/guttosm/kit-service/internal/repository"
)

type MockKitRepositoryInterface struct {
	mock.Mock
}

func (m *MockKitRepositoryInterface) Upsert(ctx context.Context, kit *model.Kit) error {
	args := m.Called(ctx, kit)
	return args.Error(0)
}

func (m *MockKitRepositoryInterface) FindByID(ctx context.Context, id string) (*model.Kit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Kit), args.Error(1)
}

func (m *MockKitRepositoryInterface) List(ctx context.Context) ([]model.Kit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Kit), args.Error(1)
}

func (m *MockKitRepositoryInterface) AdjustStock(ctx context.Context, id string, delta int64) (int64, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(int64), args.Error(1)
}

type MockInventoryRepositoryInterface struct {
	mock.Mock
}

func (m *MockInventoryRepositoryInterface) Upsert(ctx context.Context, item *model.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepositoryInterface) FindByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepositoryInterface) List(ctx context.Context) ([]model.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryItem), args.Error(1)
}

type MockAssignmentRepositoryInterface struct {
	mock.Mock
}

func (m *MockAssignmentRepositoryInterface) Insert(ctx context.Context, a *model.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepositoryInterface) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepositoryInterface) List(ctx context.Context, filter model.AssignmentFilter) ([]model.Assignment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepositoryInterface) Delete(ctx context.Context, id string) (*model.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepositoryInterface) CompareAndSetStatus(ctx context.Context, id string, from, to model.AssignmentStatus, patch repository.StatusPatch) (*model.Assignment, error) {
	args := m.Called(ctx, id, from, to, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

type MockOrderHistoryRepositoryInterface struct {
	mock.Mock
}

func (m *MockOrderHistoryRepositoryInterface) Archive(ctx context.Context, record *model.OrderHistoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOrderHistoryRepositoryInterface) FindByID(ctx context.Context, id string) (*model.OrderHistoryRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderHistoryRecord), args.Error(1)
}

// MockTransactor runs the callback inline unless an error is configured for WithinTransaction.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

var (
	_ repository.KitRepositoryInterface          = (*MockKitRepositoryInterface)(nil)
	_ repository.InventoryRepositoryInterface    = (*MockInventoryRepositoryInterface)(nil)
	_ repository.AssignmentRepositoryInterface   = (*MockAssignmentRepositoryInterface)(nil)
	_ repository.OrderHistoryRepositoryInterface = (*MockOrderHistoryRepositoryInterface)(nil)
	_ repository.Transactor                      = (*MockTransactor)(nil)
)
