package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/guttosm/kit-service/internal/mocks"
	"github.com/guttosm/kit-service/internal/service"
)

type planningMocks struct {
	kits        *mocks.MockKitRepositoryInterface
	inventory   *mocks.MockInventoryRepositoryInterface
	assignments *mocks.MockAssignmentRepositoryInterface
}

func newPlanning() (*service.PlanningServiceImpl, planningMocks) {
	m := planningMocks{
		kits:        new(mocks.MockKitRepositoryInterface),
		inventory:   new(mocks.MockInventoryRepositoryInterface),
		assignments: new(mocks.MockAssignmentRepositoryInterface),
	}
	return service.NewPlanningService(m.kits, m.inventory, m.assignments, time.UTC), m
}

func planningKit() model.Kit {
	return model.Kit{
		ID:                  "kit-circuit",
		Name:                "Circuit Kit",
		IsStructured:        true,
		PackingRequirements: `{"pouches":[{"name":"A","materials":[{"name":"Resistor","quantity":5,"unit":"pcs"}]}],"packets":[]}`,
	}
}

func planningInventory() []model.InventoryItem {
	return []model.InventoryItem{{ID: "inv-1", Name: "Resistor", Quantity: decimal.NewFromInt(12), Unit: "pcs"}}
}

func TestPlanningService_AssignmentShortages(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(planningMocks)
		wantErr   error
		wantShort string
	}{
		{
			name: "computes against the snapshot",
			setup: func(m planningMocks) {
				kit := planningKit()
				m.assignments.On("FindByID", mock.Anything, "a-1").Return(&model.Assignment{ID: "a-1", KitID: kit.ID, Quantity: 3}, nil)
				m.kits.On("FindByID", mock.Anything, kit.ID).Return(&kit, nil)
				m.inventory.On("List", mock.Anything).Return(planningInventory(), nil)
			},
			wantShort: "3",
		},
		{
			name: "assignment not found",
			setup: func(m planningMocks) {
				m.assignments.On("FindByID", mock.Anything, "a-1").Return(nil, model.ErrAssignmentNotFound)
			},
			wantErr: model.ErrAssignmentNotFound,
		},
		{
			name: "kit not found",
			setup: func(m planningMocks) {
				m.assignments.On("FindByID", mock.Anything, "a-1").Return(&model.Assignment{ID: "a-1", KitID: "gone", Quantity: 1}, nil)
				m.kits.On("FindByID", mock.Anything, "gone").Return(nil, model.ErrKitNotFound)
			},
			wantErr: model.ErrKitNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newPlanning()
			tt.setup(m)

			got, err := svc.AssignmentShortages(context.Background(), "a-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got.Direct, 1)
			assert.Equal(t, tt.wantShort, got.Direct[0].Shortage.String())
		})
	}
}

func TestPlanningService_ProcurementList(t *testing.T) {
	svc, m := newPlanning()
	kit := planningKit()
	created := time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	m.assignments.On("List", mock.Anything, model.AssignmentFilter{}).Return([]model.Assignment{
		{ID: "a-1", KitID: kit.ID, Quantity: 2, Status: model.StatusAssigned, CreatedAt: created},
		{ID: "a-2", KitID: kit.ID, Quantity: 1, Status: model.StatusAssigned, CreatedAt: created},
		{ID: "a-3", KitID: "gone", Quantity: 1, Status: model.StatusAssigned, CreatedAt: created},
	}, nil)
	m.kits.On("List", mock.Anything).Return([]model.Kit{kit}, nil)
	m.inventory.On("List", mock.Anything).Return(planningInventory(), nil)

	list, err := svc.ProcurementList(context.Background(), model.MonthScope("2026-10", nil))

	require.NoError(t, err)
	require.Len(t, list.Summary, 1)
	assert.Equal(t, "15", list.Summary[0].Required.String())
	assert.Equal(t, "3", list.Summary[0].Shortage.String())
	assert.Equal(t, []string{"a-3"}, list.UnknownKitAssignments)
	assert.Equal(t, 2, list.AssignmentCount)
}

func TestPlanningService_ProcurementListLoadFailure(t *testing.T) {
	svc, m := newPlanning()
	errDown := errors.New("server selection timeout")
	m.assignments.On("List", mock.Anything, model.AssignmentFilter{}).Return(nil, errDown)

	_, err := svc.ProcurementList(context.Background(), model.AllPending())

	assert.ErrorIs(t, err, errDown)
	m.kits.AssertNotCalled(t, "List", mock.Anything)
}

func TestPlanningService_ParseScope(t *testing.T) {
	svc, _ := newPlanning()

	scope, err := svc.ParseScope("all", "")
	require.NoError(t, err)
	assert.Equal(t, model.ScopeAll, scope.Kind)

	scope, err = svc.ParseScope("month", "2026-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-02", scope.Month)

	scope, err = svc.ParseScope("", "")
	require.NoError(t, err)
	assert.Equal(t, model.ScopeMonth, scope.Kind)
	assert.Len(t, scope.Month, len(model.MonthLayout))

	_, err = svc.ParseScope("month", "02-2026")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "month", verr.Field)

	_, err = svc.ParseScope("week", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "scope", verr.Field)
}

func TestPlanningService_NotConfigured(t *testing.T) {
	svc := service.NewPlanningService(nil, nil, nil, nil)

	_, err := svc.ProcurementList(context.Background(), model.AllPending())

	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
}
