package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/guttosm/kit-service/internal/metrics"
	"github.com/guttosm/kit-service/internal/repository"
)

// PlanningService answers shortage questions from fresh snapshots on every call.
type PlanningService interface {
	AssignmentShortages(ctx context.Context, assignmentID string) (*model.ShortageBreakdown, error)
	ProcurementList(ctx context.Context, scope model.Scope) (*model.ProcurementList, error)
	ParseScope(kind, month string) (model.Scope, error)
}

// PlanningServiceImpl implements PlanningService.
type PlanningServiceImpl struct {
	kits        repository.KitRepositoryInterface
	inventory   repository.InventoryRepositoryInterface
	assignments repository.AssignmentRepositoryInterface
	loc         *time.Location
	now         func() time.Time
}

// NewPlanningService creates a planning service. Month keys are computed in loc.
func NewPlanningService(
	kits repository.KitRepositoryInterface,
	inventory repository.InventoryRepositoryInterface,
	assignments repository.AssignmentRepositoryInterface,
	loc *time.Location,
) *PlanningServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &PlanningServiceImpl{
		kits:        kits,
		inventory:   inventory,
		assignments: assignments,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *PlanningServiceImpl) configured() bool {
	return s.kits != nil && s.inventory != nil && s.assignments != nil
}

// ParseScope builds a scope in the service's timezone.
func (s *PlanningServiceImpl) ParseScope(kind, month string) (model.Scope, error) {
	return model.ParseScope(kind, month, s.now(), s.loc)
}

// AssignmentShortages runs the shortage calculator for one assignment.
func (s *PlanningServiceImpl) AssignmentShortages(ctx context.Context, assignmentID string) (*model.ShortageBreakdown, error) {
	if !s.configured() {
		return nil, ErrRepositoryNotConfigured
	}
	a, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	kit, err := s.kits.FindByID(ctx, a.KitID)
	if err != nil {
		return nil, err
	}
	inventory, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	breakdown := CalculateShortages(*a, *kit, NewMaterialResolver(inventory))
	return &breakdown, nil
}

// ProcurementList aggregates every active assignment in scope.
func (s *PlanningServiceImpl) ProcurementList(ctx context.Context, scope model.Scope) (*model.ProcurementList, error) {
	if !s.configured() {
		return nil, ErrRepositoryNotConfigured
	}
	if scope.Kind == model.ScopeMonth && scope.Loc == nil {
		scope.Loc = s.loc
	}
	start := time.Now()

	list, err := s.procurementList(ctx, scope)
	if err != nil {
		metrics.RecordProcurement(time.Since(start), string(scope.Kind), "error", 0)
		return nil, err
	}

	shortageLines := 0
	for _, r := range list.Summary {
		if r.Shortage.IsPositive() {
			shortageLines++
		}
	}
	metrics.RecordProcurement(time.Since(start), string(scope.Kind), "success", shortageLines)

	if len(list.UnknownKitAssignments) > 0 {
		log.Warn().
			Strs("assignment_ids", list.UnknownKitAssignments).
			Msg("Assignments reference kits that no longer exist")
	}
	log.Debug().
		Str("scope", string(scope.Kind)).
		Str("month", scope.Month).
		Int("assignments", list.AssignmentCount).
		Int("materials", len(list.Summary)).
		Int("shortage_lines", shortageLines).
		Msg("Procurement list generated")

	return list, nil
}

func (s *PlanningServiceImpl) procurementList(ctx context.Context, scope model.Scope) (*model.ProcurementList, error) {
	assignments, err := s.assignments.List(ctx, model.AssignmentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}
	kits, err := s.kits.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load kits: %w", err)
	}
	inventory, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	list := GenerateProcurementList(assignments, kits, inventory, scope)
	return &list, nil
}

var _ PlanningService = (*PlanningServiceImpl)(nil)
