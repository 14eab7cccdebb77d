// Package service contains the business logic of the kit service: catalog
// maintenance, the assignment lifecycle and material planning.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/guttosm/kit-service/internal/messaging"
	"github.com/guttosm/kit-service/internal/metrics"
	"github.com/guttosm/kit-service/internal/repository"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// CreateAssignmentInput is the demand recorded by CreateAssignment.
type CreateAssignmentInput struct {
	KitID           string
	ClientID        string
	ClientType      string
	Quantity        int64
	Grade           string
	ProductionMonth string
	BatchID         string
}

// AssignmentResult is an assignment together with the kit stock its mutation left behind.
type AssignmentResult struct {
	Assignment model.Assignment
	// StockCount is the kit stock after the operation. Only meaningful when StockChanged.
	StockCount   int64
	StockChanged bool
}

// AssignmentService is the stock lifecycle manager. It is the only writer of kit stock.
type AssignmentService interface {
	CreateAssignment(ctx context.Context, input CreateAssignmentInput) (*AssignmentResult, error)
	DeleteAssignment(ctx context.Context, id string) (*AssignmentResult, error)
	TransitionStatus(ctx context.Context, id string, to model.AssignmentStatus) (*model.Assignment, error)
	GetAssignment(ctx context.Context, id string) (*model.Assignment, error)
	ListAssignments(ctx context.Context, filter model.AssignmentFilter) ([]model.Assignment, error)
}

// AssignmentOption configures the assignment service.
type AssignmentOption func(*AssignmentServiceImpl)

// WithClock overrides the time source.
func WithClock(now func() time.Time) AssignmentOption {
	return func(s *AssignmentServiceImpl) {
		s.now = now
	}
}

// WithIDGenerator overrides assignment id generation.
func WithIDGenerator(newID func() string) AssignmentOption {
	return func(s *AssignmentServiceImpl) {
		s.newID = newID
	}
}

// WithPublisher sets the lifecycle event publisher.
func WithPublisher(p messaging.Publisher) AssignmentOption {
	return func(s *AssignmentServiceImpl) {
		if p != nil {
			s.publisher = p
		}
	}
}

// AssignmentServiceImpl implements AssignmentService.
type AssignmentServiceImpl struct {
	kits        repository.KitRepositoryInterface
	assignments repository.AssignmentRepositoryInterface
	history     repository.OrderHistoryRepositoryInterface
	tx          repository.Transactor
	publisher   messaging.Publisher
	now         func() time.Time
	newID       func() string
}

// NewAssignmentService creates the stock lifecycle manager.
func NewAssignmentService(
	kits repository.KitRepositoryInterface,
	assignments repository.AssignmentRepositoryInterface,
	history repository.OrderHistoryRepositoryInterface,
	tx repository.Transactor,
	opts ...AssignmentOption,
) *AssignmentServiceImpl {
	s := &AssignmentServiceImpl{
		kits:        kits,
		assignments: assignments,
		history:     history,
		tx:          tx,
		publisher:   messaging.NewNoopPublisher(),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AssignmentServiceImpl) configured() bool {
	return s.kits != nil && s.assignments != nil && s.history != nil && s.tx != nil
}

// CreateAssignment records demand and deducts its quantity from the kit stock in
// one transaction. Stock may go negative; that is a backlog, not an error.
func (s *AssignmentServiceImpl) CreateAssignment(ctx context.Context, input CreateAssignmentInput) (*AssignmentResult, error) {
	if !s.configured() {
		return nil, ErrRepositoryNotConfigured
	}
	if input.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}
	if input.KitID == "" {
		return nil, &model.ValidationError{Field: "kit_id", Message: "is required"}
	}
	if input.ClientID == "" {
		return nil, &model.ValidationError{Field: "client_id", Message: "is required"}
	}

	now := s.now()
	a := model.Assignment{
		ID:              s.newID(),
		KitID:           input.KitID,
		ClientID:        input.ClientID,
		ClientType:      input.ClientType,
		Quantity:        input.Quantity,
		Status:          model.StatusAssigned,
		Grade:           input.Grade,
		ProductionMonth: input.ProductionMonth,
		BatchID:         input.BatchID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var stock int64
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		stock, err = s.kits.AdjustStock(txCtx, a.KitID, -a.Quantity)
		if err != nil {
			return err
		}
		return s.assignments.Insert(txCtx, &a)
	})
	if err != nil {
		metrics.RecordStockMutation("create", "error", a.KitID, 0)
		return nil, fmt.Errorf("could not create assignment: %w", err)
	}
	metrics.RecordStockMutation("create", "success", a.KitID, stock)

	s.logStock("Assignment created", a, stock)
	s.publish(ctx, &messaging.AssignmentEvent{
		Type:         messaging.EventAssignmentCreated,
		AssignmentID: a.ID,
		KitID:        a.KitID,
		Quantity:     a.Quantity,
		Status:       a.Status,
		StockCount:   &stock,
		Assignment:   &a,
		Timestamp:    now,
	})

	return &AssignmentResult{Assignment: a, StockCount: stock, StockChanged: true}, nil
}

// DeleteAssignment removes an assignment. Its quantity returns to the kit stock
// only if the goods had not been dispatched.
func (s *AssignmentServiceImpl) DeleteAssignment(ctx context.Context, id string) (*AssignmentResult, error) {
	if !s.configured() {
		return nil, ErrRepositoryNotConfigured
	}

	var (
		deleted  *model.Assignment
		stock    int64
		restored bool
	)
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.assignments.Delete(txCtx, id)
		if err != nil {
			return err
		}
		restored = deleted.Status.RestoresStockOnDelete()
		if !restored {
			return nil
		}
		stock, err = s.kits.AdjustStock(txCtx, deleted.KitID, deleted.Quantity)
		return err
	})
	if err != nil {
		metrics.RecordStockMutation("delete", "error", "", 0)
		return nil, fmt.Errorf("could not delete assignment: %w", err)
	}

	event := &messaging.AssignmentEvent{
		Type:         messaging.EventAssignmentDeleted,
		AssignmentID: deleted.ID,
		KitID:        deleted.KitID,
		Quantity:     deleted.Quantity,
		Status:       deleted.Status,
		Timestamp:    s.now(),
	}
	if restored {
		metrics.RecordStockMutation("delete", "success", deleted.KitID, stock)
		s.logStock("Assignment deleted, stock restored", *deleted, stock)
		event.StockCount = &stock
	} else {
		metrics.RecordStockMutation("delete", "skipped", deleted.KitID, 0)
		log.Info().
			Str("assignment_id", deleted.ID).
			Str("kit_id", deleted.KitID).
			Str("status", string(deleted.Status)).
			Msg("Assignment deleted after dispatch, stock not restored")
	}
	s.publish(ctx, event)

	return &AssignmentResult{Assignment: *deleted, StockCount: stock, StockChanged: restored}, nil
}

// TransitionStatus moves an assignment one step forward. Stock never moves here.
// Entering delivered archives the assignment into order history.
func (s *AssignmentServiceImpl) TransitionStatus(ctx context.Context, id string, to model.AssignmentStatus) (*model.Assignment, error) {
	if !s.configured() {
		return nil, ErrRepositoryNotConfigured
	}
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStatus, to)
	}

	current, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not update status: %w", err)
	}
	from := current.Status
	if err := from.ValidateTransition(to); err != nil {
		metrics.RecordTransition(string(from), string(to), "rejected")
		log.Warn().
			Str("assignment_id", id).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("Rejected assignment status transition")
		return nil, err
	}

	now := s.now()
	patch := repository.StatusPatch{UpdatedAt: now}
	if to == model.StatusDispatched {
		patch.DispatchedAt = &now
	}

	var updated *model.Assignment
	if to == model.StatusDelivered {
		updated, err = s.deliver(ctx, id, from, patch)
	} else {
		updated, err = s.assignments.CompareAndSetStatus(ctx, id, from, to, patch)
	}
	if err != nil {
		metrics.RecordTransition(string(from), string(to), "error")
		return nil, fmt.Errorf("could not update status: %w", err)
	}
	metrics.RecordTransition(string(from), string(to), "success")

	log.Info().
		Str("assignment_id", id).
		Str("kit_id", updated.KitID).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("Assignment status changed")

	eventType := messaging.EventAssignmentStatusChanged
	if to == model.StatusDelivered {
		eventType = messaging.EventAssignmentDelivered
	}
	s.publish(ctx, &messaging.AssignmentEvent{
		Type:           eventType,
		AssignmentID:   updated.ID,
		KitID:          updated.KitID,
		Quantity:       updated.Quantity,
		Status:         to,
		PreviousStatus: from,
		Assignment:     updated,
		Timestamp:      now,
	})

	return updated, nil
}

func (s *AssignmentServiceImpl) deliver(ctx context.Context, id string, from model.AssignmentStatus, patch repository.StatusPatch) (*model.Assignment, error) {
	var delivered *model.Assignment
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		updated, err := s.assignments.CompareAndSetStatus(txCtx, id, from, model.StatusDelivered, patch)
		if err != nil {
			return err
		}
		record := &model.OrderHistoryRecord{Assignment: *updated, DeliveredAt: patch.UpdatedAt}
		if kit, err := s.kits.FindByID(txCtx, updated.KitID); err == nil {
			record.KitName = kit.Name
		} else if !errors.Is(err, model.ErrKitNotFound) {
			return err
		}
		if err := s.history.Archive(txCtx, record); err != nil {
			return err
		}
		if _, err := s.assignments.Delete(txCtx, id); err != nil {
			return err
		}
		delivered = updated
		return nil
	})
	return delivered, err
}

// GetAssignment returns an active assignment.
func (s *AssignmentServiceImpl) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	if s.assignments == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.assignments.FindByID(ctx, id)
}

// ListAssignments returns active assignments matching filter.
func (s *AssignmentServiceImpl) ListAssignments(ctx context.Context, filter model.AssignmentFilter) ([]model.Assignment, error) {
	if s.assignments == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStatus, filter.Status)
	}
	return s.assignments.List(ctx, filter)
}

func (s *AssignmentServiceImpl) logStock(msg string, a model.Assignment, stock int64) {
	if stock < 0 {
		log.Warn().
			Str("assignment_id", a.ID).
			Str("kit_id", a.KitID).
			Int64("quantity", a.Quantity).
			Int64("stock_count", stock).
			Int64("to_be_made", -stock).
			Msg(msg)
		return
	}
	log.Info().
		Str("assignment_id", a.ID).
		Str("kit_id", a.KitID).
		Int64("quantity", a.Quantity).
		Int64("stock_count", stock).
		Msg(msg)
}

// publish is best effort; the stock change is already committed.
func (s *AssignmentServiceImpl) publish(ctx context.Context, event *messaging.AssignmentEvent) {
	if err := s.publisher.PublishAssignmentEvent(context.WithoutCancel(ctx), event); err != nil {
		metrics.RecordEventPublished(string(event.Type), "error")
		log.Error().
			Err(err).
			Str("assignment_id", event.AssignmentID).
			Str("event_type", string(event.Type)).
			Msg("Failed to publish assignment event")
		return
	}
	metrics.RecordEventPublished(string(event.Type), "success")
}

var _ AssignmentService = (*AssignmentServiceImpl)(nil)
