// Package messaging publishes assignment lifecycle events.
package messaging

import (
	"context"
	"time"

	"github.com/guttosm/kit-service/internal/domain/model"
)

// EventType names an assignment lifecycle event.
type EventType string

const (
	EventAssignmentCreated       EventType = "assignment.created"
	EventAssignmentDeleted       EventType = "assignment.deleted"
	EventAssignmentStatusChanged EventType = "assignment.status_changed"
	// EventAssignmentDelivered hands the record to order history consumers.
	EventAssignmentDelivered EventType = "assignment.delivered"
)

// AssignmentEvent is the payload written to the assignments topic.
type AssignmentEvent struct {
	Type           EventType              `json:"type"`
	AssignmentID   string                 `json:"assignment_id"`
	KitID          string                 `json:"kit_id"`
	Quantity       int64                  `json:"quantity"`
	Status         model.AssignmentStatus `json:"status"`
	PreviousStatus model.AssignmentStatus `json:"previous_status,omitempty"`
	// StockCount is the kit stock after the mutation; nil when stock did not move.
	StockCount *int64            `json:"stock_count,omitempty"`
	Assignment *model.Assignment `json:"assignment,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Publisher delivers lifecycle events. Implementations must be safe for concurrent use.
type Publisher interface {
	PublishAssignmentEvent(ctx context.Context, event *AssignmentEvent) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

// NewNoopPublisher returns a publisher used when messaging is disabled.
func NewNoopPublisher() Publisher {
	return NoopPublisher{}
}

func (NoopPublisher) PublishAssignmentEvent(context.Context, *AssignmentEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
