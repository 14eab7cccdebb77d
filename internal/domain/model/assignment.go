package model

import (
	"time"
)

// AssignmentStatus is a step of the assignment lifecycle.
type AssignmentStatus string

const (
	StatusAssigned              AssignmentStatus = "assigned"
	StatusInProgress            AssignmentStatus = "in_progress"
	StatusTransferredToDispatch AssignmentStatus = "transferred_to_dispatch"
	StatusReadyForDispatch      AssignmentStatus = "ready_for_dispatch"
	StatusDispatched            AssignmentStatus = "dispatched"
	StatusDelivered             AssignmentStatus = "delivered"
)

// lifecycle is the single transition table. Each status may only move to the next entry.
var lifecycle = []AssignmentStatus{
	StatusAssigned,
	StatusInProgress,
	StatusTransferredToDispatch,
	StatusReadyForDispatch,
	StatusDispatched,
	StatusDelivered,
}

var statusRank = func() map[AssignmentStatus]int {
	ranks := make(map[AssignmentStatus]int, len(lifecycle))
	for i, s := range lifecycle {
		ranks[s] = i
	}
	return ranks
}()

// Statuses returns the lifecycle in order.
func Statuses() []AssignmentStatus {
	out := make([]AssignmentStatus, len(lifecycle))
	copy(out, lifecycle)
	return out
}

// Valid reports whether s belongs to the lifecycle.
func (s AssignmentStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Next returns the only legal successor of s.
func (s AssignmentStatus) Next() (AssignmentStatus, bool) {
	rank, ok := statusRank[s]
	if !ok || rank == len(lifecycle)-1 {
		return "", false
	}
	return lifecycle[rank+1], true
}

// ValidateTransition rejects unknown statuses, backward moves, skips and no-op moves.
func (s AssignmentStatus) ValidateTransition(to AssignmentStatus) error {
	if !s.Valid() || !to.Valid() {
		return &TransitionError{From: s, To: to}
	}
	next, ok := s.Next()
	if !ok || next != to {
		return &TransitionError{From: s, To: to}
	}
	return nil
}

// RestoresStockOnDelete is true while goods have not left the building.
func (s AssignmentStatus) RestoresStockOnDelete() bool {
	return statusRank[s] < statusRank[StatusDispatched]
}

// Assignment is demand for N units of a kit.
//
// @Description Assignment of kits to a client moving through the dispatch lifecycle
type Assignment struct {
	ID              string           `bson:"_id" json:"id" example:"b4a2f0a6-0b8f-4f0e-9d9c-8ad1c1f4e1b2"`
	KitID           string           `bson:"kit_id" json:"kit_id" example:"kit-circuit"`
	ClientID        string           `bson:"client_id" json:"client_id" example:"school-42"`
	ClientType      string           `bson:"client_type" json:"client_type" example:"school"`
	Quantity        int64            `bson:"quantity" json:"quantity" example:"2"`
	Status          AssignmentStatus `bson:"status" json:"status" example:"assigned"`
	Grade           string           `bson:"grade,omitempty" json:"grade,omitempty"`
	DispatchedAt    *time.Time       `bson:"dispatched_at,omitempty" json:"dispatched_at,omitempty"`
	ProductionMonth string           `bson:"production_month,omitempty" json:"production_month,omitempty" example:"2026-10"`
	BatchID         string           `bson:"batch_id,omitempty" json:"batch_id,omitempty"`
	CreatedAt       time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `bson:"updated_at" json:"updated_at"`
}

// MonthKey formats the assignment's planning month as YYYY-MM in loc.
// The dispatch time is used when set, otherwise the creation time.
func (a Assignment) MonthKey(loc *time.Location) string {
	ts := a.CreatedAt
	if a.DispatchedAt != nil && !a.DispatchedAt.IsZero() {
		ts = *a.DispatchedAt
	}
	if loc == nil {
		loc = time.UTC
	}
	return ts.In(loc).Format(MonthLayout)
}

// OrderHistoryRecord is an assignment archived after delivery.
type OrderHistoryRecord struct {
	Assignment  `bson:",inline"`
	DeliveredAt time.Time `bson:"delivered_at" json:"delivered_at"`
	KitName     string    `bson:"kit_name,omitempty" json:"kit_name,omitempty"`
}

// AssignmentFilter narrows assignment listings. Empty fields match everything.
type AssignmentFilter struct {
	KitID  string
	Status AssignmentStatus
}

// Matches reports whether a passes the filter.
func (f AssignmentFilter) Matches(a Assignment) bool {
	if f.KitID != "" && a.KitID != f.KitID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}
