package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentStatus_ValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    AssignmentStatus
		to      AssignmentStatus
		wantErr bool
	}{
		{"assigned to in progress", StatusAssigned, StatusInProgress, false},
		{"in progress to transferred", StatusInProgress, StatusTransferredToDispatch, false},
		{"transferred to ready", StatusTransferredToDispatch, StatusReadyForDispatch, false},
		{"ready to dispatched", StatusReadyForDispatch, StatusDispatched, false},
		{"dispatched to delivered", StatusDispatched, StatusDelivered, false},
		{"skip a state", StatusAssigned, StatusTransferredToDispatch, true},
		{"backwards", StatusDispatched, StatusReadyForDispatch, true},
		{"same state", StatusInProgress, StatusInProgress, true},
		{"out of delivered", StatusDelivered, StatusAssigned, true},
		{"unknown target", StatusAssigned, "packed", true},
		{"unknown source", "packed", StatusInProgress, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.from.ValidateTransition(tt.to)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIllegalTransition))
			var te *TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.from, te.From)
			assert.Equal(t, tt.to, te.To)
		})
	}
}

func TestAssignmentStatus_RestoresStockOnDelete(t *testing.T) {
	expected := map[AssignmentStatus]bool{
		StatusAssigned:              true,
		StatusInProgress:            true,
		StatusTransferredToDispatch: true,
		StatusReadyForDispatch:      true,
		StatusDispatched:            false,
		StatusDelivered:             false,
	}
	for _, s := range Statuses() {
		assert.Equal(t, expected[s], s.RestoresStockOnDelete(), string(s))
	}
}

func TestAssignmentStatus_Next(t *testing.T) {
	next, ok := StatusAssigned.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, next)

	_, ok = StatusDelivered.Next()
	assert.False(t, ok)
}

func TestAssignment_MonthKey(t *testing.T) {
	created := time.Date(2026, 9, 30, 23, 30, 0, 0, time.UTC)
	dispatched := time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC)

	a := Assignment{CreatedAt: created}
	assert.Equal(t, "2026-09", a.MonthKey(time.UTC))
	assert.Equal(t, "2026-09", a.MonthKey(nil))

	tokyo := time.FixedZone("UTC+9", 9*60*60)
	assert.Equal(t, "2026-10", a.MonthKey(tokyo))

	a.DispatchedAt = &dispatched
	assert.Equal(t, "2026-11", a.MonthKey(time.UTC))
}

func TestAssignmentFilter_Matches(t *testing.T) {
	a := Assignment{KitID: "k1", Status: StatusAssigned}

	assert.True(t, AssignmentFilter{}.Matches(a))
	assert.True(t, AssignmentFilter{KitID: "k1"}.Matches(a))
	assert.False(t, AssignmentFilter{KitID: "k2"}.Matches(a))
	assert.False(t, AssignmentFilter{Status: StatusDispatched}.Matches(a))
}
