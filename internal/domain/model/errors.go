package model

import (
	"errors"
	"fmt"
)

var (
	// ErrKitNotFound is returned when a kit id does not resolve to a stored kit.
	ErrKitNotFound = errors.New("kit not found")
	// ErrAssignmentNotFound is returned when an assignment id does not resolve.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrInventoryItemNotFound is returned when an inventory item id does not resolve.
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	// ErrInvalidQuantity is returned when an assignment quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrUnknownStatus is returned for a status outside the assignment lifecycle.
	ErrUnknownStatus = errors.New("unknown assignment status")
	// ErrIllegalTransition is matched by every *TransitionError.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrStatusConflict is returned when the stored status changed between read and write.
	ErrStatusConflict = errors.New("assignment status changed concurrently")
)

// TransitionError reports a rejected status change.
type TransitionError struct {
	From AssignmentStatus
	To   AssignmentStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move assignment from %q to %q", e.From, e.To)
}

// Is lets errors.Is(err, ErrIllegalTransition) match.
func (e *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// ValidationError represents an invalid field on a domain object.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
