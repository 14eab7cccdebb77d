package model

import (
	"fmt"
	"time"
)

// MonthLayout is the YYYY-MM key used for month scopes.
const MonthLayout = "2006-01"

// ScopeKind selects the assignments a procurement run covers.
type ScopeKind string

const (
	ScopeMonth ScopeKind = "month"
	ScopeAll   ScopeKind = "all"
)

// Scope is the selection window of a procurement run.
type Scope struct {
	Kind  ScopeKind      `json:"kind" example:"month"`
	Month string         `json:"month,omitempty" example:"2026-10"`
	Loc   *time.Location `json:"-"`
}

// AllPending covers every active assignment.
func AllPending() Scope {
	return Scope{Kind: ScopeAll}
}

// MonthScope covers assignments whose month key equals month.
func MonthScope(month string, loc *time.Location) Scope {
	return Scope{Kind: ScopeMonth, Month: month, Loc: loc}
}

// ParseScope builds a scope from request parameters.
// An empty kind means month; an empty month means the month of now in loc.
func ParseScope(kind, month string, now time.Time, loc *time.Location) (Scope, error) {
	if loc == nil {
		loc = time.UTC
	}
	switch ScopeKind(kind) {
	case ScopeAll:
		return AllPending(), nil
	case ScopeMonth, "":
		if month == "" {
			return MonthScope(now.In(loc).Format(MonthLayout), loc), nil
		}
		if _, err := time.ParseInLocation(MonthLayout, month, loc); err != nil {
			return Scope{}, &ValidationError{Field: "month", Message: fmt.Sprintf("must be YYYY-MM, got %q", month)}
		}
		return MonthScope(month, loc), nil
	default:
		return Scope{}, &ValidationError{Field: "scope", Message: fmt.Sprintf("must be %q or %q", ScopeMonth, ScopeAll)}
	}
}

// Includes reports whether a belongs to the scope. Delivered assignments are never pending.
func (s Scope) Includes(a Assignment) bool {
	if a.Status == StatusDelivered {
		return false
	}
	if s.Kind == ScopeAll {
		return true
	}
	return a.MonthKey(s.Loc) == s.Month
}
