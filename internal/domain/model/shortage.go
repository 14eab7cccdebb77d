package model

import (
	"github.com/shopspring/decimal"
)

// MaterialCategory tells where in a kit a requirement came from.
type MaterialCategory string

const (
	CategoryMainComponent MaterialCategory = "Main Component"
	CategorySpareKit      MaterialCategory = "Spare Kit"
	CategoryBulkMaterial  MaterialCategory = "Bulk Material"
	CategoryMiscellaneous MaterialCategory = "Miscellaneous"
)

// ShortageRecord is derived on every request and never stored.
//
// @Description Requirement of one material against its on-hand quantity
type ShortageRecord struct {
	MaterialName     string           `json:"material_name" example:"Resistor"`
	Required         decimal.Decimal  `json:"required" swaggertype:"number" example:"15"`
	Available        decimal.Decimal  `json:"available" swaggertype:"number" example:"12"`
	Shortage         decimal.Decimal  `json:"shortage" swaggertype:"number" example:"3"`
	Unit             string           `json:"unit" example:"pcs"`
	Category         MaterialCategory `json:"category,omitempty" example:"Main Component"`
	ContributingKits []string         `json:"contributing_kits"`
}

// ShortageOf returns max(0, required - available).
func ShortageOf(required, available decimal.Decimal) decimal.Decimal {
	diff := required.Sub(available)
	if diff.IsPositive() {
		return diff
	}
	return decimal.Zero
}

// ShortageBreakdown is the shortage view of a single assignment.
type ShortageBreakdown struct {
	AssignmentID string           `json:"assignment_id"`
	KitID        string           `json:"kit_id"`
	KitName      string           `json:"kit_name"`
	Quantity     int64            `json:"quantity"`
	Direct       []ShortageRecord `json:"direct"`
}

// KitBreakdown folds the requirements of every in-scope assignment of one kit.
type KitBreakdown struct {
	KitID           string           `json:"kit_id"`
	KitName         string           `json:"kit_name"`
	TotalQuantity   int64            `json:"total_quantity"`
	AssignmentCount int              `json:"assignment_count"`
	Materials       []ShortageRecord `json:"materials"`
}

// ProcurementList is the aggregated material plan for a scope.
//
// @Description Deduplicated material summary plus per-kit breakdown
type ProcurementList struct {
	Scope           Scope            `json:"scope"`
	AssignmentCount int              `json:"assignment_count"`
	Summary         []ShortageRecord `json:"summary"`
	ByKit           []KitBreakdown   `json:"by_kit"`
	// UnknownKitAssignments lists in-scope assignments whose kit is missing.
	UnknownKitAssignments []string `json:"unknown_kit_assignments,omitempty"`
}

// TotalShortage sums the shortage column of the summary.
func (p ProcurementList) TotalShortage() decimal.Decimal {
	total := decimal.Zero
	for _, r := range p.Summary {
		total = total.Add(r.Shortage)
	}
	return total
}
