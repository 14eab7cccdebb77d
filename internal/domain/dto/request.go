// Package dto defines the request and response bodies of the HTTP API.
package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guttosm/kit-service/internal/domain/model"
)

// KitRequest is the body of POST /api/kits.
//
// The recipe is either a packing_structure object or a raw packing_requirements
// string; when both are sent the object wins.
//
// @Description Kit to create or update
type KitRequest struct {
	ID                  string                  `json:"id" binding:"required" example:"kit-circuit"`
	Name                string                  `json:"name" binding:"required" example:"Circuit Kit"`
	ProgramID           string                  `json:"program_id" example:"stem-2026"`
	SerialNumber        string                  `json:"serial_number,omitempty"`
	Category            string                  `json:"category,omitempty" example:"electronics"`
	StockCount          int64                   `json:"stock_count" example:"4"`
	LowStockThreshold   int64                   `json:"low_stock_threshold" example:"2"`
	IsStructured        bool                    `json:"is_structured"`
	PackingStructure    *model.PackingStructure `json:"packing_structure,omitempty"`
	PackingRequirements string                  `json:"packing_requirements,omitempty"`
	Components          []model.Component       `json:"components,omitempty"`
	SpareKits           []model.Material        `json:"spare_kits,omitempty"`
	BulkMaterials       []model.Material        `json:"bulk_materials,omitempty"`
	Miscellaneous       []model.Material        `json:"miscellaneous,omitempty"`
	UnitPrice           decimal.Decimal         `json:"unit_price" swaggertype:"number" example:"49.90"`
} // @name KitRequest

// ToModel converts the request into a kit and its optional structure.
func (r KitRequest) ToModel() (model.Kit, *model.PackingStructure) {
	kit := model.Kit{
		ID:                  strings.TrimSpace(r.ID),
		Name:                r.Name,
		ProgramID:           r.ProgramID,
		SerialNumber:        r.SerialNumber,
		Category:            r.Category,
		StockCount:          r.StockCount,
		LowStockThreshold:   r.LowStockThreshold,
		IsStructured:        r.IsStructured || r.PackingRequirements != "",
		PackingRequirements: r.PackingRequirements,
		Components:          r.Components,
		SpareKits:           r.SpareKits,
		BulkMaterials:       r.BulkMaterials,
		Miscellaneous:       r.Miscellaneous,
		UnitPrice:           r.UnitPrice,
	}
	return kit, r.PackingStructure
}

// InventoryItemRequest is the body of POST /api/inventory.
type InventoryItemRequest struct {
	ID           string          `json:"id,omitempty" example:"inv-resistor"`
	Name         string          `json:"name" binding:"required" example:"Resistor"`
	Type         string          `json:"type,omitempty" example:"raw"`
	Quantity     decimal.Decimal `json:"quantity" swaggertype:"number" example:"12"`
	Unit         string          `json:"unit" example:"pcs"`
	MinimumStock decimal.Decimal `json:"minimum_stock,omitempty" swaggertype:"number" example:"20"`
} // @name InventoryItemRequest

// ToModel converts the request into an inventory item.
func (r InventoryItemRequest) ToModel() model.InventoryItem {
	return model.InventoryItem{
		ID:           strings.TrimSpace(r.ID),
		Name:         r.Name,
		Type:         r.Type,
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		MinimumStock: r.MinimumStock,
	}
}

// CreateAssignmentRequest is the body of POST /api/assignments.
// Quantity is validated by the service so a zero or negative value maps to the
// invalid-quantity error rather than a generic binding failure.
// @Description Demand for N units of a kit
type CreateAssignmentRequest struct {
	KitID           string `json:"kit_id" binding:"required" example:"kit-circuit"`
	ClientID        string `json:"client_id" binding:"required" example:"school-42"`
	ClientType      string `json:"client_type,omitempty" example:"school"`
	Quantity        int64  `json:"quantity" example:"10"`
	Grade           string `json:"grade,omitempty" example:"7"`
	ProductionMonth string `json:"production_month,omitempty" example:"2026-10"`
	BatchID         string `json:"batch_id,omitempty"`
} // @name CreateAssignmentRequest

// UpdateStatusRequest is the body of PATCH /api/assignments/:id/status.
type UpdateStatusRequest struct {
	Status model.AssignmentStatus `json:"status" binding:"required" example:"in_progress"`
} // @name UpdateStatusRequest

// AssignmentListQuery holds the filters of GET /api/assignments.
type AssignmentListQuery struct {
	KitID  string `form:"kit_id"`
	Status string `form:"status"`
}

// Filter converts the query into a repository filter.
func (q AssignmentListQuery) Filter() model.AssignmentFilter {
	return model.AssignmentFilter{KitID: q.KitID, Status: model.AssignmentStatus(q.Status)}
}

// ProcurementQuery holds the scope of GET /api/procurement.
type ProcurementQuery struct {
	Scope string `form:"scope" example:"month"`
	Month string `form:"month" example:"2026-10"`
}
