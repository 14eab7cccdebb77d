// Package model defines the core domain entities for the kit service.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus classifies a kit's stock count.
type StockStatus string

const (
	StockBacklog StockStatus = "backlog"
	StockLow     StockStatus = "low"
	StockInStock StockStatus = "in_stock"
)

// Kit is a purchasable unit and the owner of a recipe.
//
// @Description Kit catalog entry with its recipe and signed stock count
type Kit struct {
	ID           string `bson:"_id" json:"id" example:"kit-circuit"`
	Name         string `bson:"name" json:"name" example:"Circuit Kit"`
	ProgramID    string `bson:"program_id" json:"program_id" example:"prog-robotics"`
	SerialNumber string `bson:"serial_number,omitempty" json:"serial_number,omitempty"`
	Category     string `bson:"category,omitempty" json:"category,omitempty"`
	// StockCount is signed; negative means units still to be made.
	StockCount        int64 `bson:"stock_count" json:"stock_count" example:"4"`
	LowStockThreshold int64 `bson:"low_stock_threshold" json:"low_stock_threshold" example:"5"`
	IsStructured      bool  `bson:"is_structured" json:"is_structured"`
	// PackingRequirements holds the serialized PackingStructure when IsStructured is set.
	PackingRequirements string          `bson:"packing_requirements,omitempty" json:"packing_requirements,omitempty"`
	Components          []Component     `bson:"components,omitempty" json:"components,omitempty"`
	SpareKits           []Material      `bson:"spare_kits,omitempty" json:"spare_kits,omitempty"`
	BulkMaterials       []Material      `bson:"bulk_materials,omitempty" json:"bulk_materials,omitempty"`
	Miscellaneous       []Material      `bson:"miscellaneous,omitempty" json:"miscellaneous,omitempty"`
	UnitPrice           decimal.Decimal `bson:"unit_price,omitempty" json:"unit_price" swaggertype:"number"`
	CreatedAt           time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time       `bson:"updated_at" json:"updated_at"`
}

// Structure parses the kit's packing requirements. Legacy kits get an empty structure.
func (k Kit) Structure() PackingStructure {
	if !k.IsStructured {
		return EmptyPackingStructure()
	}
	return ParsePackingRequirements(k.PackingRequirements)
}

// ToBeMade is the backlog implied by a negative stock count.
func (k Kit) ToBeMade() int64 {
	if k.StockCount < 0 {
		return -k.StockCount
	}
	return 0
}

// StockStatus reports backlog for negative stock and low at or below the threshold.
func (k Kit) StockStatus() StockStatus {
	switch {
	case k.StockCount < 0:
		return StockBacklog
	case k.StockCount <= k.LowStockThreshold:
		return StockLow
	default:
		return StockInStock
	}
}

// Validate checks the fields the catalog requires before saving.
func (k Kit) Validate() error {
	if k.ID == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if k.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if k.LowStockThreshold < 0 {
		return &ValidationError{Field: "low_stock_threshold", Message: "must not be negative"}
	}
	for _, c := range k.Components {
		if c.InventoryItemID == "" {
			return &ValidationError{Field: "components", Message: "inventory_item_id is required"}
		}
		if c.QuantityPerKit.IsNegative() {
			return &ValidationError{Field: "components", Message: "quantity_per_kit must not be negative"}
		}
	}
	lists := []struct {
		field     string
		materials []Material
	}{
		{"spare_kits", k.SpareKits},
		{"bulk_materials", k.BulkMaterials},
		{"miscellaneous", k.Miscellaneous},
	}
	for _, l := range lists {
		for _, m := range l.materials {
			if m.Quantity.IsNegative() {
				return &ValidationError{Field: l.field, Message: "quantity must not be negative"}
			}
		}
	}
	return nil
}
