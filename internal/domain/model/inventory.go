package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a raw, processed or finished material held in stock.
type InventoryItem struct {
	ID           string          `bson:"_id" json:"id" example:"inv-resistor"`
	Name         string          `bson:"name" json:"name" example:"Resistor"`
	Type         string          `bson:"type,omitempty" json:"type,omitempty" example:"raw"`
	Quantity     decimal.Decimal `bson:"quantity" json:"quantity" swaggertype:"number" example:"12"`
	Unit         string          `bson:"unit" json:"unit" example:"pcs"`
	MinimumStock decimal.Decimal `bson:"minimum_stock,omitempty" json:"minimum_stock,omitempty" swaggertype:"number"`
	CreatedAt    time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `bson:"updated_at" json:"updated_at"`
}

// Validate checks the fields required to store an item.
func (i InventoryItem) Validate() error {
	if i.ID == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if i.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if i.Quantity.IsNegative() {
		return &ValidationError{Field: "quantity", Message: "must not be negative"}
	}
	return nil
}

// BelowMinimum reports whether on-hand quantity is under the configured minimum.
func (i InventoryItem) BelowMinimum() bool {
	return !i.MinimumStock.IsZero() && i.Quantity.LessThan(i.MinimumStock)
}
