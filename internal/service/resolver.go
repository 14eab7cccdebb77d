package service

import (
	"strings"

	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// MaterialResolver answers on-hand quantities against a fixed inventory snapshot.
// It copies what it needs at construction and never writes back to the snapshot.
type MaterialResolver struct {
	byName map[string]model.InventoryItem
	byID   map[string]model.InventoryItem
}

// NewMaterialResolver indexes a snapshot. When two items share a name
// (ignoring case) the first one in the snapshot wins.
func NewMaterialResolver(snapshot []model.InventoryItem) *MaterialResolver {
	r := &MaterialResolver{
		byName: make(map[string]model.InventoryItem, len(snapshot)),
		byID:   make(map[string]model.InventoryItem, len(snapshot)),
	}
	for _, item := range snapshot {
		key := nameKey(item.Name)
		if _, seen := r.byName[key]; !seen {
			r.byName[key] = item
		}
		if _, seen := r.byID[item.ID]; !seen {
			r.byID[item.ID] = item
		}
	}
	return r
}

// nameKey folds case only. Whitespace is significant.
func nameKey(name string) string {
	return strings.ToLower(name)
}

// ByName returns the available quantity for a material name; unknown names have zero.
func (r *MaterialResolver) ByName(name string) decimal.Decimal {
	if item, ok := r.byName[nameKey(name)]; ok {
		return item.Quantity
	}
	return decimal.Zero
}

// ByID returns the available quantity of an inventory item; unknown ids have zero.
func (r *MaterialResolver) ByID(id string) decimal.Decimal {
	if item, ok := r.byID[id]; ok {
		return item.Quantity
	}
	return decimal.Zero
}

// ItemByName looks an inventory item up by name with the same folding as ByName.
func (r *MaterialResolver) ItemByName(name string) (model.InventoryItem, bool) {
	item, ok := r.byName[nameKey(name)]
	return item, ok
}

// Item looks an inventory item up by id.
func (r *MaterialResolver) Item(id string) (model.InventoryItem, bool) {
	item, ok := r.byID[id]
	return item, ok
}

// Material resolves a named material. A linked inventory id is preferred while it
// still exists; otherwise the name match applies.
func (r *MaterialResolver) Material(m model.Material) decimal.Decimal {
	if m.InventoryItemID != "" {
		if item, ok := r.byID[m.InventoryItemID]; ok {
			return item.Quantity
		}
	}
	return r.ByName(m.Name)
}

// ComponentName is the display name of a legacy component: the item's name when
// known, the raw id otherwise.
func (r *MaterialResolver) ComponentName(c model.Component) string {
	if item, ok := r.byID[c.InventoryItemID]; ok && item.Name != "" {
		return item.Name
	}
	return c.InventoryItemID
}
