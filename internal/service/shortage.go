package service

import (
	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// CalculateShortages expands one assignment into absolute material requirements
// and compares each against the resolver's snapshot. Records are emitted in
// recipe order: primary recipe, spare kits, bulk materials, miscellaneous.
// Duplicates are kept.
func CalculateShortages(a model.Assignment, kit model.Kit, resolver *MaterialResolver) model.ShortageBreakdown {
	units := decimal.NewFromInt(a.Quantity)
	records := make([]model.ShortageRecord, 0)

	emit := func(name, unit string, perUnit, available decimal.Decimal, category model.MaterialCategory) {
		required := perUnit.Mul(units)
		shortage := model.ShortageOf(required, available)
		if !required.IsPositive() && !shortage.IsPositive() {
			return
		}
		records = append(records, model.ShortageRecord{
			MaterialName:     name,
			Required:         required,
			Available:        available,
			Shortage:         shortage,
			Unit:             unit,
			Category:         category,
			ContributingKits: []string{kit.Name},
		})
	}

	if kit.IsStructured {
		for _, m := range kit.Structure().FlattenMaterials() {
			emit(m.Name, m.Unit, m.Quantity, resolver.Material(m), model.CategoryMainComponent)
		}
	} else {
		for _, c := range kit.Components {
			emit(resolver.ComponentName(c), c.Unit, c.QuantityPerKit, resolver.ByID(c.InventoryItemID), model.CategoryMainComponent)
		}
	}

	flat := []struct {
		materials []model.Material
		category  model.MaterialCategory
	}{
		{kit.SpareKits, model.CategorySpareKit},
		{kit.BulkMaterials, model.CategoryBulkMaterial},
		{kit.Miscellaneous, model.CategoryMiscellaneous},
	}
	for _, list := range flat {
		for _, m := range list.materials {
			emit(m.Name, m.Unit, m.Quantity, resolver.Material(m), list.category)
		}
	}

	return model.ShortageBreakdown{
		AssignmentID: a.ID,
		KitID:        kit.ID,
		KitName:      kit.Name,
		Quantity:     a.Quantity,
		Direct:       records,
	}
}
