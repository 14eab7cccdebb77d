package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/kit-service/internal/domain/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func circuitKit() model.Kit {
	structure := model.PackingStructure{
		Pouches: []model.Container{{
			Name:      "Pouch A",
			Materials: []model.Material{{Name: "Resistor", Quantity: dec("5"), Unit: "pcs"}},
		}},
		Packets: []model.Container{},
	}
	return model.Kit{
		ID:                  "kit-circuit",
		Name:                "Circuit Kit",
		IsStructured:        true,
		PackingRequirements: model.StringifyPackingRequirements(structure),
	}
}

func TestMaterialResolver(t *testing.T) {
	resolver := NewMaterialResolver([]model.InventoryItem{
		{ID: "inv-1", Name: "Resistor", Quantity: dec("12")},
		{ID: "inv-2", Name: "RESISTOR", Quantity: dec("99")},
		{ID: "inv-3", Name: "Wire", Quantity: dec("2.5")},
	})

	tests := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"name ignores case", resolver.ByName("resistor"), "12"},
		{"first duplicate wins", resolver.ByName("Resistor"), "12"},
		{"whitespace is significant", resolver.ByName(" Wire"), "0"},
		{"unknown name", resolver.ByName("Capacitor"), "0"},
		{"by id", resolver.ByID("inv-2"), "99"},
		{"unknown id", resolver.ByID("inv-9"), "0"},
		{"linked id preferred", resolver.Material(model.Material{Name: "Resistor", InventoryItemID: "inv-3"}), "2.5"},
		{"stale link falls back to name", resolver.Material(model.Material{Name: "Wire", InventoryItemID: "gone"}), "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.String())
		})
	}

	assert.Equal(t, "Resistor", resolver.ComponentName(model.Component{InventoryItemID: "inv-1"}))
	assert.Equal(t, "inv-9", resolver.ComponentName(model.Component{InventoryItemID: "inv-9"}))
}

func TestCalculateShortages_StructuredKit(t *testing.T) {
	resolver := NewMaterialResolver([]model.InventoryItem{{ID: "inv-1", Name: "Resistor", Quantity: dec("12")}})
	a := model.Assignment{ID: "a-1", KitID: "kit-circuit", Quantity: 2}

	got := CalculateShortages(a, circuitKit(), resolver)

	assert.Equal(t, "a-1", got.AssignmentID)
	assert.Equal(t, "Circuit Kit", got.KitName)
	require.Len(t, got.Direct, 1)
	r := got.Direct[0]
	assert.Equal(t, "Resistor", r.MaterialName)
	assert.Equal(t, "10", r.Required.String())
	assert.Equal(t, "12", r.Available.String())
	assert.Equal(t, "0", r.Shortage.String())
	assert.Equal(t, model.CategoryMainComponent, r.Category)
	assert.Equal(t, []string{"Circuit Kit"}, r.ContributingKits)
}

func TestCalculateShortages_Cases(t *testing.T) {
	inventory := []model.InventoryItem{
		{ID: "inv-res", Name: "Resistor", Quantity: dec("12")},
		{ID: "inv-wire", Name: "Wire", Quantity: dec("1")},
		{ID: "inv-led", Name: "LED", Quantity: dec("3")},
	}

	tests := []struct {
		name     string
		kit      model.Kit
		quantity int64
		want     []model.ShortageRecord
	}{
		{
			name: "legacy components resolve by id",
			kit: model.Kit{
				ID:   "legacy",
				Name: "Legacy Kit",
				Components: []model.Component{
					{InventoryItemID: "inv-led", QuantityPerKit: dec("2"), Unit: "pcs"},
					{InventoryItemID: "inv-missing", QuantityPerKit: dec("1"), Unit: "pcs"},
				},
			},
			quantity: 3,
			want: []model.ShortageRecord{
				{MaterialName: "LED", Required: dec("6"), Available: dec("3"), Shortage: dec("3"), Unit: "pcs", Category: model.CategoryMainComponent},
				{MaterialName: "inv-missing", Required: dec("3"), Available: dec("0"), Shortage: dec("3"), Unit: "pcs", Category: model.CategoryMainComponent},
			},
		},
		{
			name: "flat lists follow the recipe",
			kit: model.Kit{
				ID:            "flat",
				Name:          "Flat Kit",
				SpareKits:     []model.Material{{Name: "Resistor", Quantity: dec("1"), Unit: "pcs"}},
				BulkMaterials: []model.Material{{Name: "wire", Quantity: dec("0.5"), Unit: "m"}},
				Miscellaneous: []model.Material{{Name: "Manual", Quantity: dec("1"), Unit: "pcs"}},
			},
			quantity: 3,
			want: []model.ShortageRecord{
				{MaterialName: "Resistor", Required: dec("3"), Available: dec("12"), Shortage: dec("0"), Unit: "pcs", Category: model.CategorySpareKit},
				{MaterialName: "wire", Required: dec("1.5"), Available: dec("1"), Shortage: dec("0.5"), Unit: "m", Category: model.CategoryBulkMaterial},
				{MaterialName: "Manual", Required: dec("3"), Available: dec("0"), Shortage: dec("3"), Unit: "pcs", Category: model.CategoryMiscellaneous},
			},
		},
		{
			name: "zero requirements are suppressed",
			kit: model.Kit{
				ID:            "zero",
				Name:          "Zero Kit",
				BulkMaterials: []model.Material{{Name: "Wire", Quantity: dec("0"), Unit: "m"}},
			},
			quantity: 5,
			want:     []model.ShortageRecord{},
		},
		{
			name: "duplicate materials are kept",
			kit: model.Kit{
				ID:           "dup",
				Name:         "Dup Kit",
				IsStructured: true,
				PackingRequirements: `{"pouches":[{"name":"A","materials":[{"name":"LED","quantity":1,"unit":"pcs"}]}],` +
					`"packets":[{"name":"B","materials":[{"name":"LED","quantity":1,"unit":"pcs"}]}]}`,
			},
			quantity: 2,
			want: []model.ShortageRecord{
				{MaterialName: "LED", Required: dec("2"), Available: dec("3"), Shortage: dec("0"), Unit: "pcs", Category: model.CategoryMainComponent},
				{MaterialName: "LED", Required: dec("2"), Available: dec("3"), Shortage: dec("0"), Unit: "pcs", Category: model.CategoryMainComponent},
			},
		},
		{
			name: "malformed recipe yields no main components",
			kit: model.Kit{
				ID:                  "broken",
				Name:                "Broken Kit",
				IsStructured:        true,
				PackingRequirements: `{"pouches": [`,
			},
			quantity: 1,
			want:     []model.ShortageRecord{},
		},
	}

	resolver := NewMaterialResolver(inventory)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateShortages(model.Assignment{ID: "a", KitID: tt.kit.ID, Quantity: tt.quantity}, tt.kit, resolver)

			require.Len(t, got.Direct, len(tt.want))
			for i, want := range tt.want {
				r := got.Direct[i]
				assert.Equal(t, want.MaterialName, r.MaterialName)
				assert.True(t, want.Required.Equal(r.Required), "required %s != %s", want.Required, r.Required)
				assert.True(t, want.Available.Equal(r.Available), "available %s != %s", want.Available, r.Available)
				assert.True(t, want.Shortage.Equal(r.Shortage), "shortage %s != %s", want.Shortage, r.Shortage)
				assert.Equal(t, want.Unit, r.Unit)
				assert.Equal(t, want.Category, r.Category)
				assert.Equal(t, []string{tt.kit.Name}, r.ContributingKits)
			}
		})
	}
}

func TestCalculateShortages_DoesNotMutateSnapshot(t *testing.T) {
	snapshot := []model.InventoryItem{{ID: "inv-1", Name: "Resistor", Quantity: dec("12")}}
	resolver := NewMaterialResolver(snapshot)

	CalculateShortages(model.Assignment{ID: "a", Quantity: 100}, circuitKit(), resolver)

	assert.Equal(t, "12", snapshot[0].Quantity.String())
	assert.Equal(t, "12", resolver.ByName("Resistor").String())
}
