package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/kit-service/internal/domain/model"
)

func TestKitRequest_ToModel(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStructured bool
		wantStructure  bool
	}{
		{
			name:           "structure object",
			body:           `{"id":"k","name":"Kit","packing_structure":{"pouches":[{"name":"A","materials":[{"name":"LED","quantity":2,"unit":"pcs"}]}],"packets":[]}}`,
			wantStructured: false,
			wantStructure:  true,
		},
		{
			name:           "raw string marks the kit structured",
			body:           `{"id":"k","name":"Kit","packing_requirements":"{\"pouches\":[],\"packets\":[]}"}`,
			wantStructured: true,
		},
		{
			name: "legacy components",
			body: `{"id":" k ","name":"Kit","components":[{"inventory_item_id":"inv-1","quantity_per_kit":"0.5","unit":"m"}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req KitRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			kit, structure := req.ToModel()

			assert.Equal(t, "k", kit.ID)
			assert.Equal(t, tt.wantStructured, kit.IsStructured)
			assert.Equal(t, tt.wantStructure, structure != nil)
		})
	}
}

func TestInventoryItemRequest_ToModel(t *testing.T) {
	var req InventoryItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Wire","quantity":7.25,"unit":"m","minimum_stock":"10"}`), &req))

	item := req.ToModel()

	assert.Equal(t, "7.25", item.Quantity.String())
	assert.Equal(t, "10", item.MinimumStock.String())
	assert.True(t, item.BelowMinimum())
}

func TestAssignmentListQuery_Filter(t *testing.T) {
	f := AssignmentListQuery{KitID: "k", Status: "dispatched"}.Filter()

	assert.Equal(t, model.AssignmentFilter{KitID: "k", Status: model.StatusDispatched}, f)
}
