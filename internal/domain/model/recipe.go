package model

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Material is one named line of a structured recipe or of a kit's flat lists.
// Structured materials are matched to inventory by name; InventoryItemID is only
// set once the kit has been linked to inventory references.
type Material struct {
	Name            string          `bson:"name" json:"name" example:"Resistor"`
	Quantity        decimal.Decimal `bson:"quantity" json:"quantity" swaggertype:"number" example:"5"`
	Unit            string          `bson:"unit" json:"unit" example:"pcs"`
	Notes           string          `bson:"notes,omitempty" json:"notes,omitempty"`
	InventoryItemID string          `bson:"inventory_item_id,omitempty" json:"inventory_item_id,omitempty"`
}

// Container is a pouch or a packet. Both behave the same for requirements.
type Container struct {
	Name      string     `json:"name" example:"Pouch A"`
	Materials []Material `json:"materials"`
}

// PackingStructure is the structured recipe of one kit unit.
type PackingStructure struct {
	Pouches []Container `json:"pouches"`
	Packets []Container `json:"packets"`
}

// Component is a line of the legacy recipe, referencing inventory by id.
type Component struct {
	InventoryItemID string          `bson:"inventory_item_id" json:"inventory_item_id"`
	QuantityPerKit  decimal.Decimal `bson:"quantity_per_kit" json:"quantity_per_kit" swaggertype:"number"`
	Unit            string          `bson:"unit" json:"unit"`
	Notes           string          `bson:"notes,omitempty" json:"notes,omitempty"`
}

// EmptyPackingStructure returns a structure with no containers.
func EmptyPackingStructure() PackingStructure {
	return PackingStructure{Pouches: []Container{}, Packets: []Container{}}
}

// The persisted string keeps the camelCase keys the catalog has always written.
type packingDocument struct {
	Pouches []containerDocument `json:"pouches"`
	Packets []containerDocument `json:"packets"`
}

type containerDocument struct {
	Name      string             `json:"name"`
	Materials []materialDocument `json:"materials"`
}

type materialDocument struct {
	Name            string      `json:"name"`
	Quantity        json.Number `json:"quantity"`
	Unit            string      `json:"unit"`
	Notes           string      `json:"notes,omitempty"`
	InventoryItemID string      `json:"inventoryItemId,omitempty"`
}

// ParsePackingRequirements decodes a kit's stored packing requirements.
// Empty or malformed input yields an empty structure instead of an error;
// kits are routinely saved before their structure is filled in.
func ParsePackingRequirements(raw string) PackingStructure {
	if strings.TrimSpace(raw) == "" {
		return EmptyPackingStructure()
	}

	var doc packingDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return EmptyPackingStructure()
	}

	pouches, ok := decodeContainers(doc.Pouches)
	if !ok {
		return EmptyPackingStructure()
	}
	packets, ok := decodeContainers(doc.Packets)
	if !ok {
		return EmptyPackingStructure()
	}
	return PackingStructure{Pouches: pouches, Packets: packets}
}

func decodeContainers(docs []containerDocument) ([]Container, bool) {
	containers := make([]Container, 0, len(docs))
	for _, d := range docs {
		materials := make([]Material, 0, len(d.Materials))
		for _, m := range d.Materials {
			qty := decimal.Zero
			if m.Quantity != "" {
				parsed, err := decimal.NewFromString(m.Quantity.String())
				if err != nil {
					return nil, false
				}
				qty = parsed
			}
			materials = append(materials, Material{
				Name:            m.Name,
				Quantity:        qty,
				Unit:            m.Unit,
				Notes:           m.Notes,
				InventoryItemID: m.InventoryItemID,
			})
		}
		containers = append(containers, Container{Name: d.Name, Materials: materials})
	}
	return containers, true
}

// StringifyPackingRequirements encodes a structure into the stored string form.
// ParsePackingRequirements(StringifyPackingRequirements(s)) equals s.
func StringifyPackingRequirements(s PackingStructure) string {
	doc := packingDocument{
		Pouches: encodeContainers(s.Pouches),
		Packets: encodeContainers(s.Packets),
	}
	// Only strings and json.Number values: Marshal cannot fail here.
	out, _ := json.Marshal(doc)
	return string(out)
}

func encodeContainers(containers []Container) []containerDocument {
	docs := make([]containerDocument, 0, len(containers))
	for _, c := range containers {
		materials := make([]materialDocument, 0, len(c.Materials))
		for _, m := range c.Materials {
			materials = append(materials, materialDocument{
				Name:            m.Name,
				Quantity:        json.Number(m.Quantity.String()),
				Unit:            m.Unit,
				Notes:           m.Notes,
				InventoryItemID: m.InventoryItemID,
			})
		}
		docs = append(docs, containerDocument{Name: c.Name, Materials: materials})
	}
	return docs
}

// FlattenMaterials lists every pouch material, then every packet material, in order.
// Duplicates are kept; summing them is the caller's job.
func (s PackingStructure) FlattenMaterials() []Material {
	materials := make([]Material, 0)
	for _, c := range s.Pouches {
		materials = append(materials, c.Materials...)
	}
	for _, c := range s.Packets {
		materials = append(materials, c.Materials...)
	}
	return materials
}

// IsEmpty reports whether the structure holds no containers.
func (s PackingStructure) IsEmpty() bool {
	return len(s.Pouches) == 0 && len(s.Packets) == 0
}

// Equal compares two structures by value, using decimal equality for quantities.
func (s PackingStructure) Equal(other PackingStructure) bool {
	return containersEqual(s.Pouches, other.Pouches) && containersEqual(s.Packets, other.Packets)
}

func containersEqual(a, b []Container) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || len(a[i].Materials) != len(b[i].Materials) {
			return false
		}
		for j := range a[i].Materials {
			if !a[i].Materials[j].Equal(b[i].Materials[j]) {
				return false
			}
		}
	}
	return true
}

// Equal compares two materials by value.
func (m Material) Equal(other Material) bool {
	return m.Name == other.Name &&
		m.Quantity.Equal(other.Quantity) &&
		m.Unit == other.Unit &&
		m.Notes == other.Notes &&
		m.InventoryItemID == other.InventoryItemID
}
