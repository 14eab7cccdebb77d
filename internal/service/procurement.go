package service

import (
	"sort"

	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// materialFold accumulates requirements for one material key.
// Shortage is derived from the totals when the fold is finished, never summed.
type materialFold struct {
	order []string
	rows  map[string]*foldRow
}

type foldRow struct {
	record model.ShortageRecord
	kits   map[string]struct{}
}

func newMaterialFold() *materialFold {
	return &materialFold{rows: make(map[string]*foldRow)}
}

func (f *materialFold) add(r model.ShortageRecord) {
	key := nameKey(r.MaterialName)
	row, ok := f.rows[key]
	if !ok {
		// First sighting fixes display name, unit, category and available.
		row = &foldRow{
			record: model.ShortageRecord{
				MaterialName: r.MaterialName,
				Required:     decimal.Zero,
				Available:    r.Available,
				Unit:         r.Unit,
				Category:     r.Category,
			},
			kits: make(map[string]struct{}),
		}
		f.rows[key] = row
		f.order = append(f.order, key)
	}
	row.record.Required = row.record.Required.Add(r.Required)
	for _, k := range r.ContributingKits {
		row.kits[k] = struct{}{}
	}
}

func (f *materialFold) records() []model.ShortageRecord {
	out := make([]model.ShortageRecord, 0, len(f.order))
	for _, key := range f.order {
		row := f.rows[key]
		rec := row.record
		rec.Shortage = model.ShortageOf(rec.Required, rec.Available)
		rec.ContributingKits = make([]string, 0, len(row.kits))
		for k := range row.kits {
			rec.ContributingKits = append(rec.ContributingKits, k)
		}
		sort.Strings(rec.ContributingKits)
		out = append(out, rec)
	}
	return out
}

type kitFold struct {
	breakdown model.KitBreakdown
	materials *materialFold
}

// GenerateProcurementList folds the shortages of every in-scope assignment into a
// global summary keyed by lower-cased material name and a per-kit breakdown.
// It is a pure function of its inputs. Assignments whose kit is missing are
// reported, not folded.
func GenerateProcurementList(assignments []model.Assignment, kits []model.Kit, inventory []model.InventoryItem, scope model.Scope) model.ProcurementList {
	kitsByID := make(map[string]model.Kit, len(kits))
	for _, k := range kits {
		if _, seen := kitsByID[k.ID]; !seen {
			kitsByID[k.ID] = k
		}
	}
	resolver := NewMaterialResolver(inventory)

	summary := newMaterialFold()
	var kitOrder []string
	byKit := make(map[string]*kitFold)
	list := model.ProcurementList{Scope: scope}

	for _, a := range assignments {
		if !scope.Includes(a) {
			continue
		}
		kit, ok := kitsByID[a.KitID]
		if !ok {
			list.UnknownKitAssignments = append(list.UnknownKitAssignments, a.ID)
			continue
		}
		list.AssignmentCount++

		kf, ok := byKit[kit.ID]
		if !ok {
			kf = &kitFold{
				breakdown: model.KitBreakdown{KitID: kit.ID, KitName: kit.Name},
				materials: newMaterialFold(),
			}
			byKit[kit.ID] = kf
			kitOrder = append(kitOrder, kit.ID)
		}
		kf.breakdown.TotalQuantity += a.Quantity
		kf.breakdown.AssignmentCount++

		for _, r := range CalculateShortages(a, kit, resolver).Direct {
			summary.add(r)
			kf.materials.add(r)
		}
	}

	list.Summary = summary.records()
	list.ByKit = make([]model.KitBreakdown, 0, len(kitOrder))
	for _, id := range kitOrder {
		kf := byKit[id]
		kf.breakdown.Materials = kf.materials.records()
		list.ByKit = append(list.ByKit, kf.breakdown)
	}
	return list
}
