package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/guttosm/kit-service/internal/repository"
)

// KitInput is a kit as submitted to the catalog. When Structure is set it replaces
// PackingRequirements and marks the kit as structured.
type KitInput struct {
	Kit       model.Kit
	Structure *model.PackingStructure
}

// LinkResult reports what LinkKitMaterials changed.
type LinkResult struct {
	Kit          model.Kit
	Linked       int
	CreatedItems []model.InventoryItem
}

// CatalogService manages kits and inventory items. It never writes kit stock of
// an existing kit.
type CatalogService interface {
	UpsertKit(ctx context.Context, input KitInput) (*model.Kit, error)
	GetKit(ctx context.Context, id string) (*model.Kit, error)
	ListKits(ctx context.Context) ([]model.Kit, error)
	UpsertInventoryItem(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error)
	ListInventory(ctx context.Context) ([]model.InventoryItem, error)
	LinkKitMaterials(ctx context.Context, kitID string) (*LinkResult, error)
}

// CatalogServiceImpl implements CatalogService.
type CatalogServiceImpl struct {
	kits      repository.KitRepositoryInterface
	inventory repository.InventoryRepositoryInterface
	now       func() time.Time
	newID     func() string
}

// NewCatalogService creates a catalog service.
func NewCatalogService(kits repository.KitRepositoryInterface, inventory repository.InventoryRepositoryInterface) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		kits:      kits,
		inventory: inventory,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// UpsertKit validates and stores a kit. The stock count given here only applies
// when the kit is created.
func (s *CatalogServiceImpl) UpsertKit(ctx context.Context, input KitInput) (*model.Kit, error) {
	if s.kits == nil {
		return nil, ErrRepositoryNotConfigured
	}
	kit := input.Kit
	if input.Structure != nil {
		kit.IsStructured = true
		kit.PackingRequirements = model.StringifyPackingRequirements(*input.Structure)
	}
	if kit.IsStructured && len(kit.Components) > 0 {
		return nil, &model.ValidationError{Field: "components", Message: "structured kits cannot carry legacy components"}
	}
	if err := kit.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	kit.CreatedAt = now
	kit.UpdatedAt = now
	if err := s.kits.Upsert(ctx, &kit); err != nil {
		return nil, fmt.Errorf("failed to save kit: %w", err)
	}
	return s.kits.FindByID(ctx, kit.ID)
}

// GetKit returns a kit by id.
func (s *CatalogServiceImpl) GetKit(ctx context.Context, id string) (*model.Kit, error) {
	if s.kits == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.kits.FindByID(ctx, id)
}

// ListKits returns every kit.
func (s *CatalogServiceImpl) ListKits(ctx context.Context) ([]model.Kit, error) {
	if s.kits == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.kits.List(ctx)
}

// UpsertInventoryItem stores an item, generating an id when missing.
func (s *CatalogServiceImpl) UpsertInventoryItem(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error) {
	if s.inventory == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if item.ID == "" {
		item.ID = s.newID()
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := s.inventory.Upsert(ctx, &item); err != nil {
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}
	return s.inventory.FindByID(ctx, item.ID)
}

// ListInventory returns the inventory snapshot.
func (s *CatalogServiceImpl) ListInventory(ctx context.Context) ([]model.InventoryItem, error) {
	if s.inventory == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.inventory.List(ctx)
}

// LinkKitMaterials stamps an inventory item id on every structured and flat-list
// material of a kit, creating zero-quantity items for names inventory does not know.
// Already linked materials keep their id.
func (s *CatalogServiceImpl) LinkKitMaterials(ctx context.Context, kitID string) (*LinkResult, error) {
	if s.kits == nil || s.inventory == nil {
		return nil, ErrRepositoryNotConfigured
	}
	kit, err := s.kits.FindByID(ctx, kitID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	resolver := NewMaterialResolver(snapshot)

	result := &LinkResult{}
	refs := make(map[string]string)
	link := func(m *model.Material) error {
		if m.InventoryItemID != "" || m.Name == "" {
			return nil
		}
		id, err := s.resolveOrCreateInventoryRef(ctx, m, resolver, refs, result)
		if err != nil {
			return err
		}
		m.InventoryItemID = id
		result.Linked++
		return nil
	}

	if kit.IsStructured {
		structure := kit.Structure()
		for _, containers := range [][]model.Container{structure.Pouches, structure.Packets} {
			for i := range containers {
				for j := range containers[i].Materials {
					if err := link(&containers[i].Materials[j]); err != nil {
						return nil, err
					}
				}
			}
		}
		kit.PackingRequirements = model.StringifyPackingRequirements(structure)
	}
	for _, list := range [][]model.Material{kit.SpareKits, kit.BulkMaterials, kit.Miscellaneous} {
		for i := range list {
			if err := link(&list[i]); err != nil {
				return nil, err
			}
		}
	}

	if result.Linked > 0 {
		kit.UpdatedAt = s.now()
		if err := s.kits.Upsert(ctx, kit); err != nil {
			return nil, fmt.Errorf("failed to save linked kit: %w", err)
		}
		log.Info().
			Str("kit_id", kit.ID).
			Int("linked", result.Linked).
			Int("created_items", len(result.CreatedItems)).
			Msg("Kit materials linked to inventory")
	}
	result.Kit = *kit
	return result, nil
}

// resolveOrCreateInventoryRef matches names exactly as shortage resolution does,
// so a linked material never points at an item its name would not resolve to.
func (s *CatalogServiceImpl) resolveOrCreateInventoryRef(ctx context.Context, m *model.Material, resolver *MaterialResolver, refs map[string]string, result *LinkResult) (string, error) {
	key := nameKey(m.Name)
	if id, ok := refs[key]; ok {
		return id, nil
	}
	if item, ok := resolver.ItemByName(m.Name); ok {
		refs[key] = item.ID
		return item.ID, nil
	}

	now := s.now()
	created := model.InventoryItem{
		ID:        s.newID(),
		Name:      m.Name,
		Type:      "raw",
		Unit:      m.Unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.inventory.Upsert(ctx, &created); err != nil {
		return "", fmt.Errorf("failed to create inventory item %q: %w", m.Name, err)
	}
	refs[key] = created.ID
	result.CreatedItems = append(result.CreatedItems, created)
	return created.ID, nil
}

var _ CatalogService = (*CatalogServiceImpl)(nil)
