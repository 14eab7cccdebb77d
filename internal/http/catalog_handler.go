package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/kit-service/internal/domain/dto"
	"github.com/guttosm/kit-service/internal/i18n"
	"github.com/guttosm/kit-service/internal/service"
)

// CatalogHandler serves kits and inventory items.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListKits handles GET /api/kits.
//
// @Summary      List kits
// @Description  Returns every kit with its parsed packing structure, backlog (to_be_made) and stock status.
// @Tags         Kits
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]dto.KitResponse}
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     BearerAuth
// @Router       /api/kits [get]
func (h *CatalogHandler) ListKits(c *gin.Context) {
	builder := NewResponseBuilder(c)

	kits, err := h.catalog.ListKits(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.NewKitResponses(kits))
}

// UpsertKit handles POST /api/kits.
//
// @Summary      Create or update a kit
// @Description  Stores a kit definition. The stock count only applies when the kit is new; stock of an existing kit is never changed here.
// @Tags         Kits
// @Accept       json
// @Produce      json
// @Param        request body dto.KitRequest true "Kit definition"
// @Success      200 {object} dto.SuccessResponse{data=dto.KitResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid body or recipe"
// @Failure      403 {object} dto.ErrorResponse "Operator role not allowed"
// @Security     BearerAuth
// @Router       /api/kits [post]
func (h *CatalogHandler) UpsertKit(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.KitRequest](c)
	if err != nil {
		builder.BadRequest(err)
		return
	}

	kit, structure := req.ToModel()
	saved, err := h.catalog.UpsertKit(c.Request.Context(), service.KitInput{Kit: kit, Structure: structure})
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.Success(http.StatusOK, i18n.SuccessKeyKitSaved, dto.NewKitResponse(*saved))
}

// GetKit handles GET /api/kits/:id.
//
// @Summary      Get a kit
// @Tags         Kits
// @Produce      json
// @Param        id path string true "Kit ID"
// @Success      200 {object} dto.SuccessResponse{data=dto.KitResponse}
// @Failure      404 {object} dto.ErrorResponse "Kit not found"
// @Security     BearerAuth
// @Router       /api/kits/{id} [get]
func (h *CatalogHandler) GetKit(c *gin.Context) {
	builder := NewResponseBuilder(c)

	kit, err := h.catalog.GetKit(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.NewKitResponse(*kit))
}

// LinkMaterials handles POST /api/kits/:id/link-materials.
//
// @Summary      Link kit materials to inventory
// @Description  Stamps inventory item ids onto every recipe material that has none, creating zero-quantity inventory items for names that do not exist yet.
// @Tags         Kits
// @Produce      json
// @Param        id path string true "Kit ID"
// @Success      200 {object} dto.SuccessResponse{data=dto.LinkMaterialsResponse}
// @Failure      404 {object} dto.ErrorResponse "Kit not found"
// @Security     BearerAuth
// @Router       /api/kits/{id}/link-materials [post]
func (h *CatalogHandler) LinkMaterials(c *gin.Context) {
	builder := NewResponseBuilder(c)

	res, err := h.catalog.LinkKitMaterials(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.Success(http.StatusOK, i18n.SuccessKeyMaterialsLinked, dto.LinkMaterialsResponse{
		Kit:          dto.NewKitResponse(res.Kit),
		Linked:       res.Linked,
		CreatedItems: res.CreatedItems,
	})
}

// ListInventory handles GET /api/inventory.
//
// @Summary      List inventory
// @Tags         Inventory
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]dto.InventoryItemResponse}
// @Security     BearerAuth
// @Router       /api/inventory [get]
func (h *CatalogHandler) ListInventory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	items, err := h.catalog.ListInventory(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.NewInventoryResponses(items))
}

// UpsertInventoryItem handles POST /api/inventory.
//
// @Summary      Create or update an inventory item
// @Tags         Inventory
// @Accept       json
// @Produce      json
// @Param        request body dto.InventoryItemRequest true "Inventory item"
// @Success      200 {object} dto.SuccessResponse{data=dto.InventoryItemResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid body"
// @Security     BearerAuth
// @Router       /api/inventory [post]
func (h *CatalogHandler) UpsertInventoryItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.InventoryItemRequest](c)
	if err != nil {
		builder.BadRequest(err)
		return
	}

	item, err := h.catalog.UpsertInventoryItem(c.Request.Context(), req.ToModel())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.Success(http.StatusOK, i18n.SuccessKeyInventorySaved, dto.InventoryItemResponse{
		InventoryItem: *item,
		BelowMinimum:  item.BelowMinimum(),
	})
}
