package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/kit-service/internal/middleware"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// Roles allowed to mutate each area. Reads are open to any authenticated operator.
var (
	catalogWriters    = []string{middleware.RoleAdmin, middleware.RoleWarehouse}
	assignmentWriters = []string{middleware.RoleAdmin, middleware.RoleWarehouse, middleware.RolePlanner}
)

// CatalogRoutes registers kit and inventory routes.
type CatalogRoutes struct {
	handler *CatalogHandler
}

// RegisterRoutes implements RouteGroup.
func (r CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	write := middleware.RequireRole(catalogWriters...)

	kits := rg.Group("/kits")
	kits.GET("", r.handler.ListKits)
	kits.POST("", write, r.handler.UpsertKit)
	kits.GET("/:id", r.handler.GetKit)
	kits.POST("/:id/link-materials", write, r.handler.LinkMaterials)

	rg.GET("/inventory", r.handler.ListInventory)
	rg.POST("/inventory", write, r.handler.UpsertInventoryItem)
}

// AssignmentRoutes registers the assignment lifecycle routes.
type AssignmentRoutes struct {
	handler *AssignmentHandler
}

// RegisterRoutes implements RouteGroup.
func (r AssignmentRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	write := middleware.RequireRole(assignmentWriters...)

	assignments := rg.Group("/assignments")
	assignments.GET("", r.handler.List)
	assignments.POST("", write, r.handler.Create)
	assignments.GET("/:id", r.handler.Get)
	assignments.DELETE("/:id", write, r.handler.Delete)
	assignments.PATCH("/:id/status", write, r.handler.UpdateStatus)
	assignments.GET("/:id/shortages", r.handler.Shortages)
}

// PlanningRoutes registers procurement planning routes.
type PlanningRoutes struct {
	handler *PlanningHandler
}

// RegisterRoutes implements RouteGroup.
func (r PlanningRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/procurement", r.handler.Procurement)
}
