package app

import (
	"github.com/guttosm/kit-service/config"
	"github.com/guttosm/kit-service/internal/messaging"
	"github.com/guttosm/kit-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Catalog     service.CatalogService
	Assignments service.AssignmentService
	Planning    service.PlanningService
}

// InitializeServices builds the domain services on top of storage.
func InitializeServices(storage *StorageComponents, publisher messaging.Publisher, cfg config.PlanningConfig) *ServiceComponents {
	return &ServiceComponents{
		Catalog: service.NewCatalogService(storage.Kits, storage.Inventory),
		Assignments: service.NewAssignmentService(
			storage.Kits,
			storage.Assignments,
			storage.OrderHistory,
			storage.Transactor,
			service.WithPublisher(publisher),
		),
		Planning: service.NewPlanningService(storage.Kits, storage.Inventory, storage.Assignments, cfg.Location()),
	}
}
