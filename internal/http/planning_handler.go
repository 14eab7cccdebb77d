package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/kit-service/internal/domain/dto"
	"github.com/guttosm/kit-service/internal/service"
)

// PlanningHandler serves the procurement list.
type PlanningHandler struct {
	planning service.PlanningService
}

// NewPlanningHandler creates a PlanningHandler.
func NewPlanningHandler(planning service.PlanningService) *PlanningHandler {
	return &PlanningHandler{planning: planning}
}

// Procurement handles GET /api/procurement.
//
// @Summary      Procurement list
// @Description  Aggregates material requirements of the assignments in scope against one inventory snapshot. scope=month (default, current month when month is empty) or scope=all (every assignment not yet delivered).
// @Tags         Planning
// @Produce      json
// @Param        scope query string false "month or all" Enums(month, all)
// @Param        month query string false "YYYY-MM"
// @Success      200 {object} dto.SuccessResponse{data=dto.ProcurementResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid scope or month"
// @Failure      504 {object} dto.ErrorResponse "Aggregation timed out"
// @Security     BearerAuth
// @Router       /api/procurement [get]
func (h *PlanningHandler) Procurement(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BindQuery[dto.ProcurementQuery](c)
	if err != nil {
		builder.BadRequest(err)
		return
	}

	scope, err := h.planning.ParseScope(q.Scope, q.Month)
	if err != nil {
		builder.Fail(err)
		return
	}

	list, err := h.planning.ProcurementList(c.Request.Context(), scope)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.NewProcurementResponse(*list))
}
