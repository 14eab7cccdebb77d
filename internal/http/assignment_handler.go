package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/kit-service/internal/domain/dto"
	"github.com/guttosm/kit-service/internal/i18n"
	"github.com/guttosm/kit-service/internal/service"
)

// AssignmentHandler serves the assignment lifecycle and per-assignment shortages.
type AssignmentHandler struct {
	assignments service.AssignmentService
	planning    service.PlanningService
}

// NewAssignmentHandler creates an AssignmentHandler.
func NewAssignmentHandler(assignments service.AssignmentService, planning service.PlanningService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, planning: planning}
}

// List handles GET /api/assignments.
//
// @Summary      List active assignments
// @Description  Delivered assignments live in order history and are not listed.
// @Tags         Assignments
// @Produce      json
// @Param        kit_id query string false "Only assignments of this kit"
// @Param        status query string false "Only assignments in this status"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Assignment}
// @Failure      400 {object} dto.ErrorResponse "Unknown status filter"
// @Security     BearerAuth
// @Router       /api/assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BindQuery[dto.AssignmentListQuery](c)
	if err != nil {
		builder.BadRequest(err)
		return
	}

	list, err := h.assignments.ListAssignments(c.Request.Context(), q.Filter())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(list)
}

// Create handles POST /api/assignments.
//
// @Summary      Create an assignment
// @Description  Records demand for a kit and deducts the quantity from its stock in the same transaction. Stock may go negative; the negative part is the production backlog. Retries with the same Idempotency-Key and body replay the first response.
// @Tags         Assignments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Retry key"
// @Param        request body dto.CreateAssignmentRequest true "Assignment"
// @Success      201 {object} dto.SuccessResponse{data=dto.AssignmentMutationResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid quantity or body"
// @Failure      404 {object} dto.ErrorResponse "Kit not found"
// @Failure      409 {object} dto.ErrorResponse "Same Idempotency-Key still in flight"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     BearerAuth
// @Router       /api/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.CreateAssignmentRequest](c)
	if err != nil {
		builder.BadRequest(err)
		return
	}

	res, err := h.assignments.CreateAssignment(c.Request.Context(), service.CreateAssignmentInput{
		KitID:           req.KitID,
		ClientID:        req.ClientID,
		ClientType:      req.ClientType,
		Quantity:        req.Quantity,
		Grade:           req.Grade,
		ProductionMonth: req.ProductionMonth,
		BatchID:         req.BatchID,
	})
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessCreated(i18n.SuccessKeyAssignmentCreated,
		dto.NewAssignmentMutationResponse(res.Assignment, res.StockCount, res.StockChanged))
}

// Get handles GET /api/assignments/:id.
//
// @Summary      Get an assignment
// @Tags         Assignments
// @Produce      json
// @Param        id path string true "Assignment ID"
// @Success      200 {object} dto.SuccessResponse{data=model.Assignment}
// @Failure      404 {object} dto.ErrorResponse "Assignment not found"
// @Security     BearerAuth
// @Router       /api/assignments/{id} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)

	a, err := h.assignments.GetAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(a)
}

// Delete handles DELETE /api/assignments/:id.
//
// @Summary      Delete an assignment
// @Description  Removes the assignment. Its quantity goes back to kit stock only while the assignment has not been dispatched.
// @Tags         Assignments
// @Produce      json
// @Param        id path string true "Assignment ID"
// @Success      200 {object} dto.SuccessResponse{data=dto.AssignmentMutationResponse}
// @Failure      404 {object} dto.ErrorResponse "Assignment not found"
// @Security     BearerAuth
// @Router       /api/assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	builder := NewResponseBuilder(c)

	res, err := h.assignments.DeleteAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.Success(http.StatusOK, i18n.SuccessKeyAssignmentDeleted,
		dto.NewAssignmentMutationResponse(res.Assignment, res.StockCount, res.StockChanged))
}

// UpdateStatus handles PATCH /api/assignments/:id/status.
//
// @Summary      Advance an assignment
// @Description  Moves the assignment exactly one step forward. Reaching delivered archives it into order history.
// @Tags         Assignments
// @Accept       json
// @Produce      json
// @Param        id path string true "Assignment ID"
// @Param        request body dto.UpdateStatusRequest true "Target status"
// @Success      200 {object} dto.SuccessResponse{data=model.Assignment}
// @Failure      400 {object} dto.ErrorResponse "Unknown status"
// @Failure      409 {object} dto.ErrorResponse "Illegal transition (details.from, details.to) or concurrent update"
// @Security     BearerAuth
// @Router       /api/assignments/{id}/status [patch]
func (h *AssignmentHandler) UpdateStatus(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.UpdateStatusRequest](c)
	if err != nil {
		builder.BadRequest(err)
		return
	}

	a, err := h.assignments.TransitionStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.Success(http.StatusOK, i18n.SuccessKeyStatusUpdated, a)
}

// Shortages handles GET /api/assignments/:id/shortages.
//
// @Summary      Shortage breakdown of an assignment
// @Description  Compares the materials the assignment needs against a fresh inventory snapshot.
// @Tags         Assignments
// @Produce      json
// @Param        id path string true "Assignment ID"
// @Success      200 {object} dto.SuccessResponse{data=model.ShortageBreakdown}
// @Failure      404 {object} dto.ErrorResponse "Assignment or kit not found"
// @Security     BearerAuth
// @Router       /api/assignments/{id}/shortages [get]
func (h *AssignmentHandler) Shortages(c *gin.Context) {
	builder := NewResponseBuilder(c)

	breakdown, err := h.planning.AssignmentShortages(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(breakdown)
}
