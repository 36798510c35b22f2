package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
	"github.com/tukarkoin/tukar_koin_app/internal/middleware"
)

// assignmentHandler handles HTTP requests related to assignments.
type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

// newAssignmentHandler creates a new assignmentHandler.
func newAssignmentHandler(as portssvc.AssignmentSvcFacade) *assignmentHandler {
	return &assignmentHandler{
		assignmentService: as,
	}
}

// registerAssignmentRoutes registers routes related to assignments. Lifecycle
// writes are admin-only; cashiers read their own active assignment and
// advance it through updates.
func registerAssignmentRoutes(rg *gin.RouterGroup, assignmentService portssvc.AssignmentSvcFacade) {
	h := newAssignmentHandler(assignmentService)

	adminOnly := middleware.RequireRole(string(domain.RoleAdmin))

	assignments := rg.Group("/assignments")
	{
		assignments.GET("", h.listAssignments)
		assignments.GET("/active", h.getActiveAssignment)
		assignments.GET("/:id", h.getAssignment)
		assignments.POST("", adminOnly, h.createAssignment)
		assignments.PATCH("/:id", h.updateAssignment)
		assignments.POST("/:id/complete", h.completeAssignment)
		assignments.DELETE("/:id", adminOnly, h.deleteAssignment)
	}
}

// listAssignments godoc
// @Summary List assignments
// @Description Retrieves assignments newest first with cursor pagination
// @Tags assignments
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Cursor token from a previous page"
// @Success 200 {object} dto.ListAssignmentsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list assignments"
// @Security BearerAuth
// @Router /assignments [get]
func (h *assignmentHandler) listAssignments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAssignmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAssignments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.assignmentService.ListAssignments(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getAssignment godoc
// @Summary Get an assignment by ID
// @Description Retrieves one assignment including resolved vehicle/cashier/driver names
// @Tags assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 404 {object} map[string]string "Assignment not found"
// @Security BearerAuth
// @Router /assignments/{id} [get]
func (h *assignmentHandler) getAssignment(c *gin.Context) {
	assignment, err := h.assignmentService.GetAssignmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// getActiveAssignment godoc
// @Summary Get the caller's active assignment
// @Description Retrieves the ACTIVE assignment owned by the authenticated cashier
// @Tags assignments
// @Produce json
// @Success 200 {object} dto.AssignmentResponse
// @Failure 404 {object} map[string]string "No active assignment"
// @Security BearerAuth
// @Router /assignments/active [get]
func (h *assignmentHandler) getActiveAssignment(c *gin.Context) {
	callerNik, ok := middleware.GetUserNikFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assignment, err := h.assignmentService.GetActiveAssignmentForCashier(c.Request.Context(), callerNik)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// createAssignment godoc
// @Summary Create a new assignment
// @Description Dispatches a new assignment: the initial float leaves the warehouse and lands on the cashier's balances
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body dto.CreateAssignmentRequest true "Assignment details"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Officer or vehicle already has an active assignment on this date"
// @Failure 500 {object} map[string]string "Failed to create assignment"
// @Security BearerAuth
// @Router /assignments [post]
func (h *assignmentHandler) createAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorNik, ok := middleware.GetUserNikFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), req, creatorNik)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssignmentResponse(assignment))
}

// updateAssignment godoc
// @Summary Update an assignment
// @Description Applies a raw field patch with no stock side effects; used for status transitions and stop advancement
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param assignment body dto.UpdateAssignmentRequest true "Fields to update"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 404 {object} map[string]string "Assignment not found"
// @Security BearerAuth
// @Router /assignments/{id} [patch]
func (h *assignmentHandler) updateAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterNik, ok := middleware.GetUserNikFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assignment, err := h.assignmentService.UpdateAssignment(c.Request.Context(), c.Param("id"), req, updaterNik)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// completeAssignment godoc
// @Summary Complete an assignment
// @Description Returns the remaining stock to the warehouse, debits the cashier's balances and marks the assignment COMPLETED
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param completion body dto.CompleteAssignmentRequest true "Remaining stock brought back"
// @Success 200 {object} dto.CompleteAssignmentResponse
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 409 {object} map[string]string "Assignment already completed"
// @Security BearerAuth
// @Router /assignments/{id}/complete [post]
func (h *assignmentHandler) completeAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CompleteAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CompleteAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterNik, ok := middleware.GetUserNikFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	assignment, returnedStock, err := h.assignmentService.CompleteAssignment(c.Request.Context(), c.Param("id"), req, updaterNik)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CompleteAssignmentResponse{
		Message:       "Assignment completed",
		Assignment:    dto.ToAssignmentResponse(assignment),
		ReturnedStock: returnedStock,
	})
}

// deleteAssignment godoc
// @Summary Delete an assignment
// @Description Hard-deletes an assignment; an ACTIVE assignment's initial stock is unwound back to the warehouse
// @Tags assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Assignment not found"
// @Security BearerAuth
// @Router /assignments/{id} [delete]
func (h *assignmentHandler) deleteAssignment(c *gin.Context) {
	deleterNik, ok := middleware.GetUserNikFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), c.Param("id"), deleterNik); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted"})
}
