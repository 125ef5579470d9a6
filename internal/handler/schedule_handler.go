package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
	"github.com/noah-isme/academy-backoffice-api/pkg/response"
)

type scheduleService interface {
	Week(ctx context.Context, locationID, weekStart string) (*dto.WeekScheduleResponse, error)
	CloneWeek(ctx context.Context, actor models.AuthContext, req dto.CloneWeekRequest) (*dto.CloneWeekResponse, error)
}

type assignmentService interface {
	Create(ctx context.Context, actor models.AuthContext, req dto.AssignmentRequest) (*models.ClassAssignment, error)
	Move(ctx context.Context, actor models.AuthContext, id string, req dto.AssignmentRequest) (*models.ClassAssignment, error)
	Delete(ctx context.Context, id string) error
	BulkAssign(ctx context.Context, actor models.AuthContext, req dto.BulkAssignRequest) (*dto.BulkAssignResponse, error)
}

// ScheduleHandler exposes the weekly schedule and coach assignment endpoints.
type ScheduleHandler struct {
	schedule    scheduleService
	assignments assignmentService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(schedule scheduleService, assignments assignmentService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, assignments: assignments}
}

// Week godoc
// @Summary Weekly schedule
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param weekStart query string true "Monday (YYYY-MM-DD)"
// @Param locationId query string false "Location"
// @Success 200 {object} response.Envelope
// @Router /schedule/week [get]
func (h *ScheduleHandler) Week(c *gin.Context) {
	weekStart := strings.TrimSpace(c.Query("weekStart"))
	if weekStart == "" {
		response.Error(c, appErrors.Validation("weekStart is required"))
		return
	}
	week, err := h.schedule.Week(c.Request.Context(), strings.TrimSpace(c.Query("locationId")), weekStart)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, week)
}

// CloneWeek godoc
// @Summary Copy a week's assignments into the following week
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CloneWeekRequest true "Clone request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/clone [post]
func (h *ScheduleHandler) CloneWeek(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.CloneWeekRequest
	if !bindJSON(c, &req, "invalid clone payload") {
		return
	}
	res, err := h.schedule.CloneWeek(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// CreateAssignment godoc
// @Summary Assign a coach to a class occurrence
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.AssignmentRequest true "Assignment"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /assignments [post]
func (h *ScheduleHandler) CreateAssignment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.AssignmentRequest
	if !bindJSON(c, &req, "invalid assignment payload") {
		return
	}
	a, err := h.assignments.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, a)
}

// MoveAssignment godoc
// @Summary Move an assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param payload body dto.AssignmentRequest true "New assignment values"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id} [put]
func (h *ScheduleHandler) MoveAssignment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.AssignmentRequest
	if !bindJSON(c, &req, "invalid assignment payload") {
		return
	}
	a, err := h.assignments.Move(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, a)
}

// DeleteAssignment godoc
// @Summary Remove an assignment
// @Tags Assignments
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /assignments/{id} [delete]
func (h *ScheduleHandler) DeleteAssignment(c *gin.Context) {
	if err := h.assignments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BulkAssign godoc
// @Summary Assign a coach to every matching class in a date range
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.BulkAssignRequest true "Bulk assignment"
// @Success 200 {object} response.Envelope
// @Router /assignments/bulk [post]
func (h *ScheduleHandler) BulkAssign(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.BulkAssignRequest
	if !bindJSON(c, &req, "invalid bulk assignment payload") {
		return
	}
	res, err := h.assignments.BulkAssign(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
