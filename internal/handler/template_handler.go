package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/pkg/response"
)

type classTemplateService interface {
	List(ctx context.Context, filter models.TemplateFilter) ([]models.ClassTemplate, error)
	Get(ctx context.Context, id string) (*models.ClassTemplate, error)
	Create(ctx context.Context, req dto.TemplateRequest) (*models.ClassTemplate, error)
	Update(ctx context.Context, id string, req dto.TemplateRequest) (*models.ClassTemplate, error)
	Deactivate(ctx context.Context, id string) error
	BulkSave(ctx context.Context, req dto.BulkTemplateRequest) ([]models.ClassTemplate, error)
}

// TemplateHandler manages recurring class templates.
type TemplateHandler struct {
	service classTemplateService
}

// NewTemplateHandler constructs the handler.
func NewTemplateHandler(svc classTemplateService) *TemplateHandler {
	return &TemplateHandler{service: svc}
}

// List godoc
// @Summary List class templates
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param locationId query string false "Location"
// @Param discipline query string false "Discipline"
// @Param dayOfWeek query int false "ISO weekday 1-7"
// @Param activeOnly query bool false "Only active templates"
// @Success 200 {object} response.Envelope
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	day, err := queryInt(c, "dayOfWeek")
	if err != nil {
		response.Error(c, err)
		return
	}
	templates, err := h.service.List(c.Request.Context(), models.TemplateFilter{
		LocationID: strings.TrimSpace(c.Query("locationId")),
		Discipline: strings.TrimSpace(c.Query("discipline")),
		DayOfWeek:  day,
		ActiveOnly: queryBool(c, "activeOnly"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, templates)
}

// Get godoc
// @Summary Get a class template
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tpl)
}

// Create godoc
// @Summary Create a class template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.TemplateRequest true "Template"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.TemplateRequest
	if !bindJSON(c, &req, "invalid template payload") {
		return
	}
	tpl, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tpl)
}

// Update godoc
// @Summary Update a class template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param payload body dto.TemplateRequest true "Template"
// @Success 200 {object} response.Envelope
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	var req dto.TemplateRequest
	if !bindJSON(c, &req, "invalid template payload") {
		return
	}
	tpl, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tpl)
}

// Delete godoc
// @Summary Deactivate a class template
// @Description Templates are soft-deleted so past assignments keep pricing.
// @Tags Templates
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BulkSave godoc
// @Summary Create or update many templates at once
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.BulkTemplateRequest true "Templates"
// @Success 200 {object} response.Envelope
// @Router /templates/bulk [post]
func (h *TemplateHandler) BulkSave(c *gin.Context) {
	var req dto.BulkTemplateRequest
	if !bindJSON(c, &req, "invalid bulk template payload") {
		return
	}
	saved, err := h.service.BulkSave(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, saved)
}
