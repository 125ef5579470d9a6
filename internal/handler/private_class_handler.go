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

type privateClassService interface {
	List(ctx context.Context, q dto.PrivateClassQuery) ([]models.PrivateClassDetail, error)
	Create(ctx context.Context, actor models.AuthContext, req dto.PrivateClassRequest) (*models.PrivateClassEntry, error)
	Update(ctx context.Context, id string, req dto.PrivateClassRequest) (*models.PrivateClassEntry, error)
	Delete(ctx context.Context, id string) error
	SuggestPayout(ctx context.Context, coachID, locationID string) (*dto.PayoutSuggestion, error)
}

type rateService interface {
	CoachRate(ctx context.Context, coachID string) (*models.CoachRate, error)
	SetCoachRate(ctx context.Context, coachID string, req dto.CoachRateRequest) (*models.CoachRate, error)
	PrivateRates(ctx context.Context, locationID string) ([]models.PrivateRate, error)
	SetPrivateRate(ctx context.Context, req dto.PrivateRateRequest) (*models.PrivateRate, error)
}

// PrivateClassHandler handles one-on-one sessions and the rates that price them.
type PrivateClassHandler struct {
	classes privateClassService
	rates   rateService
}

// NewPrivateClassHandler constructs the handler.
func NewPrivateClassHandler(classes privateClassService, rates rateService) *PrivateClassHandler {
	return &PrivateClassHandler{classes: classes, rates: rates}
}

// List godoc
// @Summary List private classes
// @Tags PrivateClasses
// @Produce json
// @Security BearerAuth
// @Param coachId query string false "Coach"
// @Param locationId query string false "Location"
// @Param startDate query string false "From (YYYY-MM-DD)"
// @Param endDate query string false "To (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /private-classes [get]
func (h *PrivateClassHandler) List(c *gin.Context) {
	var q dto.PrivateClassQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Invalid(err, "invalid query"))
		return
	}
	entries, err := h.classes.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// Create godoc
// @Summary Record a private class
// @Tags PrivateClasses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.PrivateClassRequest true "Private class"
// @Success 201 {object} response.Envelope
// @Router /private-classes [post]
func (h *PrivateClassHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.PrivateClassRequest
	if !bindJSON(c, &req, "invalid private class payload") {
		return
	}
	entry, err := h.classes.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update a private class
// @Tags PrivateClasses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Private class ID"
// @Param payload body dto.PrivateClassRequest true "Private class"
// @Success 200 {object} response.Envelope
// @Router /private-classes/{id} [put]
func (h *PrivateClassHandler) Update(c *gin.Context) {
	var req dto.PrivateClassRequest
	if !bindJSON(c, &req, "invalid private class payload") {
		return
	}
	entry, err := h.classes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entry)
}

// Delete godoc
// @Summary Delete a private class
// @Tags PrivateClasses
// @Security BearerAuth
// @Param id path string true "Private class ID"
// @Success 204
// @Router /private-classes/{id} [delete]
func (h *PrivateClassHandler) Delete(c *gin.Context) {
	if err := h.classes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Suggest godoc
// @Summary Suggested payout for a coach at a location
// @Tags PrivateClasses
// @Produce json
// @Security BearerAuth
// @Param coachId query string true "Coach"
// @Param locationId query string true "Location"
// @Success 200 {object} response.Envelope
// @Router /private-classes/suggest [get]
func (h *PrivateClassHandler) Suggest(c *gin.Context) {
	coachID := strings.TrimSpace(c.Query("coachId"))
	locationID := strings.TrimSpace(c.Query("locationId"))
	if coachID == "" || locationID == "" {
		response.Error(c, appErrors.Validation("coachId and locationId are required"))
		return
	}
	suggestion, err := h.classes.SuggestPayout(c.Request.Context(), coachID, locationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, suggestion)
}

// CoachRate godoc
// @Summary Hourly rates for a coach
// @Tags Rates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coach ID"
// @Success 200 {object} response.Envelope
// @Router /rates/coaches/{id} [get]
func (h *PrivateClassHandler) CoachRate(c *gin.Context) {
	rate, err := h.rates.CoachRate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rate)
}

// SetCoachRate godoc
// @Summary Set hourly rates for a coach
// @Tags Rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coach ID"
// @Param payload body dto.CoachRateRequest true "Rates"
// @Success 200 {object} response.Envelope
// @Router /rates/coaches/{id} [put]
func (h *PrivateClassHandler) SetCoachRate(c *gin.Context) {
	var req dto.CoachRateRequest
	if !bindJSON(c, &req, "invalid rate payload") {
		return
	}
	rate, err := h.rates.SetCoachRate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rate)
}

// PrivateRates godoc
// @Summary Private class rates
// @Tags Rates
// @Produce json
// @Security BearerAuth
// @Param locationId query string false "Location"
// @Success 200 {object} response.Envelope
// @Router /rates/private [get]
func (h *PrivateClassHandler) PrivateRates(c *gin.Context) {
	rates, err := h.rates.PrivateRates(c.Request.Context(), strings.TrimSpace(c.Query("locationId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rates)
}

// SetPrivateRate godoc
// @Summary Set a coach's private class rate at a location
// @Tags Rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.PrivateRateRequest true "Rate"
// @Success 200 {object} response.Envelope
// @Router /rates/private [put]
func (h *PrivateClassHandler) SetPrivateRate(c *gin.Context) {
	var req dto.PrivateRateRequest
	if !bindJSON(c, &req, "invalid rate payload") {
		return
	}
	rate, err := h.rates.SetPrivateRate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rate)
}
