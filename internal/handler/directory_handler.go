package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/pkg/response"
)

type directoryService interface {
	Locations(ctx context.Context, includeInactive bool) ([]models.Location, error)
	Coaches(ctx context.Context, actor models.AuthContext, filter models.CoachFilter) ([]models.Coach, error)
}

// DirectoryHandler serves the location and coach lookups used by every screen.
type DirectoryHandler struct {
	service directoryService
}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler(svc directoryService) *DirectoryHandler {
	return &DirectoryHandler{service: svc}
}

// Locations godoc
// @Summary List locations
// @Tags Directory
// @Produce json
// @Security BearerAuth
// @Param includeInactive query bool false "Include closed locations"
// @Success 200 {object} response.Envelope
// @Router /locations [get]
func (h *DirectoryHandler) Locations(c *gin.Context) {
	locations, err := h.service.Locations(c.Request.Context(), queryBool(c, "includeInactive"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, locations)
}

// Coaches godoc
// @Summary List coaches
// @Description Coaches only see themselves.
// @Tags Directory
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or email fragment"
// @Param includeInactive query bool false "Include inactive coaches"
// @Success 200 {object} response.Envelope
// @Router /coaches [get]
func (h *DirectoryHandler) Coaches(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	coaches, err := h.service.Coaches(c.Request.Context(), actor, models.CoachFilter{
		Search:          strings.TrimSpace(c.Query("search")),
		IncludeInactive: queryBool(c, "includeInactive"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, coaches)
}
