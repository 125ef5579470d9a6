package handler

import (
	"context"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/middleware"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
	"github.com/noah-isme/academy-backoffice-api/pkg/response"
)

type membershipService interface {
	Import(ctx context.Context, actor models.AuthContext, locationID, filename string, body io.Reader) (*dto.MembershipImportResponse, error)
	Dashboard(ctx context.Context, locationID, month string) (*dto.MembershipDashboard, bool, error)
}

// MembershipHandler accepts membership CSV uploads and serves the resulting dashboard.
type MembershipHandler struct {
	service membershipService
}

// NewMembershipHandler constructs the handler.
func NewMembershipHandler(svc membershipService) *MembershipHandler {
	return &MembershipHandler{service: svc}
}

// Import godoc
// @Summary Upload a membership CSV export
// @Tags Memberships
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param locationId formData string true "Location"
// @Param file formData file true "CSV file"
// @Success 201 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /memberships/imports [post]
func (h *MembershipHandler) Import(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	locationID := strings.TrimSpace(c.PostForm("locationId"))
	if locationID == "" {
		response.Error(c, appErrors.Validation("locationId is required"))
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Invalid(err, "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Internal(err, "failed to read upload"))
		return
	}
	defer file.Close()

	res, err := h.service.Import(c.Request.Context(), actor, locationID, header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Dashboard godoc
// @Summary Membership analytics for a location
// @Tags Memberships
// @Produce json
// @Security BearerAuth
// @Param locationId query string true "Location"
// @Param month query string false "Month (YYYY-MM). Defaults to the current month"
// @Success 200 {object} response.Envelope
// @Router /memberships/dashboard [get]
func (h *MembershipHandler) Dashboard(c *gin.Context) {
	dash, cacheHit, err := h.service.Dashboard(c.Request.Context(),
		strings.TrimSpace(c.Query("locationId")),
		strings.TrimSpace(c.Query("month")),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.OK(c, dash, middleware.ExtractMeta(c))
}
