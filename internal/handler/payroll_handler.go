package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/internal/service"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
	"github.com/noah-isme/academy-backoffice-api/pkg/response"
)

type payrollService interface {
	Summary(ctx context.Context, params dto.PayrollQueryParams) (*dto.PayrollSummaryResponse, error)
	Detailed(ctx context.Context, params dto.PayrollQueryParams) (*dto.PayrollDetailedResponse, error)
	CoachCalendar(ctx context.Context, actor models.AuthContext, coachID, month string) (*dto.CoachCalendarResponse, error)
}

type payrollExportService interface {
	Generate(ctx context.Context, req dto.PayrollExportRequest) (*dto.PayrollExportResponse, error)
	Open(token string) (*service.ExportDownload, error)
}

// PayrollHandler serves computed payroll reports and their file exports.
type PayrollHandler struct {
	payroll payrollService
	exports payrollExportService
}

// NewPayrollHandler constructs the handler.
func NewPayrollHandler(payroll payrollService, exports payrollExportService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll, exports: exports}
}

func bindPayrollQuery(c *gin.Context) (dto.PayrollQueryParams, bool) {
	var params dto.PayrollQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, appErrors.Invalid(err, "invalid payroll query"))
		return params, false
	}
	return params, true
}

// Summary godoc
// @Summary Payroll summary by location
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param startDate query string true "Period start (YYYY-MM-DD)"
// @Param endDate query string true "Period end (YYYY-MM-DD)"
// @Param locationId query string false "Location"
// @Param coachId query []string false "Coach IDs" collectionFormat(multi)
// @Param frequency query string false "weekly, biweekly or monthly"
// @Param excludeRole query string false "Skip coaches with this role tag"
// @Success 200 {object} response.Envelope
// @Router /payroll/summary [get]
func (h *PayrollHandler) Summary(c *gin.Context) {
	params, ok := bindPayrollQuery(c)
	if !ok {
		return
	}
	summary, err := h.payroll.Summary(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Detailed godoc
// @Summary Payroll detail per coach and activity
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param startDate query string true "Period start (YYYY-MM-DD)"
// @Param endDate query string true "Period end (YYYY-MM-DD)"
// @Param locationId query string false "Location"
// @Param coachId query []string false "Coach IDs" collectionFormat(multi)
// @Param frequency query string false "weekly, biweekly or monthly"
// @Param excludeRole query string false "Skip coaches with this role tag"
// @Success 200 {object} response.Envelope
// @Router /payroll/detailed [get]
func (h *PayrollHandler) Detailed(c *gin.Context) {
	params, ok := bindPayrollQuery(c)
	if !ok {
		return
	}
	detail, err := h.payroll.Detailed(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Calendar godoc
// @Summary Monthly pay calendar for one coach
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coach ID"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /payroll/coaches/{id}/calendar [get]
func (h *PayrollHandler) Calendar(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		response.Error(c, appErrors.Validation("month is required"))
		return
	}
	cal, err := h.payroll.CoachCalendar(c.Request.Context(), actor, c.Param("id"), month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cal)
}

// CreateExport godoc
// @Summary Render payroll detail to a downloadable file
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.PayrollExportRequest true "Export request"
// @Success 201 {object} response.Envelope
// @Router /payroll/exports [post]
func (h *PayrollHandler) CreateExport(c *gin.Context) {
	var req dto.PayrollExportRequest
	if !bindJSON(c, &req, "invalid export payload") {
		return
	}
	res, err := h.exports.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, res, nil)
}

// Download godoc
// @Summary Download a generated export
// @Description The token is a signed, expiring reference returned by POST /payroll/exports.
// @Tags Payroll
// @Produce application/octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 410 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *PayrollHandler) Download(c *gin.Context) {
	dl, err := h.exports.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer dl.File.Close()
	response.Attachment(c, dl.Filename, dl.ContentType, dl.Size, dl.File)
}
