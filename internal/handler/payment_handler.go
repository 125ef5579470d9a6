package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/pkg/response"
)

type paymentLedgerService interface {
	RecordPayment(ctx context.Context, actor models.AuthContext, req dto.RecordPaymentRequest) (*models.CoachPayment, error)
	UndoPayment(ctx context.Context, id string) error
	IsPaid(ctx context.Context, coachID, periodStart, periodEnd string) (*models.CoachPayment, error)
	Reconcile(ctx context.Context, params dto.PayrollQueryParams) (*dto.ReconciliationResponse, error)
}

// PaymentHandler records what was actually paid to coaches.
type PaymentHandler struct {
	ledger paymentLedgerService
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(ledger paymentLedgerService) *PaymentHandler {
	return &PaymentHandler{ledger: ledger}
}

// Record godoc
// @Summary Record a payment to a coach
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindJSON(c, &req, "invalid payment payload") {
		return
	}
	payment, err := h.ledger.RecordPayment(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}

// Undo godoc
// @Summary Delete a payment row
// @Tags Payments
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 204
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Undo(c *gin.Context) {
	if err := h.ledger.UndoPayment(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Status godoc
// @Summary Whether a coach was paid for an exact period
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param coachId query string true "Coach"
// @Param periodStart query string true "Period start (YYYY-MM-DD)"
// @Param periodEnd query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /payments/status [get]
func (h *PaymentHandler) Status(c *gin.Context) {
	payment, err := h.ledger.IsPaid(c.Request.Context(),
		strings.TrimSpace(c.Query("coachId")),
		strings.TrimSpace(c.Query("periodStart")),
		strings.TrimSpace(c.Query("periodEnd")),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.PaymentStatusResponse{Paid: payment != nil, Payment: payment})
}

// Reconciliation godoc
// @Summary Compare computed pay with recorded payments
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param startDate query string true "Period start (YYYY-MM-DD)"
// @Param endDate query string true "Period end (YYYY-MM-DD)"
// @Param locationId query string false "Limit to coaches who worked at this location; owed stays full-period"
// @Param frequency query string false "weekly, biweekly or monthly"
// @Success 200 {object} response.Envelope
// @Router /payroll/reconciliation [get]
func (h *PaymentHandler) Reconciliation(c *gin.Context) {
	params, ok := bindPayrollQuery(c)
	if !ok {
		return
	}
	report, err := h.ledger.Reconcile(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}
