package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

type paymentLedgerRepository interface {
	Create(ctx context.Context, p *models.CoachPayment) error
	Delete(ctx context.Context, id string) error
	FindForPeriod(ctx context.Context, coachID string, start, end time.Time) (*models.CoachPayment, error)
	ListForPeriod(ctx context.Context, coachIDs []string, start, end time.Time) ([]models.CoachPayment, error)
}

type payrollAggregator interface {
	ParseQuery(params dto.PayrollQueryParams) (models.PayrollQuery, error)
	Aggregate(ctx context.Context, q models.PayrollQuery) (*models.PayrollReport, error)
}

// PaymentLedgerService records payments made to coaches. Rows are never checked against computed pay.
type PaymentLedgerService struct {
	repo      paymentLedgerRepository
	payroll   payrollAggregator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPaymentLedgerService constructs the ledger service.
func NewPaymentLedgerService(repo paymentLedgerRepository, payroll payrollAggregator, validate *validator.Validate, logger *zap.Logger) *PaymentLedgerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentLedgerService{repo: repo, payroll: payroll, validator: validate, logger: logger, now: time.Now}
}

// RecordPayment appends a payment row. Double submissions create two rows.
func (s *PaymentLedgerService) RecordPayment(ctx context.Context, actor models.AuthContext, req dto.RecordPaymentRequest) (*models.CoachPayment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid payment payload")
	}
	start, err := parseDate("periodStart", req.PeriodStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("periodEnd", req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	paidOn := s.now().UTC().Truncate(24 * time.Hour)
	if req.PaidOn != "" {
		if paidOn, err = parseDate("paidOn", req.PaidOn); err != nil {
			return nil, err
		}
	}

	payment := &models.CoachPayment{
		CoachID:     req.CoachID,
		PeriodStart: start,
		PeriodEnd:   end,
		Amount:      req.Amount,
		PaidOn:      paidOn,
		Method:      req.Method,
		Notes:       req.Notes,
		RecordedBy:  actorID(actor),
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, appErrors.Internal(err, "failed to record payment")
	}
	s.logger.Info("coach payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("coach_id", payment.CoachID),
		zap.String("period_start", req.PeriodStart),
		zap.String("period_end", req.PeriodEnd),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)
	return payment, nil
}

// UndoPayment deletes a ledger row.
func (s *PaymentLedgerService) UndoPayment(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return appErrors.Internal(err, "failed to delete payment")
	}
	s.logger.Info("coach payment removed", zap.String("payment_id", id))
	return nil
}

// IsPaid returns the latest row whose period boundaries match exactly, or nil when there is none.
func (s *PaymentLedgerService) IsPaid(ctx context.Context, coachID, periodStart, periodEnd string) (*models.CoachPayment, error) {
	if coachID == "" {
		return nil, appErrors.Validation("coachId is required")
	}
	start, err := parseDate("periodStart", periodStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("periodEnd", periodEnd)
	if err != nil {
		return nil, err
	}
	payment, err := s.repo.FindForPeriod(ctx, coachID, start, end)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Internal(err, "failed to load payment")
	}
	return payment, nil
}

// Reconcile compares computed pay with the ledger rows exactly matching the period.
// Ledger rows carry no location, so owed is always the coach's full-period pay. A location
// narrows the report to coaches who worked there and adds their owed share at that location.
func (s *PaymentLedgerService) Reconcile(ctx context.Context, params dto.PayrollQueryParams) (*dto.ReconciliationResponse, error) {
	q, err := s.payroll.ParseQuery(params)
	if err != nil {
		return nil, err
	}
	locationID := q.LocationID
	q.LocationID = ""
	report, err := s.payroll.Aggregate(ctx, q)
	if err != nil {
		return nil, err
	}

	coaches := make([]models.CoachPayroll, 0, len(report.Coaches))
	shares := map[string]decimal.Decimal{}
	for _, cp := range report.Coaches {
		if locationID == "" {
			coaches = append(coaches, cp)
			continue
		}
		for _, loc := range cp.Locations {
			if loc.LocationID == locationID {
				coaches = append(coaches, cp)
				shares[cp.CoachID] = loc.TotalPay
				break
			}
		}
	}

	ids := make([]string, len(coaches))
	for i, cp := range coaches {
		ids[i] = cp.CoachID
	}
	paid := map[string]decimal.Decimal{}
	counts := map[string]int{}
	if len(ids) > 0 {
		payments, err := s.repo.ListForPeriod(ctx, ids, q.StartDate, q.EndDate)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to load payments")
		}
		for _, p := range payments {
			paid[p.CoachID] = paid[p.CoachID].Add(p.Amount)
			counts[p.CoachID]++
		}
	}

	resp := &dto.ReconciliationResponse{
		StartDate:  report.StartDate,
		EndDate:    report.EndDate,
		LocationID: locationID,
		Lines:      make([]dto.ReconciliationLine, 0, len(coaches)),
		Owed:       decimal.Zero,
		Paid:       decimal.Zero,
		Difference: decimal.Zero,
	}
	for _, cp := range coaches {
		line := dto.ReconciliationLine{
			CoachID:    cp.CoachID,
			CoachName:  cp.CoachName,
			Owed:       cp.TotalPay,
			Paid:       paid[cp.CoachID],
			Difference: cp.TotalPay.Sub(paid[cp.CoachID]),
			Payments:   counts[cp.CoachID],
		}
		if share, ok := shares[cp.CoachID]; ok {
			line.LocationOwed = &share
		}
		line.Status = reconciliationStatus(line.Owed, line.Paid)
		resp.Lines = append(resp.Lines, line)
		resp.Owed = resp.Owed.Add(line.Owed)
		resp.Paid = resp.Paid.Add(line.Paid)
	}
	resp.Difference = resp.Owed.Sub(resp.Paid)
	return resp, nil
}

func reconciliationStatus(owed, paid decimal.Decimal) dto.ReconciliationStatus {
	switch {
	case paid.GreaterThan(owed):
		return dto.ReconciliationOverpaid
	case paid.Equal(owed):
		return dto.ReconciliationPaid
	case paid.IsZero():
		return dto.ReconciliationUnpaid
	default:
		return dto.ReconciliationPartial
	}
}
