package service

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/pkg/jobs"
	"github.com/noah-isme/academy-backoffice-api/pkg/mailer"
)

// DigestJobType identifies payroll digest jobs on the background queue.
const DigestJobType = "payroll_digest"

//go:embed templates/payroll_digest.html
var digestTemplates embed.FS

var digestTemplate = template.Must(template.ParseFS(digestTemplates, "templates/payroll_digest.html"))

type digestAggregator interface {
	Aggregate(ctx context.Context, q models.PayrollQuery) (*models.PayrollReport, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// DigestRequest is the payload of a digest job.
type DigestRequest struct {
	AsOf time.Time
}

type digestRow struct {
	Name    string
	Hours   string
	Regular string
	Private string
	Total   string
}

type digestSection struct {
	Label     string
	StartDate string
	EndDate   string
	Locations []digestRow
	Totals    digestRow
	Anomalies int
}

type digestView struct {
	Subject     string
	GeneratedAt string
	Sections    []digestSection
}

// PayrollDigestService emails the current week and month-to-date payroll per location.
type PayrollDigestService struct {
	payroll    digestAggregator
	sender     mailer.Sender
	queue      jobEnqueuer
	recipients []string
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
}

// NewPayrollDigestService constructs the digest service.
func NewPayrollDigestService(payroll digestAggregator, sender mailer.Sender, queue jobEnqueuer, recipients []string, metrics *MetricsService, logger *zap.Logger) *PayrollDigestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayrollDigestService{
		payroll:    payroll,
		sender:     sender,
		queue:      queue,
		recipients: recipients,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Schedule enqueues a digest for the current time. It is the cron entry point.
func (s *PayrollDigestService) Schedule(ctx context.Context) error {
	if len(s.recipients) == 0 {
		s.logger.Debug("payroll digest skipped: no recipients")
		return nil
	}
	job := jobs.Job{ID: uuid.NewString(), Type: DigestJobType, Payload: DigestRequest{AsOf: s.now().UTC()}}
	if err := s.queue.Enqueue(job); err != nil {
		return fmt.Errorf("enqueue payroll digest: %w", err)
	}
	return nil
}

// HandleJob is the queue handler for DigestJobType.
func (s *PayrollDigestService) HandleJob(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(DigestRequest)
	if !ok {
		return errors.New("payroll digest: unexpected payload")
	}
	_, err := s.Send(ctx, req.AsOf)
	return err
}

// Send builds the digest as of the given instant and emails it.
func (s *PayrollDigestService) Send(ctx context.Context, asOf time.Time) (mailer.Receipt, error) {
	html, subject, err := s.Render(ctx, asOf)
	if err != nil {
		s.metrics.RecordDigest(false)
		return mailer.Receipt{}, err
	}
	receipt, err := s.sender.Send(ctx, mailer.Message{To: s.recipients, Subject: subject, HTML: html})
	s.metrics.RecordDigest(err == nil)
	if err != nil {
		return mailer.Receipt{}, fmt.Errorf("send payroll digest: %w", err)
	}
	s.logger.Info("payroll digest sent", zap.String("message_id", receipt.MessageID), zap.Int("recipients", len(s.recipients)))
	return receipt, nil
}

// Render produces the digest HTML and subject line.
func (s *PayrollDigestService) Render(ctx context.Context, asOf time.Time) (string, string, error) {
	today := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := today.AddDate(0, 0, -isoWeekdayOffset(today))
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	week, err := s.section(ctx, "This week", weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		return "", "", err
	}
	month, err := s.section(ctx, "Month to date", monthStart, today)
	if err != nil {
		return "", "", err
	}

	view := digestView{
		Subject:     fmt.Sprintf("Payroll digest for week of %s", weekStart.Format(dateLayout)),
		GeneratedAt: asOf.UTC().Format(time.RFC1123),
		Sections:    []digestSection{week, month},
	}
	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, view); err != nil {
		return "", "", fmt.Errorf("render payroll digest: %w", err)
	}
	return buf.String(), view.Subject, nil
}

func (s *PayrollDigestService) section(ctx context.Context, label string, start, end time.Time) (digestSection, error) {
	report, err := s.payroll.Aggregate(ctx, models.PayrollQuery{StartDate: start, EndDate: end})
	if err != nil {
		return digestSection{}, err
	}
	sec := digestSection{
		Label:     label,
		StartDate: report.StartDate,
		EndDate:   report.EndDate,
		Totals:    digestRowFrom("All locations", report.Totals),
		Anomalies: len(report.Anomalies),
	}
	for _, loc := range report.Locations {
		sec.Locations = append(sec.Locations, digestRowFrom(loc.LocationName, loc.PayrollTotals))
	}
	return sec, nil
}

func digestRowFrom(name string, t models.PayrollTotals) digestRow {
	return digestRow{
		Name:    name,
		Hours:   t.TotalHours.StringFixed(2),
		Regular: t.RegularPay.StringFixed(2),
		Private: t.PrivatePay.StringFixed(2),
		Total:   t.TotalPay.StringFixed(2),
	}
}
