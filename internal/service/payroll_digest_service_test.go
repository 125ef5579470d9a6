package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/pkg/jobs"
	"github.com/noah-isme/academy-backoffice-api/pkg/mailer"
)

type stubDigestAggregator struct {
	queries []models.PayrollQuery
}

func (s *stubDigestAggregator) Aggregate(ctx context.Context, q models.PayrollQuery) (*models.PayrollReport, error) {
	s.queries = append(s.queries, q)
	totals := models.PayrollTotals{RegularPay: money("30"), PrivatePay: money("75"), TotalPay: money("105"), TotalHours: money("1")}
	return &models.PayrollReport{
		StartDate: q.StartDate.Format(dateLayout),
		EndDate:   q.EndDate.Format(dateLayout),
		Locations: []models.LocationSubtotal{{LocationID: "loc-1", LocationName: "Downtown & Co", PayrollTotals: totals}},
		Totals:    totals,
		Anomalies: []models.PayrollAnomaly{{AssignmentID: "as-9"}},
	}, nil
}

type captureSender struct {
	sent []mailer.Message
	err  error
}

func (c *captureSender) Send(ctx context.Context, msg mailer.Message) (mailer.Receipt, error) {
	if c.err != nil {
		return mailer.Receipt{}, c.err
	}
	c.sent = append(c.sent, msg)
	return mailer.Receipt{MessageID: "msg-1"}, nil
}

type captureQueue struct {
	jobs []jobs.Job
}

func (q *captureQueue) Enqueue(job jobs.Job) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func TestDigestSendCoversWeekAndMonthToDate(t *testing.T) {
	agg := &stubDigestAggregator{}
	sender := &captureSender{}
	svc := NewPayrollDigestService(agg, sender, &captureQueue{}, []string{"owner@example.com"}, nil, nil)

	receipt, err := svc.Send(context.Background(), time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "msg-1", receipt.MessageID)

	require.Len(t, agg.queries, 2)
	assert.Equal(t, day(2025, 3, 10), agg.queries[0].StartDate)
	assert.Equal(t, day(2025, 3, 16), agg.queries[0].EndDate)
	assert.Equal(t, day(2025, 3, 1), agg.queries[1].StartDate)
	assert.Equal(t, day(2025, 3, 12), agg.queries[1].EndDate)
	assert.Empty(t, agg.queries[0].Selector.CoachIDs)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"owner@example.com"}, msg.To)
	assert.Equal(t, "Payroll digest for week of 2025-03-10", msg.Subject)
	assert.Contains(t, msg.HTML, "Downtown &amp; Co")
	assert.Contains(t, msg.HTML, "105.00")
	assert.Contains(t, msg.HTML, "Month to date (2025-03-01 to 2025-03-12)")
	assert.Contains(t, msg.HTML, "1 assignment(s) excluded")
}

func TestDigestSendFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("provider down")}
	svc := NewPayrollDigestService(&stubDigestAggregator{}, sender, &captureQueue{}, []string{"owner@example.com"}, nil, nil)

	_, err := svc.Send(context.Background(), time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider down")
}

func TestDigestScheduleAndHandle(t *testing.T) {
	queue := &captureQueue{}
	sender := &captureSender{}
	svc := NewPayrollDigestService(&stubDigestAggregator{}, sender, queue, []string{"owner@example.com"}, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 17, 6, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.Schedule(context.Background()))
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, DigestJobType, queue.jobs[0].Type)

	require.NoError(t, svc.HandleJob(context.Background(), queue.jobs[0]))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Payroll digest for week of 2025-03-17", sender.sent[0].Subject)

	assert.Error(t, svc.HandleJob(context.Background(), jobs.Job{Type: DigestJobType, Payload: "nope"}))
}

func TestDigestScheduleWithoutRecipients(t *testing.T) {
	queue := &captureQueue{}
	svc := NewPayrollDigestService(&stubDigestAggregator{}, &captureSender{}, queue, nil, nil, nil)
	require.NoError(t, svc.Schedule(context.Background()))
	assert.Empty(t, queue.jobs)
}
