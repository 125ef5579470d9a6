package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

type stubCoachReader struct {
	coaches      []models.Coach
	err          error
	lastSelector models.CoachSelector
}

func (s *stubCoachReader) ListBySelector(ctx context.Context, selector models.CoachSelector) ([]models.Coach, error) {
	s.lastSelector = selector
	if s.err != nil {
		return nil, s.err
	}
	if len(selector.CoachIDs) == 0 {
		return s.coaches, nil
	}
	want := map[string]bool{}
	for _, id := range selector.CoachIDs {
		want[id] = true
	}
	var out []models.Coach
	for _, c := range s.coaches {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCoachReader) FindByID(ctx context.Context, id string) (*models.Coach, error) {
	for i := range s.coaches {
		if s.coaches[i].ID == id {
			return &s.coaches[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

type stubAssignmentReader struct {
	rows      []models.AssignmentDetail
	err       error
	calls     int
	lastRange models.ActivityRange
}

func (s *stubAssignmentReader) ListRange(ctx context.Context, rng models.ActivityRange) ([]models.AssignmentDetail, error) {
	s.calls++
	s.lastRange = rng
	return s.rows, s.err
}

type stubPrivateReader struct {
	rows []models.PrivateClassDetail
	err  error
}

func (s *stubPrivateReader) ListRange(ctx context.Context, rng models.ActivityRange) ([]models.PrivateClassDetail, error) {
	if s.err != nil || rng.LocationID == "" {
		return s.rows, s.err
	}
	var out []models.PrivateClassDetail
	for _, row := range s.rows {
		if row.LocationID == rng.LocationID {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubRateReader struct {
	rates []models.CoachRate
}

func (s *stubRateReader) ListCoachRates(ctx context.Context, coachIDs []string) ([]models.CoachRate, error) {
	return s.rates, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "want %s, got %s", want, got.String())
}

func assignment(id, coachID string, date time.Time, role models.AssignmentRole, start, end string) models.AssignmentDetail {
	return models.AssignmentDetail{
		ClassAssignment: models.ClassAssignment{ID: id, CoachID: coachID, TemplateID: "tpl-" + id, ClassDate: date, Role: role},
		LocationID:      "loc-1",
		LocationName:    "Downtown",
		Discipline:      "BJJ",
		StartTime:       start,
		EndTime:         end,
	}
}

func private(id, coachID string, date time.Time, clock *string, payout string) models.PrivateClassDetail {
	return models.PrivateClassDetail{
		PrivateClassEntry: models.PrivateClassEntry{ID: id, CoachID: coachID, LocationID: "loc-1", StudentLabel: "J. Doe", ClassDate: date, ClassTime: clock, Payout: money(payout)},
		LocationName:      "Downtown",
	}
}

func strPtr(s string) *string { return &s }

type payrollFixture struct {
	coaches     *stubCoachReader
	assignments *stubAssignmentReader
	privates    *stubPrivateReader
	rates       *stubRateReader
	logs        *observer.ObservedLogs
	svc         *PayrollService
}

func newPayrollFixture() *payrollFixture {
	core, logs := observer.New(zapcore.WarnLevel)
	f := &payrollFixture{
		coaches: &stubCoachReader{coaches: []models.Coach{
			{ID: "coach-1", FullName: "Ana Silva", PaymentFrequency: models.PaymentWeekly},
		}},
		assignments: &stubAssignmentReader{},
		privates:    &stubPrivateReader{},
		rates:       &stubRateReader{rates: []models.CoachRate{{CoachID: "coach-1", HeadRate: money("30"), HelperRate: money("20")}}},
		logs:        logs,
	}
	f.svc = NewPayrollService(f.coaches, f.assignments, f.privates, f.rates, nil, nil, zap.New(core))
	return f
}

func (f *payrollFixture) run(t *testing.T) *models.PayrollReport {
	t.Helper()
	report, err := f.svc.Aggregate(context.Background(), models.PayrollQuery{StartDate: day(2025, 3, 3), EndDate: day(2025, 3, 9)})
	require.NoError(t, err)
	return report
}

func TestPricedHours(t *testing.T) {
	cases := map[string]string{"0.25": "1", "0.5": "1", "1": "1", "1.5": "1.5", "2": "2"}
	for raw, want := range cases {
		assertMoney(t, want, PricedHours(money(raw)))
	}
	assert.True(t, PricedHours(decimal.Zero).IsZero())
}

func TestClassHours(t *testing.T) {
	h, err := ClassHours("18:00", "18:30")
	require.NoError(t, err)
	assertMoney(t, "0.5", h)

	h, err = ClassHours("18:00:00", "19:30:00")
	require.NoError(t, err)
	assertMoney(t, "1.5", h)

	_, err = ClassHours("19:00", "18:00")
	assert.ErrorIs(t, err, errNonPositiveSession)
	_, err = ClassHours("18:00", "18:00")
	assert.ErrorIs(t, err, errNonPositiveSession)
	_, err = ClassHours("six pm", "19:00")
	assert.ErrorIs(t, err, errInvalidClassTime)
}

func TestResolveHourlyRate(t *testing.T) {
	rate := &models.CoachRate{HeadRate: money("30"), HelperRate: money("20")}
	assertMoney(t, "30", ResolveHourlyRate(rate, models.AssignmentHead))
	assertMoney(t, "20", ResolveHourlyRate(rate, models.AssignmentHelper))
	assert.True(t, ResolveHourlyRate(nil, models.AssignmentHead).IsZero())
}

func TestAggregateHeadHalfHourBilledAsOneHour(t *testing.T) {
	f := newPayrollFixture()
	f.assignments.rows = []models.AssignmentDetail{assignment("a1", "coach-1", day(2025, 3, 4), models.AssignmentHead, "18:00:00", "18:30:00")}

	report := f.run(t)
	require.Len(t, report.Coaches, 1)
	cp := report.Coaches[0]
	require.Len(t, cp.Activities, 1)
	assertMoney(t, "1", cp.Activities[0].Hours)
	assertMoney(t, "30.00", cp.Activities[0].Pay)
	assertMoney(t, "30.00", cp.RegularPay)
	assertMoney(t, "1", cp.TotalHours)
}

func TestAggregateHelperTwoHours(t *testing.T) {
	f := newPayrollFixture()
	f.assignments.rows = []models.AssignmentDetail{assignment("a1", "coach-1", day(2025, 3, 5), models.AssignmentHelper, "10:00", "12:00")}

	cp := f.run(t).Coaches[0]
	assertMoney(t, "40", cp.TotalPay)
	assertMoney(t, "2", cp.TotalHours)
	assert.Equal(t, "10:00", cp.Activities[0].Time)
}

func TestAggregateMissingRatePaysZero(t *testing.T) {
	f := newPayrollFixture()
	f.rates.rates = nil
	f.assignments.rows = []models.AssignmentDetail{assignment("a1", "coach-1", day(2025, 3, 4), models.AssignmentHead, "18:00", "19:00")}

	cp := f.run(t).Coaches[0]
	assert.True(t, cp.TotalPay.IsZero())
	assertMoney(t, "1", cp.TotalHours)
}

func TestAggregatePrivateOnly(t *testing.T) {
	f := newPayrollFixture()
	f.privates.rows = []models.PrivateClassDetail{private("p1", "coach-1", day(2025, 3, 6), nil, "75")}

	cp := f.run(t).Coaches[0]
	assert.True(t, cp.RegularPay.IsZero())
	assertMoney(t, "75", cp.PrivatePay)
	assertMoney(t, "75", cp.TotalPay)
	assert.True(t, cp.TotalHours.IsZero())
}

func TestAggregateTotalsAddUp(t *testing.T) {
	f := newPayrollFixture()
	f.coaches.coaches = append(f.coaches.coaches, models.Coach{ID: "coach-2", FullName: "Bruno Costa"})
	f.rates.rates = append(f.rates.rates, models.CoachRate{CoachID: "coach-2", HeadRate: money("25.50"), HelperRate: money("15")})
	uptown := assignment("a3", "coach-2", day(2025, 3, 7), models.AssignmentHelper, "07:00", "08:15")
	uptown.LocationID, uptown.LocationName = "loc-2", "Uptown"
	f.assignments.rows = []models.AssignmentDetail{
		assignment("a1", "coach-1", day(2025, 3, 4), models.AssignmentHead, "18:00", "19:30"),
		assignment("a2", "coach-2", day(2025, 3, 4), models.AssignmentHead, "18:00", "19:00"),
		uptown,
	}
	f.privates.rows = []models.PrivateClassDetail{
		private("p1", "coach-1", day(2025, 3, 6), strPtr("12:00:00"), "60.25"),
		private("p2", "coach-2", day(2025, 3, 8), nil, "40"),
	}

	report := f.run(t)
	sum := decimal.Zero
	for _, cp := range report.Coaches {
		assert.True(t, cp.TotalPay.Equal(cp.RegularPay.Add(cp.PrivatePay)))
		sum = sum.Add(cp.TotalPay)
	}
	assert.True(t, report.Totals.TotalPay.Equal(sum))
	assert.True(t, report.Totals.TotalPay.Equal(report.Totals.RegularPay.Add(report.Totals.PrivatePay)))

	// 45 + 60.25 + 25.50 + 18.75 + 40
	assertMoney(t, "189.5", report.Totals.TotalPay)

	require.Len(t, report.Locations, 2)
	assert.Equal(t, "Downtown", report.Locations[0].LocationName)
	assertMoney(t, "18.75", report.Locations[1].TotalPay)
	locSum := report.Locations[0].TotalPay.Add(report.Locations[1].TotalPay)
	assert.True(t, locSum.Equal(report.Totals.TotalPay))

	assert.Equal(t, "coach-1", report.Coaches[0].CoachID)
	assert.Equal(t, "coach-2", report.Coaches[1].CoachID)
}

func TestAggregateTotalHoursRoundedOnce(t *testing.T) {
	f := newPayrollFixture()
	f.assignments.rows = []models.AssignmentDetail{
		assignment("a1", "coach-1", day(2025, 3, 3), models.AssignmentHead, "18:00", "19:10"),
		assignment("a2", "coach-1", day(2025, 3, 4), models.AssignmentHead, "18:00", "19:10"),
		assignment("a3", "coach-1", day(2025, 3, 5), models.AssignmentHead, "18:00", "19:10"),
	}

	report := f.run(t)
	cp := report.Coaches[0]
	assertMoney(t, "1.17", cp.Activities[0].Hours)
	assertMoney(t, "3.5", cp.TotalHours)
	assertMoney(t, "3.5", cp.Locations[0].TotalHours)
	assertMoney(t, "3.5", report.Locations[0].TotalHours)
	assertMoney(t, "3.5", report.Totals.TotalHours)
	assertMoney(t, "105", report.Totals.TotalPay)
}

func TestAggregateIsIdempotent(t *testing.T) {
	f := newPayrollFixture()
	f.coaches.coaches = []models.Coach{
		{ID: "coach-9", FullName: "Zed"},
		{ID: "coach-1", FullName: "Ana Silva"},
		{ID: "coach-0", FullName: "Ana Silva"},
	}
	f.assignments.rows = []models.AssignmentDetail{assignment("a1", "coach-1", day(2025, 3, 4), models.AssignmentHead, "18:00", "18:45")}
	f.privates.rows = []models.PrivateClassDetail{private("p1", "coach-9", day(2025, 3, 4), nil, "50")}

	first, err := json.Marshal(f.run(t))
	require.NoError(t, err)
	second, err := json.Marshal(f.run(t))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	report := f.run(t)
	ids := []string{report.Coaches[0].CoachID, report.Coaches[1].CoachID, report.Coaches[2].CoachID}
	assert.Equal(t, []string{"coach-0", "coach-1", "coach-9"}, ids)
}

func TestAggregateActivityOrdering(t *testing.T) {
	f := newPayrollFixture()
	f.assignments.rows = []models.AssignmentDetail{
		assignment("a-evening", "coach-1", day(2025, 3, 4), models.AssignmentHead, "18:00", "19:00"),
		assignment("a-next-day", "coach-1", day(2025, 3, 5), models.AssignmentHead, "06:00", "07:00"),
	}
	f.privates.rows = []models.PrivateClassDetail{
		private("p-untimed", "coach-1", day(2025, 3, 4), nil, "10"),
		private("p-morning", "coach-1", day(2025, 3, 4), strPtr("07:00"), "10"),
		private("p-same-slot", "coach-1", day(2025, 3, 4), strPtr("18:00:00"), "10"),
	}

	var got []string
	for _, act := range f.run(t).Coaches[0].Activities {
		got = append(got, act.SourceID)
	}
	assert.Equal(t, []string{"p-morning", "a-evening", "p-same-slot", "p-untimed", "a-next-day"}, got)
}

func TestAggregateReportsInvalidTemplateTimes(t *testing.T) {
	f := newPayrollFixture()
	f.assignments.rows = []models.AssignmentDetail{
		assignment("a-bad", "coach-1", day(2025, 3, 4), models.AssignmentHead, "19:00", "18:00"),
		assignment("a-ok", "coach-1", day(2025, 3, 4), models.AssignmentHead, "20:00", "21:00"),
	}

	report := f.run(t)
	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, "a-bad", report.Anomalies[0].AssignmentID)
	assert.Equal(t, "tpl-a-bad", report.Anomalies[0].TemplateID)
	assertMoney(t, "30", report.Coaches[0].TotalPay)
	assert.Equal(t, 1, f.logs.FilterMessage("assignment excluded from payroll").Len())
}

func TestAggregateWithoutCoachesSkipsActivityQueries(t *testing.T) {
	f := newPayrollFixture()
	f.coaches.coaches = nil

	report := f.run(t)
	assert.Empty(t, report.Coaches)
	assert.True(t, report.Totals.TotalPay.IsZero())
	assert.Equal(t, 0, f.assignments.calls)
}

func TestAggregatePassesRangeAndLocation(t *testing.T) {
	f := newPayrollFixture()
	_, err := f.svc.Aggregate(context.Background(), models.PayrollQuery{StartDate: day(2025, 3, 1), EndDate: day(2025, 3, 31), LocationID: "loc-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"coach-1"}, f.assignments.lastRange.CoachIDs)
	assert.Equal(t, "loc-2", f.assignments.lastRange.LocationID)
}

func TestAggregateRepositoryFailure(t *testing.T) {
	f := newPayrollFixture()
	f.assignments.err = errors.New("connection reset")

	_, err := f.svc.Aggregate(context.Background(), models.PayrollQuery{StartDate: day(2025, 3, 1), EndDate: day(2025, 3, 31)})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}

func TestParseQuery(t *testing.T) {
	f := newPayrollFixture()
	q, err := f.svc.ParseQuery(dto.PayrollQueryParams{StartDate: "2025-03-01", EndDate: "2025-03-15", CoachIDs: []string{"coach-1", " "}, Frequency: "weekly"})
	require.NoError(t, err)
	assert.Equal(t, []string{"coach-1"}, q.Selector.CoachIDs)
	assert.Equal(t, models.PaymentWeekly, q.Selector.PaymentFrequency)
	assert.Equal(t, day(2025, 3, 15), q.EndDate)

	_, err = f.svc.ParseQuery(dto.PayrollQueryParams{StartDate: "03/01/2025", EndDate: "2025-03-15"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	_, err = f.svc.ParseQuery(dto.PayrollQueryParams{StartDate: "2025-03-01", EndDate: "2025-03-15", Frequency: "daily"})
	require.Error(t, err)
}

func TestSummaryAndDetailedViews(t *testing.T) {
	f := newPayrollFixture()
	f.assignments.rows = []models.AssignmentDetail{assignment("a1", "coach-1", day(2025, 3, 4), models.AssignmentHead, "18:00", "19:00")}
	f.privates.rows = []models.PrivateClassDetail{private("p1", "coach-1", day(2025, 3, 6), nil, "75")}
	params := dto.PayrollQueryParams{StartDate: "2025-03-03", EndDate: "2025-03-09"}

	summary, err := f.svc.Summary(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CoachCount)
	require.Len(t, summary.Locations, 1)
	assertMoney(t, "105", summary.Totals.TotalPay)

	detailed, err := f.svc.Detailed(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, detailed.Coaches, 1)
	require.Len(t, detailed.Coaches[0].Locations, 1)
	assert.Len(t, detailed.Coaches[0].Locations[0].Activities, 2)
}

func TestCoachCalendar(t *testing.T) {
	f := newPayrollFixture()
	f.assignments.rows = []models.AssignmentDetail{assignment("a1", "coach-1", day(2025, 3, 4), models.AssignmentHead, "18:00", "19:00")}
	f.privates.rows = []models.PrivateClassDetail{private("p1", "coach-1", day(2025, 3, 4), nil, "75")}

	actor := models.AuthContext{UserID: "u-1", Role: models.RoleCoach, CoachID: "coach-1"}
	cal, err := f.svc.CoachCalendar(context.Background(), actor, "coach-1", "2025-03")
	require.NoError(t, err)

	require.Len(t, cal.Weeks, 6)
	first := cal.Weeks[0].Days[0]
	assert.Equal(t, "2025-02-24", first.Date)
	assert.False(t, first.InMonth)
	last := cal.Weeks[5].Days[6]
	assert.Equal(t, "2025-04-06", last.Date)

	tuesday := cal.Weeks[1].Days[1]
	assert.Equal(t, "2025-03-04", tuesday.Date)
	assert.Len(t, tuesday.Activities, 2)
	assertMoney(t, "105", tuesday.DayTotal)
	assertMoney(t, "105", cal.Totals.TotalPay)
}

func TestCoachCalendarForRetiredCoach(t *testing.T) {
	f := newPayrollFixture()
	f.coaches.coaches[0].Active = false
	f.assignments.rows = []models.AssignmentDetail{assignment("a1", "coach-1", day(2025, 3, 4), models.AssignmentHead, "18:00", "19:00")}

	manager := models.AuthContext{UserID: "u-3", Role: models.RoleManager}
	cal, err := f.svc.CoachCalendar(context.Background(), manager, "coach-1", "2025-03")
	require.NoError(t, err)
	assertMoney(t, "30", cal.Totals.TotalPay)

	assert.Equal(t, []string{"coach-1"}, f.coaches.lastSelector.CoachIDs)
	assert.Equal(t, day(2025, 3, 1), f.coaches.lastSelector.WorkedFrom)
	assert.Equal(t, day(2025, 3, 31), f.coaches.lastSelector.WorkedTo)
}

func TestCoachCalendarAccess(t *testing.T) {
	f := newPayrollFixture()

	other := models.AuthContext{UserID: "u-2", Role: models.RoleCoach, CoachID: "coach-2"}
	_, err := f.svc.CoachCalendar(context.Background(), other, "coach-1", "2025-03")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)

	manager := models.AuthContext{UserID: "u-3", Role: models.RoleManager}
	_, err = f.svc.CoachCalendar(context.Background(), manager, "coach-404", "2025-03")
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)

	_, err = f.svc.CoachCalendar(context.Background(), manager, "coach-1", "March")
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}
