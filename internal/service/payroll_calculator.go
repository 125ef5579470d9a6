package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

const dateLayout = "2006-01-02"

var (
	minBillableHours = decimal.NewFromInt(1)
	minutesPerHour   = decimal.NewFromInt(60)

	errInvalidClassTime   = errors.New("unparsable class time")
	errNonPositiveSession = errors.New("end time is not after start time")
)

// PricedHours applies the one-hour minimum to a positive duration. Non-positive input is returned unchanged.
func PricedHours(raw decimal.Decimal) decimal.Decimal {
	if raw.IsPositive() && raw.LessThan(minBillableHours) {
		return minBillableHours
	}
	return raw
}

// ClassHours derives the raw duration of a template in hours from whole minutes.
func ClassHours(start, end string) (decimal.Decimal, error) {
	from, err := parseClockTime(start)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := parseClockTime(end)
	if err != nil {
		return decimal.Zero, err
	}
	minutes := int64(to.Sub(from) / time.Minute)
	if minutes <= 0 {
		return decimal.Zero, errNonPositiveSession
	}
	return decimal.NewFromInt(minutes).Div(minutesPerHour), nil
}

// ResolveHourlyRate picks the head or helper rate. A coach without rates is paid zero.
func ResolveHourlyRate(rate *models.CoachRate, role models.AssignmentRole) decimal.Decimal {
	if rate == nil {
		return decimal.Zero
	}
	if role == models.AssignmentHead {
		return rate.HeadRate
	}
	return rate.HelperRate
}

func parseClockTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errInvalidClassTime, value)
}

// clockLabel renders a stored TIME value as HH:MM. Unparsable input yields the empty sentinel.
func clockLabel(value string) string {
	t, err := parseClockTime(value)
	if err != nil {
		return ""
	}
	return t.Format("15:04")
}

// payrollInput is everything one aggregation reads.
type payrollInput struct {
	Query       models.PayrollQuery
	Coaches     []models.Coach
	Assignments []models.AssignmentDetail
	Privates    []models.PrivateClassDetail
	Rates       map[string]models.CoachRate
}

type sequencedActivity struct {
	models.PayrollActivity
	coachID string
	seq     int

	// priced is the unrounded billable duration; totals sum this and round once.
	priced decimal.Decimal
}

// buildPayrollReport prices every activity and folds the results into coach, location and grand totals.
func buildPayrollReport(in payrollInput) *models.PayrollReport {
	report := &models.PayrollReport{
		StartDate:  in.Query.StartDate.Format(dateLayout),
		EndDate:    in.Query.EndDate.Format(dateLayout),
		LocationID: in.Query.LocationID,
		Coaches:    []models.CoachPayroll{},
		Locations:  []models.LocationSubtotal{},
		Totals:     zeroTotals(),
		Anomalies:  []models.PayrollAnomaly{},
	}

	coaches := append([]models.Coach(nil), in.Coaches...)
	sort.SliceStable(coaches, func(i, j int) bool {
		if coaches[i].FullName != coaches[j].FullName {
			return coaches[i].FullName < coaches[j].FullName
		}
		return coaches[i].ID < coaches[j].ID
	})
	selected := make(map[string]bool, len(coaches))
	for _, c := range coaches {
		selected[c.ID] = true
	}

	var lines []sequencedActivity
	seq := 0
	for _, a := range in.Assignments {
		if !selected[a.CoachID] {
			continue
		}
		date := a.ClassDate.Format(dateLayout)
		raw, err := ClassHours(a.StartTime, a.EndTime)
		if err != nil {
			report.Anomalies = append(report.Anomalies, models.PayrollAnomaly{
				AssignmentID: a.ID,
				TemplateID:   a.TemplateID,
				CoachID:      a.CoachID,
				Date:         date,
				Reason:       fmt.Sprintf("%v (start %s, end %s)", err, a.StartTime, a.EndTime),
			})
			continue
		}
		hours := PricedHours(raw)
		var rate *models.CoachRate
		if r, ok := in.Rates[a.CoachID]; ok {
			rate = &r
		}
		hourly := ResolveHourlyRate(rate, a.Role)
		lines = append(lines, sequencedActivity{
			PayrollActivity: models.PayrollActivity{
				Kind:         models.ActivityClass,
				SourceID:     a.ID,
				Date:         date,
				Time:         clockLabel(a.StartTime),
				LocationID:   a.LocationID,
				LocationName: a.LocationName,
				Description:  a.Discipline,
				Role:         a.Role,
				Hours:        hours.Round(2),
				Rate:         hourly,
				Pay:          hours.Mul(hourly).Round(2),
			},
			coachID: a.CoachID,
			seq:     seq,
			priced:  hours,
		})
		seq++
	}
	for _, p := range in.Privates {
		if !selected[p.CoachID] {
			continue
		}
		clock := ""
		if p.ClassTime != nil {
			clock = clockLabel(*p.ClassTime)
		}
		lines = append(lines, sequencedActivity{
			PayrollActivity: models.PayrollActivity{
				Kind:         models.ActivityPrivate,
				SourceID:     p.ID,
				Date:         p.ClassDate.Format(dateLayout),
				Time:         clock,
				LocationID:   p.LocationID,
				LocationName: p.LocationName,
				Description:  "Private: " + p.StudentLabel,
				Hours:        decimal.Zero,
				Rate:         decimal.Zero,
				Pay:          p.Payout,
			},
			coachID: p.CoachID,
			seq:     seq,
			priced:  decimal.Zero,
		})
		seq++
	}
	sortActivities(lines)

	byCoach := make(map[string][]sequencedActivity, len(coaches))
	for _, line := range lines {
		byCoach[line.coachID] = append(byCoach[line.coachID], line)
	}

	grandLocations := map[string]*models.LocationSubtotal{}
	for _, coach := range coaches {
		cp := models.CoachPayroll{
			CoachID:          coach.ID,
			CoachName:        coach.FullName,
			PaymentFrequency: coach.PaymentFrequency,
			PayrollTotals:    zeroTotals(),
			Locations:        []models.LocationSubtotal{},
			Activities:       []models.PayrollActivity{},
		}
		coachLocations := map[string]*models.LocationSubtotal{}
		for _, line := range byCoach[coach.ID] {
			act := line.PayrollActivity
			cp.Activities = append(cp.Activities, act)
			addActivity(&cp.PayrollTotals, line)
			addActivity(&locationBucket(coachLocations, act).PayrollTotals, line)
			addActivity(&locationBucket(grandLocations, act).PayrollTotals, line)
		}
		cp.Locations = sortedLocations(coachLocations)
		report.Totals = sumTotals(report.Totals, cp.PayrollTotals)
		cp.TotalHours = cp.TotalHours.Round(2)
		report.Coaches = append(report.Coaches, cp)
	}
	report.Locations = sortedLocations(grandLocations)
	report.Totals.TotalHours = report.Totals.TotalHours.Round(2)
	return report
}

// sortActivities orders by date, then timed entries by time before untimed ones, then insertion order.
func sortActivities(lines []sequencedActivity) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		aUntimed, bUntimed := a.Time == "", b.Time == ""
		if aUntimed != bUntimed {
			return bUntimed
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.seq < b.seq
	})
}

func addActivity(t *models.PayrollTotals, line sequencedActivity) {
	switch line.Kind {
	case models.ActivityPrivate:
		t.PrivatePay = t.PrivatePay.Add(line.Pay)
	default:
		t.RegularPay = t.RegularPay.Add(line.Pay)
		t.TotalHours = t.TotalHours.Add(line.priced)
	}
	t.TotalPay = t.RegularPay.Add(t.PrivatePay)
}

func sumTotals(a, b models.PayrollTotals) models.PayrollTotals {
	return models.PayrollTotals{
		RegularPay: a.RegularPay.Add(b.RegularPay),
		PrivatePay: a.PrivatePay.Add(b.PrivatePay),
		TotalPay:   a.TotalPay.Add(b.TotalPay),
		TotalHours: a.TotalHours.Add(b.TotalHours),
	}
}

func zeroTotals() models.PayrollTotals {
	return models.PayrollTotals{
		RegularPay: decimal.Zero,
		PrivatePay: decimal.Zero,
		TotalPay:   decimal.Zero,
		TotalHours: decimal.Zero,
	}
}

func locationBucket(buckets map[string]*models.LocationSubtotal, act models.PayrollActivity) *models.LocationSubtotal {
	b, ok := buckets[act.LocationID]
	if !ok {
		b = &models.LocationSubtotal{LocationID: act.LocationID, LocationName: act.LocationName, PayrollTotals: zeroTotals()}
		buckets[act.LocationID] = b
	}
	return b
}

func sortedLocations(buckets map[string]*models.LocationSubtotal) []models.LocationSubtotal {
	out := make([]models.LocationSubtotal, 0, len(buckets))
	for _, b := range buckets {
		sub := *b
		sub.TotalHours = sub.TotalHours.Round(2)
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LocationName != out[j].LocationName {
			return out[i].LocationName < out[j].LocationName
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out
}
