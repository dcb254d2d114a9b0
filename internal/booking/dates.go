package booking

import (
	"fmt"
	"math"
	"time"
)

// Defaults applied when a company does not report its advance-booking
// policy.
const (
	DefaultMinAdvanceDays = 0
	DefaultMaxAdvanceDays = 30
)

// Policy is a company's advance-booking window, in whole days from today.
type Policy struct {
	MinAdvanceDays int `json:"minAdvanceDays"`
	MaxAdvanceDays int `json:"maxAdvanceDays"`
}

type DateReason string

const (
	ReasonTooSoon DateReason = "TOO_SOON"
	ReasonTooFar  DateReason = "TOO_FAR"
)

// DateValidation is the structured result of validating a candidate date,
// so callers can branch on Reason without string matching.
type DateValidation struct {
	Valid   bool
	Reason  DateReason
	Message string
}

// ValidateDate checks a candidate reservation date against the company's
// advance-booking policy. Time of day is ignored on both dates.
func ValidateDate(candidate time.Time, policy Policy, today time.Time) DateValidation {
	diff := daysBetween(today, candidate)

	if diff < policy.MinAdvanceDays {
		return DateValidation{
			Valid:   false,
			Reason:  ReasonTooSoon,
			Message: fmt.Sprintf("Debes reservar con al menos %d día(s) de anticipación", policy.MinAdvanceDays),
		}
	}
	if diff > policy.MaxAdvanceDays {
		return DateValidation{
			Valid:   false,
			Reason:  ReasonTooFar,
			Message: fmt.Sprintf("No puedes reservar con más de %d días de anticipación", policy.MaxAdvanceDays),
		}
	}
	return DateValidation{Valid: true}
}

// SelectableDates enumerates the calendar dates a user may pick, from
// today+min to today+max inclusive. Pure function of its inputs.
func SelectableDates(today time.Time, minAdvanceDays, maxAdvanceDays int) []time.Time {
	base := truncateToMidnight(today)
	var dates []time.Time
	for i := minAdvanceDays; i <= maxAdvanceDays; i++ {
		dates = append(dates, base.AddDate(0, 0, i))
	}
	return dates
}

// MonthGroup is a derived view over SelectableDates used to render one
// calendar month at a time.
type MonthGroup struct {
	Year  int
	Month time.Month
	Dates []time.Time
}

// GroupDatesByMonth groups an ordered date sequence by calendar month,
// preserving the order months first appear in.
func GroupDatesByMonth(dates []time.Time) []MonthGroup {
	var groups []MonthGroup
	idx := make(map[string]int)
	for _, d := range dates {
		key := fmt.Sprintf("%d-%d", d.Year(), int(d.Month()))
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, MonthGroup{Year: d.Year(), Month: d.Month()})
		}
		groups[i].Dates = append(groups[i].Dates, d)
	}
	return groups
}

// daysBetween returns the whole-day difference between two dates. Both are
// truncated to local midnight first and the hour difference is rounded up,
// so a DST transition inside the window cannot produce an off-by-one.
func daysBetween(from, to time.Time) int {
	f := truncateToMidnight(from)
	t := truncateToMidnight(to)
	return int(math.Ceil(t.Sub(f).Hours() / 24))
}

func truncateToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
