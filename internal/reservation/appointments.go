package reservation

import (
	"sort"
	"strings"

	"github.com/francodavinci/masdeporte-mobile/internal/api"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// AppointmentFilter narrows the user's turn list for display. Zero values
// match everything.
type AppointmentFilter struct {
	Search string // case-insensitive service-name substring
	Status string // CONFIRMED, CANCELLED or StatusAll/""
	Date   string // YYYY-MM-DD, same calendar day as startTime
}

// FilterAppointments applies the filter the appointments screen offered.
func FilterAppointments(appointments []api.Appointment, f AppointmentFilter) []api.Appointment {
	var out []api.Appointment
	search := strings.ToLower(f.Search)
	for _, a := range appointments {
		if search != "" && !strings.Contains(strings.ToLower(a.ServiceName), search) {
			continue
		}
		if f.Status != "" && f.Status != StatusAll && a.Status != f.Status {
			continue
		}
		if f.Date != "" && !isSameDay(a.StartTime, f.Date) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// AppointmentGroup is one calendar day of turns.
type AppointmentGroup struct {
	DateKey string // YYYY-MM-DD
	Items   []api.Appointment
}

// GroupAppointmentsByDate groups turns by calendar day, days ascending.
func GroupAppointmentsByDate(appointments []api.Appointment) []AppointmentGroup {
	byDay := make(map[string][]api.Appointment)
	for _, a := range appointments {
		key := dateKey(a.StartTime)
		byDay[key] = append(byDay[key], a)
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]AppointmentGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, AppointmentGroup{DateKey: k, Items: byDay[k]})
	}
	return groups
}

// StatusLabel maps an appointment status to its display text.
func StatusLabel(status string) string {
	switch status {
	case "CONFIRMED":
		return "Confirmado"
	case "CANCELLED":
		return "Cancelado"
	default:
		return "Desconocido"
	}
}

func isSameDay(startTimeISO, yyyyMMdd string) bool {
	if startTimeISO == "" || yyyyMMdd == "" {
		return false
	}
	return dateKey(startTimeISO) == yyyyMMdd
}

func dateKey(startTimeISO string) string {
	if i := strings.Index(startTimeISO, "T"); i >= 0 {
		return startTimeISO[:i]
	}
	return startTimeISO
}
