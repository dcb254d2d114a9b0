package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francodavinci/masdeporte-mobile/internal/api"
)

var turns = []api.Appointment{
	{ID: 1, ServiceName: "Cancha de pádel", StartTime: "2026-03-02T10:30:00", Status: "CONFIRMED"},
	{ID: 2, ServiceName: "Cancha de fútbol 5", StartTime: "2026-03-02T18:00:00", Status: "CANCELLED"},
	{ID: 3, ServiceName: "Cancha de pádel", StartTime: "2026-03-05T09:00:00", Status: "CONFIRMED"},
	{ID: 4, ServiceName: "Clase de tenis", StartTime: "2026-02-28T17:00:00", Status: "CONFIRMED"},
}

func ids(appointments []api.Appointment) []int64 {
	out := make([]int64, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, a.ID)
	}
	return out
}

func TestFilterAppointments(t *testing.T) {
	tests := []struct {
		name   string
		filter AppointmentFilter
		want   []int64
	}{
		{"zero filter matches all", AppointmentFilter{}, []int64{1, 2, 3, 4}},
		{"status all matches all", AppointmentFilter{Status: StatusAll}, []int64{1, 2, 3, 4}},
		{"by status", AppointmentFilter{Status: "CANCELLED"}, []int64{2}},
		{"search is case-insensitive", AppointmentFilter{Search: "PÁDEL"}, []int64{1, 3}},
		{"by date", AppointmentFilter{Date: "2026-03-02"}, []int64{1, 2}},
		{"combined", AppointmentFilter{Search: "pádel", Status: "CONFIRMED", Date: "2026-03-05"}, []int64{3}},
		{"no match", AppointmentFilter{Search: "natación"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAppointments(turns, tt.filter)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestGroupAppointmentsByDate(t *testing.T) {
	groups := GroupAppointmentsByDate(turns)
	require.Len(t, groups, 3)

	assert.Equal(t, "2026-02-28", groups[0].DateKey)
	assert.Equal(t, []int64{4}, ids(groups[0].Items))

	assert.Equal(t, "2026-03-02", groups[1].DateKey)
	assert.Equal(t, []int64{1, 2}, ids(groups[1].Items))

	assert.Equal(t, "2026-03-05", groups[2].DateKey)
	assert.Equal(t, []int64{3}, ids(groups[2].Items))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Confirmado", StatusLabel("CONFIRMED"))
	assert.Equal(t, "Cancelado", StatusLabel("CANCELLED"))
	assert.Equal(t, "Desconocido", StatusLabel("PENDING"))
	assert.Equal(t, "Desconocido", StatusLabel(""))
}
