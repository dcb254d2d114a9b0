package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"
)

type availabilityParams struct {
	ServiceID int64  `url:"serviceId"`
	Date      string `url:"date"`
}

type availabilityData struct {
	AvailableSlots []string `json:"availableSlots"`
}

// Availability returns the bookable start times for a service on a date,
// normalized to HH:mm.
func (c *Client) Availability(ctx context.Context, serviceID int64, date time.Time) ([]string, error) {
	values, err := query.Values(availabilityParams{
		ServiceID: serviceID,
		Date:      date.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	var env dataEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/appointments/availability", query: values}, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "No hay horarios disponibles"
		}
		return nil, &Error{Kind: KindValidation, Message: msg}
	}

	var data availabilityData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &Error{Kind: KindServer, Message: "respuesta inválida del servidor", Err: err}
	}

	slots := make([]string, 0, len(data.AvailableSlots))
	for _, s := range data.AvailableSlots {
		// Backend sends HH:mm:ss; the client works in HH:mm.
		if len(s) > 5 {
			s = s[:5]
		}
		slots = append(slots, s)
	}
	return slots, nil
}

// CreateAppointmentRequest is the payload for booking a turn directly
// (without the payment flow).
type CreateAppointmentRequest struct {
	ServiceID int64  `json:"serviceId"`
	CompanyID int64  `json:"companyId"`
	StartTime string `json:"startTime"`
	Notes     string `json:"notes,omitempty"`
}

// CreateAppointment books a turn. A 409 means the slot was taken between
// selection and submission.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	var env dataEnvelope
	err := c.do(ctx, request{method: http.MethodPost, path: "/appointments", body: req}, &env)
	if err != nil {
		return nil, err
	}
	var appt Appointment
	if len(env.Data) > 0 {
		if uerr := json.Unmarshal(env.Data, &appt); uerr != nil {
			return nil, &Error{Kind: KindServer, Message: "respuesta inválida del servidor", Err: uerr}
		}
	}
	return &appt, nil
}

// UserAppointments lists the authenticated user's turns.
func (c *Client) UserAppointments(ctx context.Context) ([]Appointment, error) {
	var env dataEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/appointments/user"}, &env); err != nil {
		return nil, err
	}
	var appts []Appointment
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &appts); err != nil {
			return nil, &Error{Kind: KindServer, Message: "respuesta inválida del servidor", Err: err}
		}
	}
	return appts, nil
}

// AppointmentByID fetches one turn.
func (c *Client) AppointmentByID(ctx context.Context, id int64) (*Appointment, error) {
	var env dataEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/appointments/%d", id)}, &env); err != nil {
		return nil, err
	}
	var appt Appointment
	if err := json.Unmarshal(env.Data, &appt); err != nil {
		return nil, &Error{Kind: KindServer, Message: "respuesta inválida del servidor", Err: err}
	}
	return &appt, nil
}

// CancelAppointment cancels a turn.
func (c *Client) CancelAppointment(ctx context.Context, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/appointments/%d", id)}, nil)
}
