package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// BackURLs are the redirect targets Mercado Pago calls after payment.
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PaymentMethods constrains the payment options offered at checkout.
type PaymentMethods struct {
	ExcludedPaymentMethods []string `json:"excluded_payment_methods"`
	ExcludedPaymentTypes   []string `json:"excluded_payment_types"`
	Installments           int      `json:"installments"`
	DefaultInstallments    int      `json:"default_installments"`
}

// Payer identifies who pays the deposit.
type Payer struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// PreferenceRequest is the full payment-preference payload. The snake_case
// fields are Mercado Pago's, the camelCase ones are the backend's own.
type PreferenceRequest struct {
	Title                   string         `json:"title"`
	Description             string         `json:"description"`
	Amount                  float64        `json:"amount"`
	Quantity                int            `json:"quantity"`
	Currency                string         `json:"currency"`
	ExternalReference       string         `json:"external_reference"`
	ServiceID               int64          `json:"serviceId"`
	CompanyID               int64          `json:"companyId"`
	UserEmail               string         `json:"userEmail"`
	StartTime               string         `json:"startTime"`
	Notes                   string         `json:"notes"`
	UserID                  string         `json:"userId,omitempty"`
	AppliedCoupon           *CouponResult  `json:"appliedCoupon,omitempty"`
	OriginalAmount          float64        `json:"originalAmount"`
	TotalAmountWithDiscount float64        `json:"totalAmountWithDiscount"`
	BackURLs                BackURLs       `json:"back_urls"`
	PaymentMethods          PaymentMethods `json:"payment_methods"`
	NotificationURL         string         `json:"notification_url"`
	AutoReturn              string         `json:"auto_return"`
	Expires                 bool           `json:"expires"`
	ExpirationDateFrom      string         `json:"expiration_date_from"`
	ExpirationDateTo        string         `json:"expiration_date_to"`
	Payer                   Payer          `json:"payer"`
}

// CreatePreference creates the payment preference and returns the checkout
// redirect (init_point).
func (c *Client) CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error) {
	var env dataEnvelope
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/mercadopago/preferences", body: req}, &env); err != nil {
		return nil, err
	}
	var pref Preference
	if err := json.Unmarshal(env.Data, &pref); err != nil {
		return nil, &Error{Kind: KindServer, Message: "respuesta inválida del servidor", Err: err}
	}
	return &pref, nil
}

// ConfirmPaymentRequest reports a finished payment back to the backend so
// the appointment gets confirmed.
type ConfirmPaymentRequest struct {
	PaymentID         string `json:"payment_id"`
	Status            string `json:"status"`
	PreferenceID      string `json:"preference_id,omitempty"`
	ExternalReference string `json:"external_reference,omitempty"`
}

// ConfirmAppointment confirms the turn after a successful payment.
func (c *Client) ConfirmAppointment(ctx context.Context, req ConfirmPaymentRequest) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/api/mercadopago/confirm-appointment", body: req}, nil)
}

// PaymentStatus asks the backend for the provider-side state of a payment.
func (c *Client) PaymentStatus(ctx context.Context, paymentID string) (*PaymentState, error) {
	var env dataEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/mercadopago/payment/" + paymentID + "/status"}, &env); err != nil {
		return nil, err
	}
	var state PaymentState
	if err := json.Unmarshal(env.Data, &state); err != nil {
		return nil, &Error{Kind: KindServer, Message: "respuesta inválida del servidor", Err: err}
	}
	return &state, nil
}

// MercadoPagoStatus returns the company's Mercado Pago connection state.
func (c *Client) MercadoPagoStatus(ctx context.Context) (json.RawMessage, error) {
	var env dataEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/mercadopago/oauth/status"}, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// DisconnectMercadoPago removes the stored Mercado Pago connection.
func (c *Client) DisconnectMercadoPago(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/mercadopago/oauth/disconnect"}, nil)
}
