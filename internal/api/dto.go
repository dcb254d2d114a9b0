package api

import "encoding/json"

// Service is a bookable service offered by a company. Owned by the backend;
// read-only here.
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BusinessHours is one weekday of a company's opening schedule.
type BusinessHours struct {
	DayOfWeek   string `json:"dayOfWeek"`
	WorkingDay  bool   `json:"workingDay"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}

// Company is a sports club as the backend reports it.
type Company struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	URLSlug             string          `json:"urlSlug"`
	Description         string          `json:"description"`
	LogoURL             string          `json:"logoUrl"`
	Address             string          `json:"address"`
	Phone               string          `json:"phone"`
	CancellationHours   int             `json:"cancellationHours"`
	MinAdvanceDays      int             `json:"minAdvanceDays"`
	MaxAdvanceDays      int             `json:"maxAdvanceDays"`
	HasTimeBetweenTurns bool            `json:"hasTimeBetweenTurns"`
	MinutesBetweenTurns int             `json:"minutesBetweenTurns"`
	BusinessHours       []BusinessHours `json:"businessHours"`
	Latitude            float64         `json:"latitude"`
	Longitude           float64         `json:"longitude"`
	Services            []Service       `json:"services"`
}

// Appointment is a booked turn as returned by the appointment endpoints.
type Appointment struct {
	ID          int64   `json:"id"`
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	CompanyID   int64   `json:"companyId"`
	CompanyName string  `json:"companyName"`
	StartTime   string  `json:"startTime"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
	TotalPrice  float64 `json:"totalPrice"`
}

// CouponInfo identifies the coupon the backend applied.
type CouponInfo struct {
	Code string `json:"code"`
}

// CouponResult is the backend's answer to apply-and-use: held only for the
// duration of one booking flow.
type CouponResult struct {
	DiscountAmount float64    `json:"discountAmount"`
	Coupon         CouponInfo `json:"coupon"`
}

// Preference is a created Mercado Pago payment preference.
type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// PaymentState is the provider-side status of one payment.
type PaymentState struct {
	Status string `json:"status"`
}

// dataEnvelope is the backend's standard {success,message,data} wrapper.
type dataEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// errorBody covers the message shapes the backend uses on failures.
type errorBody struct {
	Message string `json:"message"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// loginResponse is shared by login, google login and register. The backend
// signals failure through statusCode, not the HTTP status alone.
type loginResponse struct {
	StatusCode   int    `json:"statusCode"`
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Role         string `json:"role"`
}

// refreshResponse mirrors loginResponse; refreshToken is optional on
// rotation.
type refreshResponse struct {
	StatusCode   int    `json:"statusCode"`
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
