package api

import (
	"errors"
	"fmt"
)

// Kind classifies a request failure so callers can branch without matching
// message strings.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindCouponRejected Kind = "coupon_rejected"
	KindAuthExpired    Kind = "auth_expired"
	KindAuthInvalid    Kind = "auth_invalid"
	KindConflict       Kind = "conflict"
	KindServer         Kind = "server"
	KindNetwork        Kind = "network"
)

// Error is the uniform failure shape surfaced at the client boundary.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// User-facing messages, kept verbatim from the mobile client.
const (
	msgSlotTaken     = "El horario seleccionado ya no está disponible"
	msgLoginRequired = "Debes iniciar sesión para reservar un turno"
	msgServerError   = "Error interno del servidor. Intenta de nuevo más tarde"
	msgNetworkError  = "Error de conexión. Verifica tu red e intenta de nuevo"
)
