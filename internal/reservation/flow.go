package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/francodavinci/masdeporte-mobile/internal/api"
	"github.com/francodavinci/masdeporte-mobile/internal/booking"
)

// Flow holds the state of one booking: the selected service, date and
// slot, plus the coupon applied for this flow only. It is discarded after
// checkout.
type Flow struct {
	Service   api.Service
	CompanyID int64
	Date      time.Time
	TimeSlot  string // HH:mm
	Notes     string

	coupon *api.CouponResult
}

func New(service api.Service, companyID int64, date time.Time, timeSlot string) *Flow {
	return &Flow{
		Service:   service,
		CompanyID: companyID,
		Date:      date,
		TimeSlot:  booking.FormatSlot(timeSlot),
	}
}

// ApplyCoupon normalizes the code, applies it through the backend and keeps
// the result for this flow. On any failure the applied state is cleared.
func (f *Flow) ApplyCoupon(ctx context.Context, client *api.Client, code, userEmail string) (*api.CouponResult, error) {
	f.coupon = nil

	normalized, err := booking.NormalizeCouponCode(code)
	if err != nil {
		return nil, err
	}

	result, err := client.ApplyCoupon(ctx, api.CouponRequest{
		CouponCode:     normalized,
		CompanyID:      f.CompanyID,
		OriginalAmount: f.Service.Price,
		UserEmail:      userEmail,
	})
	if err != nil {
		return nil, err
	}
	if err := booking.CheckCouponResult(result.DiscountAmount, f.Service.Price); err != nil {
		return nil, err
	}

	f.coupon = result
	return result, nil
}

// RemoveCoupon discards the applied coupon.
func (f *Flow) RemoveCoupon() { f.coupon = nil }

// Coupon returns the currently applied coupon, nil when there is none.
func (f *Flow) Coupon() *api.CouponResult { return f.coupon }

// Breakdown prices the flow with the applied discount, if any.
func (f *Flow) Breakdown() (booking.Breakdown, error) {
	discount := 0.0
	if f.coupon != nil {
		discount = f.coupon.DiscountAmount
	}
	return booking.ComputeBreakdown(f.Service.Price, discount)
}

// DeepLinkBackURLs are the mobile redirect targets.
func DeepLinkBackURLs() api.BackURLs {
	return api.BackURLs{
		Success: "masdeporte://payment?status=success",
		Failure: "masdeporte://payment?status=failure",
		Pending: "masdeporte://payment?status=pending",
	}
}

// ListenerBackURLs points the provider redirect at a local callback
// listener instead of the mobile scheme.
func ListenerBackURLs(base string) api.BackURLs {
	return api.BackURLs{
		Success: base + "?status=success",
		Failure: base + "?status=failure",
		Pending: base + "?status=pending",
	}
}

// BuildPreference assembles the payment-preference payload for the deposit.
// now fixes the external reference and the expiry window, so the payload is
// reproducible in tests.
func (f *Flow) BuildPreference(user api.Payer, userID string, backURLs api.BackURLs, notificationBase string, now time.Time) (api.PreferenceRequest, error) {
	bd, err := f.Breakdown()
	if err != nil {
		return api.PreferenceRequest{}, err
	}

	if user.Name == "" {
		user.Name = "Usuario"
	}
	if user.Surname == "" {
		user.Surname = "MasDeporte"
	}

	depositPercent := int(booking.DepositRate * 100)
	return api.PreferenceRequest{
		Title: "Seña - " + f.Service.Name,
		Description: fmt.Sprintf("Seña del %d%% para reserva de %s - %s %s",
			depositPercent, f.Service.Name, FormatDateES(f.Date), f.TimeSlot),
		Amount:            bd.DepositAmount,
		Quantity:          1,
		Currency:          "ARS",
		ExternalReference: fmt.Sprintf("appointment_%d", now.UnixMilli()),
		ServiceID:         f.Service.ID,
		CompanyID:         f.CompanyID,
		UserEmail:         user.Email,
		StartTime:         f.Date.Format("2006-01-02") + "T" + f.TimeSlot + ":00",
		Notes:             f.Notes,
		UserID:            userID,
		AppliedCoupon:     f.coupon,
		OriginalAmount:    bd.OriginalAmount,
		TotalAmountWithDiscount: bd.DiscountedAmount,
		BackURLs:                backURLs,
		PaymentMethods: api.PaymentMethods{
			ExcludedPaymentMethods: []string{},
			ExcludedPaymentTypes:   []string{},
			Installments:           12,
			DefaultInstallments:    1,
		},
		NotificationURL:    notificationBase + "/api/mercadopago/notifications",
		AutoReturn:         "approved",
		Expires:            true,
		ExpirationDateFrom: now.Format(time.RFC3339),
		ExpirationDateTo:   now.Add(24 * time.Hour).Format(time.RFC3339),
		Payer:              user,
	}, nil
}

// Checkout creates the preference and returns the checkout URL the user
// must open to pay the deposit.
func (f *Flow) Checkout(ctx context.Context, client *api.Client, pref api.PreferenceRequest) (string, error) {
	created, err := client.CreatePreference(ctx, pref)
	if err != nil {
		return "", err
	}
	return created.InitPoint, nil
}
