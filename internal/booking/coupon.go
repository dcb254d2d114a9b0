package booking

import (
	"fmt"
	"strings"
)

// NormalizeCouponCode trims and uppercases a user-entered coupon code.
// Coupon business rules (expiry, usage, company scope) live on the backend;
// the client only guarantees the code it sends is well formed.
func NormalizeCouponCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrEmptyCouponCode
	}
	return code, nil
}

// CheckCouponResult verifies the postcondition of a coupon application:
// the backend-reported discount must fall within [0, servicePrice].
func CheckCouponResult(discountAmount, servicePrice float64) error {
	if discountAmount < 0 {
		return fmt.Errorf("%w: coupon discount cannot be negative, got %.2f", ErrInvalidAmount, discountAmount)
	}
	if discountAmount > servicePrice {
		return fmt.Errorf("%w: coupon discount %.2f exceeds service price %.2f", ErrInvalidAmount, discountAmount, servicePrice)
	}
	return nil
}

// FormatSlot normalizes a backend slot string (HH:mm:ss) to HH:mm.
func FormatSlot(slot string) string {
	if len(slot) > 5 {
		return slot[:5]
	}
	return slot
}
