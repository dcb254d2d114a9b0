package booking

import (
	"fmt"
	"math"
)

// DepositRate is the fraction of the discounted service price collected
// upfront to hold a reservation.
const DepositRate = 0.25

// Breakdown is the derived pricing of one booking. It is never persisted;
// callers recompute it from the service price and the applied discount.
type Breakdown struct {
	OriginalAmount   float64 `json:"originalAmount"`
	DiscountAmount   float64 `json:"discountAmount"`
	DiscountedAmount float64 `json:"discountedAmount"`
	DepositAmount    float64 `json:"depositAmount"`
	RemainingAmount  float64 `json:"remainingAmount"`
}

// ComputeBreakdown computes deposit and remaining amounts for a service
// price and an optional coupon discount (0 when no coupon is applied).
// A discount larger than the price clamps the discounted total at 0.
func ComputeBreakdown(servicePrice, discountAmount float64) (Breakdown, error) {
	if servicePrice <= 0 {
		return Breakdown{}, fmt.Errorf("%w: service price must be positive, got %.2f", ErrInvalidAmount, servicePrice)
	}
	if discountAmount < 0 {
		return Breakdown{}, fmt.Errorf("%w: discount cannot be negative, got %.2f", ErrInvalidAmount, discountAmount)
	}

	discounted := math.Max(0, servicePrice-discountAmount)
	deposit := discounted * DepositRate

	return Breakdown{
		OriginalAmount:   servicePrice,
		DiscountAmount:   discountAmount,
		DiscountedAmount: discounted,
		DepositAmount:    deposit,
		RemainingAmount:  discounted - deposit,
	}, nil
}
