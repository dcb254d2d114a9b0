package booking

import "errors"

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyCouponCode = errors.New("coupon code is empty")
)
