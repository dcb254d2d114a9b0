package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// CouponRequest applies a coupon code against a service price for a user.
// The field names are the backend's contract.
type CouponRequest struct {
	CouponCode     string  `json:"couponCode"`
	CompanyID      int64   `json:"companyId"`
	OriginalAmount float64 `json:"originalAmount"`
	UserEmail      string  `json:"userEmail"`
}

// ApplyCoupon calls apply-and-use. The backend owns every coupon rule;
// rejections come back as KindCouponRejected with the backend's reason
// verbatim.
func (c *Client) ApplyCoupon(ctx context.Context, req CouponRequest) (*CouponResult, error) {
	var env dataEnvelope
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/coupons/apply-and-use", body: req}, &env)
	if err != nil {
		// Coupon failures arrive as 4xx with the reason in the body.
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindValidation {
			return nil, &Error{Kind: KindCouponRejected, StatusCode: apiErr.StatusCode, Message: apiErr.Message}
		}
		return nil, err
	}
	if !env.Success {
		return nil, &Error{Kind: KindCouponRejected, Message: env.Message}
	}

	var result CouponResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, &Error{Kind: KindServer, Message: "respuesta inválida del servidor", Err: err}
	}
	return &result, nil
}
