package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ExpiresAt reads the exp claim of an access token without verifying its
// signature. The backend owns the signing secret; the client only inspects
// expiry to report session state.
func ExpiresAt(tokenStr string) (time.Time, error) {
	parser := jwtlib.NewParser()
	claims := jwtlib.RegisteredClaims{}
	_, _, err := parser.ParseUnverified(tokenStr, &claims)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the token's exp claim is in the past. Tokens that
// cannot be parsed are treated as expired.
func Expired(tokenStr string, now time.Time) bool {
	exp, err := ExpiresAt(tokenStr)
	if err != nil {
		return true
	}
	return exp.Before(now)
}
