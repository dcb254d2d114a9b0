package api

import (
	"context"
	"net/http"
	"time"

	"github.com/francodavinci/masdeporte-mobile/internal/pkg/token"
	"github.com/francodavinci/masdeporte-mobile/internal/session"
)

// LoginResult is what callers need after a successful authentication.
type LoginResult struct {
	Role    string
	Message string
}

// Login authenticates with email and password and persists the returned
// credential triple.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out loginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/users/auth/login",
		body:   map[string]string{"email": email, "password": password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return c.finishLogin(out, email)
}

// LoginWithGoogle exchanges a Google credential for a session, persisting
// tokens exactly as Login does.
func (c *Client) LoginWithGoogle(ctx context.Context, credential string) (*LoginResult, error) {
	var out loginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/users/auth/google",
		body:   map[string]string{"credential": credential},
	}, &out)
	if err != nil {
		return nil, err
	}
	return c.finishLogin(out, "")
}

func (c *Client) finishLogin(out loginResponse, email string) (*LoginResult, error) {
	if out.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindValidation, StatusCode: out.StatusCode, Message: out.Message}
	}
	err := c.store.SetCredentials(session.Credentials{
		AccessToken:  out.Token,
		RefreshToken: out.RefreshToken,
		Role:         out.Role,
	})
	if err != nil {
		return nil, err
	}
	if email != "" {
		if err := c.store.SetProfile(session.Profile{Email: email}); err != nil {
			return nil, err
		}
	}
	return &LoginResult{Role: out.Role, Message: out.Message}, nil
}

// Register creates a user account. The mobile client always registers with
// role USER; owners are created elsewhere.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/users/auth/register",
		body: map[string]string{
			"name":     name,
			"role":     "USER",
			"email":    email,
			"password": password,
		},
	}, nil)
}

// Logout discards the stored credential triple. Purely local; the backend
// has no logout endpoint.
func (c *Client) Logout(ctx context.Context) error {
	return c.store.ClearCredentials()
}

// CheckAuth reports whether a complete session is stored locally.
func (c *Client) CheckAuth() (bool, error) {
	return c.store.IsAuthenticated()
}

// SessionStatus describes the restored session for display.
type SessionStatus struct {
	Authenticated bool
	Role          string
	Email         string
	ExpiresAt     time.Time
	Expired       bool
}

// SessionStatus inspects the stored access token's unverified expiry so the
// state can be shown without a network round trip.
func (c *Client) SessionStatus(now time.Time) (SessionStatus, error) {
	creds, err := c.store.Credentials()
	if err != nil {
		return SessionStatus{}, err
	}
	profile, err := c.store.Profile()
	if err != nil {
		return SessionStatus{}, err
	}

	st := SessionStatus{
		Authenticated: creds.AccessToken != "" && creds.RefreshToken != "" && creds.Role != "",
		Role:          creds.Role,
		Email:         profile.Email,
	}
	if creds.AccessToken != "" {
		if exp, err := token.ExpiresAt(creds.AccessToken); err == nil {
			st.ExpiresAt = exp
			st.Expired = exp.Before(now)
		} else {
			st.Expired = true
		}
	}
	return st, nil
}
