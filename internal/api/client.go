package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/francodavinci/masdeporte-mobile/internal/session"
)

// publicRoutes never get a bearer token attached.
var publicRoutes = []string{
	"/companies/public/",
	"/companies/all",
	"/companies/search",
	"/appointments/availability",
	"/users/auth/login",
	"/users/auth/register",
	"/users/auth/google",
	"/users/auth/refresh",
}

// authRoutes are exempt from the refresh-and-retry cycle: a 401 from login
// or refresh itself is terminal.
var authRoutes = []string{
	"/users/auth/login",
	"/users/auth/register",
	"/users/auth/refresh",
	"/users/auth/google",
}

// Client wraps outbound calls to the MasDeporte backend with bearer-token
// attachment and a single coordinated refresh-and-retry cycle.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   *session.Store
	log     *zap.Logger

	// refreshMu serializes refresh attempts so concurrent call chains
	// coalesce into one rotation instead of racing the credential store.
	refreshMu sync.Mutex
}

func New(baseURL string, timeout time.Duration, store *session.Store, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		store:   store,
		log:     log,
	}
}

// Store exposes the underlying session store for callers that restore or
// inspect the persisted session.
func (c *Client) Store() *session.Store { return c.store }

// request is one outbound call. retried is the one-shot flag that prevents
// infinite refresh loops; it travels with the call, not with shared state.
type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	retried bool
}

func (c *Client) do(ctx context.Context, rq request, out any) error {
	for {
		httpReq, usedToken, err := c.newHTTPRequest(ctx, rq)
		if err != nil {
			return err
		}

		start := time.Now()
		resp, err := c.httpc.Do(httpReq)
		if err != nil {
			c.log.Warn("request failed",
				zap.String("method", rq.method),
				zap.String("path", rq.path),
				zap.Error(err))
			return &Error{Kind: KindNetwork, Message: msgNetworkError, Err: err}
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return &Error{Kind: KindNetwork, Message: msgNetworkError, Err: readErr}
		}

		c.log.Debug("request",
			zap.String("method", rq.method),
			zap.String("path", rq.path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("latency", time.Since(start)))

		if isAuthFailure(resp.StatusCode) && !isAuthRoute(rq.path) && !rq.retried {
			rq.retried = true
			if _, rerr := c.refreshAccessToken(ctx, usedToken); rerr != nil {
				if IsKind(rerr, KindAuthInvalid) {
					// Refresh token confirmed invalid; credentials are
					// already cleared. Surface the original failure.
					return &Error{
						Kind:       KindAuthInvalid,
						StatusCode: resp.StatusCode,
						Message:    backendMessage(body),
						Err:        rerr,
					}
				}
				return statusError(resp.StatusCode, body)
			}
			// Token rotated; resubmit the original call exactly once.
			continue
		}

		if resp.StatusCode >= 400 {
			return statusError(resp.StatusCode, body)
		}

		if out != nil && len(body) > 0 {
			if err := json.Unmarshal(body, out); err != nil {
				return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: "respuesta inválida del servidor", Err: err}
			}
		}
		return nil
	}
}

func (c *Client) newHTTPRequest(ctx context.Context, rq request) (*http.Request, string, error) {
	target := c.baseURL + rq.path
	if len(rq.query) > 0 {
		target += "?" + rq.query.Encode()
	}

	var reader io.Reader
	if rq.body != nil {
		payload, err := json.Marshal(rq.body)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, rq.method, target, reader)
	if err != nil {
		return nil, "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	var usedToken string
	if !isPublicRoute(rq.path) {
		creds, err := c.store.Credentials()
		if err != nil {
			return nil, "", err
		}
		if creds.AccessToken != "" {
			httpReq.Header.Set("Authorization", "Bearer "+creds.AccessToken)
			usedToken = creds.AccessToken
		}
	}
	return httpReq, usedToken, nil
}

// refreshAccessToken performs the refresh critical section. staleToken is
// the access token the failed call carried: if the store already holds a
// different one, another call chain finished a refresh while this one
// waited, and its token is reused instead of rotating again.
func (c *Client) refreshAccessToken(ctx context.Context, staleToken string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	creds, err := c.store.Credentials()
	if err != nil {
		return "", err
	}
	if creds.AccessToken != "" && creds.AccessToken != staleToken {
		return creds.AccessToken, nil
	}
	if creds.RefreshToken == "" {
		// Nothing to refresh with; do not clear what is stored, the user
		// may be mid payment flow.
		return "", &Error{Kind: KindAuthExpired, Message: "no hay refresh token almacenado"}
	}

	// The refresh call goes straight through the HTTP client, outside the
	// retry pipeline, so a failing refresh can never trigger itself.
	// The backend expects the refresh token in a field named "token".
	payload, err := json.Marshal(map[string]string{"token": creds.RefreshToken})
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: msgNetworkError, Err: err}
	}
	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return "", &Error{Kind: KindNetwork, Message: msgNetworkError, Err: readErr}
	}

	if isAuthFailure(resp.StatusCode) {
		// The refresh token itself was rejected: the session is over.
		if clearErr := c.store.ClearCredentials(); clearErr != nil {
			c.log.Error("failed to clear credentials", zap.Error(clearErr))
		}
		c.log.Info("refresh token rejected, session cleared", zap.Int("status", resp.StatusCode))
		return "", &Error{Kind: KindAuthInvalid, StatusCode: resp.StatusCode, Message: backendMessage(body)}
	}
	if resp.StatusCode >= 400 {
		// Transient failure: the stored tokens may still be valid.
		return "", statusError(resp.StatusCode, body)
	}

	var rr refreshResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return "", &Error{Kind: KindServer, Message: "respuesta inválida del servidor", Err: err}
	}
	if rr.StatusCode != http.StatusOK || rr.Token == "" {
		return "", &Error{Kind: KindServer, StatusCode: rr.StatusCode, Message: rr.Message}
	}

	if err := c.store.SetTokens(rr.Token, rr.RefreshToken); err != nil {
		return "", err
	}
	c.log.Debug("access token rotated")
	return rr.Token, nil
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func isPublicRoute(path string) bool {
	for _, route := range publicRoutes {
		if strings.Contains(path, route) {
			return true
		}
	}
	return false
}

func isAuthRoute(path string) bool {
	for _, route := range authRoutes {
		if strings.Contains(path, route) {
			return true
		}
	}
	return false
}

func statusError(status int, body []byte) *Error {
	msg := backendMessage(body)
	switch {
	case status == http.StatusConflict:
		if msg == "" {
			msg = msgSlotTaken
		}
		return &Error{Kind: KindConflict, StatusCode: status, Message: msg}
	case isAuthFailure(status):
		if msg == "" {
			msg = msgLoginRequired
		}
		return &Error{Kind: KindAuthExpired, StatusCode: status, Message: msg}
	case status >= 500:
		if msg == "" {
			msg = msgServerError
		}
		return &Error{Kind: KindServer, StatusCode: status, Message: msg}
	default:
		return &Error{Kind: KindValidation, StatusCode: status, Message: msg}
	}
}

func backendMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error.Message
}
