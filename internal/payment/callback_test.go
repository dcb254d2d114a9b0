package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func redirect(t *testing.T, baseURL, query string) {
	t.Helper()
	resp, err := http.Get(baseURL + "/payment?" + query)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListener_DeliversFirstRedirect(t *testing.T) {
	l := NewListener("127.0.0.1:0", zap.NewNop())
	server := httptest.NewServer(l.srv.Handler)
	defer server.Close()

	redirect(t, server.URL, "collection_status=approved&collection_id=123&external_reference=appointment_9")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := l.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, "approved", result.Status)
	assert.Equal(t, "123", result.PaymentID)
	assert.Equal(t, "appointment_9", result.ExternalReference)
}

func TestListener_ProviderRetriesAreIgnored(t *testing.T) {
	l := NewListener("127.0.0.1:0", zap.NewNop())
	server := httptest.NewServer(l.srv.Handler)
	defer server.Close()

	redirect(t, server.URL, "status=approved&payment_id=1")
	redirect(t, server.URL, "status=failure&payment_id=2")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := l.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Status)
	assert.Equal(t, "1", result.PaymentID)
}

func TestListener_WaitHonorsContext(t *testing.T) {
	l := NewListener("127.0.0.1:0", zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
