package reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/francodavinci/masdeporte-mobile/internal/api"
	"github.com/francodavinci/masdeporte-mobile/internal/booking"
	"github.com/francodavinci/masdeporte-mobile/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var padel = api.Service{ID: 3, Name: "Cancha de pádel", Price: 10000, DurationMinutes: 90}

func newFlow() *Flow {
	return New(padel, 1, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local), "10:30:00")
}

func newCouponClient(t *testing.T, discount float64, reject bool) *api.Client {
	t.Helper()

	r := gin.New()
	r.POST("/api/coupons/apply-and-use", func(c *gin.Context) {
		if reject {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cupón no válido para esta empresa"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"discountAmount": discount,
				"coupon":         gin.H{"code": "VERANO25"},
			},
		})
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	store, err := session.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.SetCredentials(session.Credentials{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Role:         "USER",
	}))
	return api.New(server.URL, 5*time.Second, store, zap.NewNop())
}

func TestNew_NormalizesSlot(t *testing.T) {
	f := newFlow()
	assert.Equal(t, "10:30", f.TimeSlot)
}

func TestFlow_BreakdownWithoutCoupon(t *testing.T) {
	f := newFlow()

	bd, err := f.Breakdown()
	require.NoError(t, err)
	assert.Equal(t, 10000.0, bd.OriginalAmount)
	assert.Equal(t, 2500.0, bd.DepositAmount)
	assert.Equal(t, 7500.0, bd.RemainingAmount)
}

func TestFlow_ApplyCoupon(t *testing.T) {
	f := newFlow()
	client := newCouponClient(t, 1500, false)

	result, err := f.ApplyCoupon(context.Background(), client, "  verano25 ", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, result.DiscountAmount)
	assert.Equal(t, "VERANO25", result.Coupon.Code)
	require.NotNil(t, f.Coupon())

	bd, err := f.Breakdown()
	require.NoError(t, err)
	assert.Equal(t, 8500.0, bd.DiscountedAmount)
	assert.Equal(t, 2125.0, bd.DepositAmount)
}

func TestFlow_ApplyCoupon_RejectionClearsState(t *testing.T) {
	f := newFlow()

	// Apply a valid coupon first, then a rejected one: the flow must not
	// keep the previous discount.
	_, err := f.ApplyCoupon(context.Background(), newCouponClient(t, 1500, false), "VERANO25", "ana@example.com")
	require.NoError(t, err)

	_, err = f.ApplyCoupon(context.Background(), newCouponClient(t, 0, true), "OTRO", "ana@example.com")
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindCouponRejected))
	assert.Nil(t, f.Coupon())
}

func TestFlow_ApplyCoupon_EmptyCode(t *testing.T) {
	f := newFlow()

	_, err := f.ApplyCoupon(context.Background(), newCouponClient(t, 0, false), "   ", "ana@example.com")
	assert.ErrorIs(t, err, booking.ErrEmptyCouponCode)
}

func TestFlow_ApplyCoupon_DiscountAbovePriceRejected(t *testing.T) {
	f := newFlow()

	_, err := f.ApplyCoupon(context.Background(), newCouponClient(t, 99999, false), "VERANO25", "ana@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, booking.ErrInvalidAmount)
	assert.Nil(t, f.Coupon())
}

func TestFlow_RemoveCoupon(t *testing.T) {
	f := newFlow()
	_, err := f.ApplyCoupon(context.Background(), newCouponClient(t, 1500, false), "VERANO25", "ana@example.com")
	require.NoError(t, err)

	f.RemoveCoupon()
	assert.Nil(t, f.Coupon())

	bd, err := f.Breakdown()
	require.NoError(t, err)
	assert.Equal(t, 10000.0, bd.DiscountedAmount)
}

func TestBuildPreference(t *testing.T) {
	f := newFlow()
	f.Notes = "Traigo mi propia paleta"
	now := time.Date(2026, time.February, 20, 18, 0, 0, 0, time.Local)

	pref, err := f.BuildPreference(
		api.Payer{Email: "ana@example.com", Name: "Ana", Surname: "García"},
		"42",
		DeepLinkBackURLs(),
		"https://masdeportebackend.up.railway.app",
		now,
	)
	require.NoError(t, err)

	assert.Equal(t, "Seña - Cancha de pádel", pref.Title)
	assert.Equal(t, "Seña del 25% para reserva de Cancha de pádel - lunes, 2 de marzo de 2026 10:30", pref.Description)
	assert.Equal(t, 2500.0, pref.Amount)
	assert.Equal(t, 1, pref.Quantity)
	assert.Equal(t, "ARS", pref.Currency)
	assert.Equal(t, "appointment_"+strconv.FormatInt(now.UnixMilli(), 10), pref.ExternalReference)
	assert.Equal(t, "2026-03-02T10:30:00", pref.StartTime)
	assert.Equal(t, "Traigo mi propia paleta", pref.Notes)
	assert.Equal(t, 10000.0, pref.OriginalAmount)
	assert.Equal(t, 10000.0, pref.TotalAmountWithDiscount)
	assert.Equal(t, "masdeporte://payment?status=success", pref.BackURLs.Success)
	assert.Equal(t, "https://masdeportebackend.up.railway.app/api/mercadopago/notifications", pref.NotificationURL)
	assert.Equal(t, "approved", pref.AutoReturn)
	assert.True(t, pref.Expires)
	assert.Equal(t, now.Format(time.RFC3339), pref.ExpirationDateFrom)
	assert.Equal(t, now.Add(24*time.Hour).Format(time.RFC3339), pref.ExpirationDateTo)
	assert.Equal(t, "Ana", pref.Payer.Name)
	assert.Nil(t, pref.AppliedCoupon)
}

func TestBuildPreference_PayerFallbacks(t *testing.T) {
	f := newFlow()

	pref, err := f.BuildPreference(api.Payer{Email: "ana@example.com"}, "", DeepLinkBackURLs(), "https://backend", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "Usuario", pref.Payer.Name)
	assert.Equal(t, "MasDeporte", pref.Payer.Surname)
}

func TestBuildPreference_CarriesAppliedCoupon(t *testing.T) {
	f := newFlow()
	_, err := f.ApplyCoupon(context.Background(), newCouponClient(t, 1500, false), "VERANO25", "ana@example.com")
	require.NoError(t, err)

	pref, err := f.BuildPreference(api.Payer{Email: "ana@example.com"}, "42", DeepLinkBackURLs(), "https://backend", time.Now())
	require.NoError(t, err)

	require.NotNil(t, pref.AppliedCoupon)
	assert.Equal(t, 1500.0, pref.AppliedCoupon.DiscountAmount)
	assert.Equal(t, 2125.0, pref.Amount)
	assert.Equal(t, 8500.0, pref.TotalAmountWithDiscount)
}

func TestListenerBackURLs(t *testing.T) {
	urls := ListenerBackURLs("http://127.0.0.1:4242/payment")
	assert.Equal(t, "http://127.0.0.1:4242/payment?status=success", urls.Success)
	assert.Equal(t, "http://127.0.0.1:4242/payment?status=failure", urls.Failure)
	assert.Equal(t, "http://127.0.0.1:4242/payment?status=pending", urls.Pending)
}

