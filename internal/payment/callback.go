package payment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Listener is a localhost HTTP server that stands in for the mobile deep
// link: Mercado Pago's back_urls point at it and the redirect after payment
// lands on /payment with the usual query parameters.
type Listener struct {
	srv     *http.Server
	addr    string
	results chan CallbackResult
	log     *zap.Logger
}

func NewListener(addr string, log *zap.Logger) *Listener {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	l := &Listener{
		addr:    addr,
		results: make(chan CallbackResult, 1),
		log:     log,
	}
	r.GET("/payment", l.handlePayment)

	l.srv = &http.Server{Addr: addr, Handler: r}
	return l
}

// Handler exposes the listener's routes for tests that bind them to an
// ephemeral port.
func (l *Listener) Handler() http.Handler {
	return l.srv.Handler
}

// URL is the base redirect target, without query parameters.
func (l *Listener) URL() string {
	return "http://" + l.addr + "/payment"
}

// Start serves in the background until Shutdown.
func (l *Listener) Start() {
	go func() {
		if err := l.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.log.Error("payment callback listener failed", zap.Error(err))
		}
	}()
}

// Wait blocks until a redirect arrives or the context ends.
func (l *Listener) Wait(ctx context.Context) (CallbackResult, error) {
	select {
	case r := <-l.results:
		return r, nil
	case <-ctx.Done():
		return CallbackResult{}, ctx.Err()
	}
}

func (l *Listener) Shutdown(ctx context.Context) error {
	return l.srv.Shutdown(ctx)
}

func (l *Listener) handlePayment(c *gin.Context) {
	result := ResolveCallback(c.Request.URL.Query())
	l.log.Info("payment callback received",
		zap.String("status", result.Status),
		zap.String("payment_id", result.PaymentID))

	// Only the first redirect matters; the provider may retry.
	select {
	case l.results <- result:
	default:
	}

	if IsApproved(result.Status) {
		c.String(http.StatusOK, "¡Pago recibido! Ya puedes volver a la terminal.")
		return
	}
	c.String(http.StatusOK, "Pago %s. Ya puedes volver a la terminal.", result.Status)
}

// WaitTimeout is how long the booking flow waits for the user to finish
// paying before giving up.
const WaitTimeout = 15 * time.Minute
