package gateway

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/maavergroup/payos-link/pkg/circuitbreaker"
)

// BreakerClient stops calling PayOS while it keeps failing. Rejections
// reported by PayOS itself and callers that give up do not trip the breaker.
type BreakerClient struct {
	next    PaymentLinkCreator
	breaker *circuitbreaker.Breaker[*PaymentLink]
}

func NewBreakerClient(next PaymentLinkCreator, maxFailures uint32, openTimeout time.Duration, logger *slog.Logger) *BreakerClient {
	b := circuitbreaker.New[*PaymentLink](circuitbreaker.Config{
		Name:        "payos",
		MaxFailures: maxFailures,
		OpenTimeout: openTimeout,
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			return err == nil || errors.As(err, &apiErr) || errors.Is(err, context.Canceled)
		},
	}, logger)
	return &BreakerClient{next: next, breaker: b}
}

func (c *BreakerClient) CreatePaymentLink(ctx context.Context, data PaymentData) (*PaymentLink, error) {
	return c.breaker.Execute(func() (*PaymentLink, error) {
		return c.next.CreatePaymentLink(ctx, data)
	})
}
