package service

import (
	"context"
	"log/slog"

	d "github.com/maavergroup/payos-link/internal/domain"
	"github.com/maavergroup/payos-link/internal/metrics"
	"github.com/maavergroup/payos-link/pkg/logger"
)

type PaymentLinkCreator interface {
	Create(ctx context.Context, body []byte) (*d.CheckoutResult, error)
}

// PaymentLinkService runs validate -> aggregate -> gateway for one request.
type PaymentLinkService struct {
	validator  *Validator
	aggregator *Aggregator
	gateway    *GatewayAdapter
	logger     *slog.Logger
}

func NewPaymentLinkService(v *Validator, a *Aggregator, g *GatewayAdapter, logger *slog.Logger) *PaymentLinkService {
	return &PaymentLinkService{
		validator:  v,
		aggregator: a,
		gateway:    g,
		logger:     logger,
	}
}

func (s *PaymentLinkService) Create(ctx context.Context, body []byte) (*d.CheckoutResult, error) {
	req, err := s.validator.Parse(body)
	if err != nil {
		return nil, s.fail(ctx, "validate", err)
	}

	order, err := s.aggregator.Aggregate(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, "aggregate", err)
	}

	result, err := s.gateway.CreateLink(ctx, order, req)
	if err != nil {
		metrics.PaymentLinksTotal.WithLabelValues(string(d.KindOf(err))).Inc()
		return nil, err
	}

	metrics.PaymentLinksTotal.WithLabelValues("created").Inc()
	return result, nil
}

func (s *PaymentLinkService) fail(ctx context.Context, stage string, err error) error {
	metrics.PaymentLinksTotal.WithLabelValues(string(d.KindOf(err))).Inc()
	s.logger.InfoContext(ctx, "payment link request rejected", "stage", stage, "err", err, logger.Traced(ctx))
	return err
}
