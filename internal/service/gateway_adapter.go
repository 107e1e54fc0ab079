package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	d "github.com/maavergroup/payos-link/internal/domain"
	"github.com/maavergroup/payos-link/internal/gateway"
	"github.com/maavergroup/payos-link/internal/metrics"
	"github.com/maavergroup/payos-link/pkg/logger"
)

// GatewayAdapter maps an Order onto a PayOS payment link.
type GatewayAdapter struct {
	client       gateway.PaymentLinkCreator
	clientDomain string
	timeout      time.Duration
	logger       *slog.Logger
}

// NewGatewayAdapter: a zero timeout leaves the call bounded only by ctx.
func NewGatewayAdapter(client gateway.PaymentLinkCreator, clientDomain string, timeout time.Duration, logger *slog.Logger) *GatewayAdapter {
	return &GatewayAdapter{
		client:       client,
		clientDomain: clientDomain,
		timeout:      timeout,
		logger:       logger,
	}
}

func (a *GatewayAdapter) CreateLink(ctx context.Context, order *d.Order, req *d.PaymentRequest) (*d.CheckoutResult, error) {
	data := a.BuildPaymentData(order, req)

	callCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	a.logger.DebugContext(ctx, "payment link pending", "order_code", order.OrderCode, "amount", order.TotalAmount, logger.Traced(ctx))

	start := time.Now()
	link, err := a.client.CreatePaymentLink(callCtx, data)
	metrics.ObserveGateway(err, time.Since(start))
	if err != nil {
		a.logger.WarnContext(ctx, "payment link failed", "order_code", order.OrderCode, "err", err, logger.Traced(ctx))
		return nil, d.GatewayError(err)
	}

	a.logger.InfoContext(ctx, "payment link completed",
		"order_code", order.OrderCode,
		"payment_link_id", link.PaymentLinkID,
		logger.Traced(ctx),
	)
	return &d.CheckoutResult{CheckoutURL: link.CheckoutURL}, nil
}

func (a *GatewayAdapter) BuildPaymentData(order *d.Order, req *d.PaymentRequest) gateway.PaymentData {
	items := make([]gateway.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = gateway.Item{Name: item.Name, Quantity: item.Quantity, Price: item.Price}
	}

	return gateway.PaymentData{
		OrderCode:   order.OrderCode,
		Amount:      order.TotalAmount,
		Description: req.Description,
		Items:       items,
		CancelURL:   redirectURL(a.clientDomain, "canceled", order.OrderCode),
		ReturnURL:   redirectURL(a.clientDomain, "success", order.OrderCode),
		BuyerName:   req.BuyerName,
		BuyerEmail:  req.BuyerEmail,
		BuyerPhone:  req.BuyerPhone,
		ExpiredAt:   order.ExpiredAt.Unix(),
	}
}

// redirectURL appends "<flag>=true&orderCode=N" to domain, keeping any query
// parameters it already has.
func redirectURL(domain, flag string, orderCode int64) string {
	code := strconv.FormatInt(orderCode, 10)
	u, err := url.Parse(domain)
	if err != nil {
		return fmt.Sprintf("%s?%s=true&orderCode=%s", domain, flag, code)
	}

	extra := flag + "=true&orderCode=" + code
	if u.RawQuery == "" {
		u.RawQuery = extra
	} else {
		u.RawQuery += "&" + extra
	}
	return u.String()
}
