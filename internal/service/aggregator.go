package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	d "github.com/maavergroup/payos-link/internal/domain"
	"github.com/maavergroup/payos-link/internal/ordercode"
)

var ErrAmountOverflow = errors.New("total amount overflows int64")

// Aggregator derives the Order for a validated request.
type Aggregator struct {
	codes ordercode.Allocator
	now   func() time.Time
}

func NewAggregator(codes ordercode.Allocator, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{codes: codes, now: now}
}

func (a *Aggregator) Aggregate(ctx context.Context, req *d.PaymentRequest) (*d.Order, error) {
	if len(req.Items) == 0 {
		return nil, d.AggregationError(d.ErrEmptyItems)
	}

	total, err := TotalAmount(req.Items)
	if err != nil {
		return nil, d.AggregationError(err)
	}

	createdAt := a.now()
	code, err := a.codes.Next(ctx, createdAt.Unix())
	if err != nil {
		return nil, d.AggregationError(fmt.Errorf("allocate order code: %w", err))
	}

	return &d.Order{
		OrderCode:   code,
		TotalAmount: total,
		CreatedAt:   createdAt,
		ExpiredAt:   createdAt.Add(d.LinkLifetime),
	}, nil
}

// TotalAmount sums quantity*price over items without rounding.
func TotalAmount(items []d.LineItem) (int64, error) {
	var total int64
	for _, item := range items {
		if item.Quantity != 0 && item.Price > math.MaxInt64/item.Quantity {
			return 0, ErrAmountOverflow
		}
		line := item.Quantity * item.Price
		if total > math.MaxInt64-line {
			return 0, ErrAmountOverflow
		}
		total += line
	}
	return total, nil
}
