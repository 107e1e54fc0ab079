// Package ordercode issues the integer order codes PayOS uses to identify a
// payment link. Codes are seeded from the wall clock in seconds and are
// advanced past any code already handed out.
package ordercode

import (
	"context"
	"sync/atomic"
)

type Allocator interface {
	Next(ctx context.Context, seed int64) (int64, error)
}

// MemoryAllocator never returns the same code twice within one process.
type MemoryAllocator struct {
	last atomic.Int64
}

func NewMemoryAllocator() *MemoryAllocator {
	return &MemoryAllocator{}
}

func (a *MemoryAllocator) Next(_ context.Context, seed int64) (int64, error) {
	for {
		last := a.last.Load()
		code := seed
		if code <= last {
			code = last + 1
		}
		if a.last.CompareAndSwap(last, code) {
			return code, nil
		}
	}
}

// Advance raises the floor so that later codes are greater than code.
func (a *MemoryAllocator) Advance(code int64) {
	for {
		last := a.last.Load()
		if code <= last || a.last.CompareAndSwap(last, code) {
			return
		}
	}
}
