package ordercode

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAllocator_UsesSeed(t *testing.T) {
	a := NewMemoryAllocator()

	code, err := a.Next(context.Background(), 1760693400)
	require.NoError(t, err)
	assert.Equal(t, int64(1760693400), code)

	code, err = a.Next(context.Background(), 1760693460)
	require.NoError(t, err)
	assert.Equal(t, int64(1760693460), code)
}

func TestMemoryAllocator_SameSecondAdvances(t *testing.T) {
	a := NewMemoryAllocator()
	ctx := context.Background()

	first, _ := a.Next(ctx, 100)
	second, _ := a.Next(ctx, 100)
	third, _ := a.Next(ctx, 99)

	assert.Equal(t, int64(100), first)
	assert.Equal(t, int64(101), second)
	assert.Equal(t, int64(102), third)
}

func TestMemoryAllocator_ConcurrentCodesAreUnique(t *testing.T) {
	a := NewMemoryAllocator()
	const workers = 50
	const perWorker = 20

	var mu sync.Mutex
	seen := make(map[int64]bool)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				code, err := a.Next(context.Background(), 1000)
				assert.NoError(t, err)
				mu.Lock()
				seen[code] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestMemoryAllocator_Advance(t *testing.T) {
	a := NewMemoryAllocator()
	ctx := context.Background()

	a.Advance(500)
	code, _ := a.Next(ctx, 500)
	assert.Equal(t, int64(501), code)

	a.Advance(100)
	code, _ = a.Next(ctx, 100)
	assert.Equal(t, int64(502), code)
}
