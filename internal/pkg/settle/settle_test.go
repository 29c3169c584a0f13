package settle

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllPreservesInputOrder(t *testing.T) {
	inputs := []int{5, 1, 4, 2, 3}
	results := All(context.Background(), 2, inputs, func(_ context.Context, n int) (int, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})

	require.Len(t, results, len(inputs))
	for i, res := range results {
		assert.NoError(t, res.Err)
		assert.Equal(t, inputs[i]*10, res.Value)
	}
}

func TestAllDoesNotShortCircuitOnErrors(t *testing.T) {
	boom := errors.New("boom")
	inputs := []int{0, 1, 2, 3}
	var attempts atomic.Int64

	results := All(context.Background(), 2, inputs, func(_ context.Context, n int) (int, error) {
		attempts.Add(1)
		if n%2 == 0 {
			return 0, boom
		}
		return n, nil
	})

	assert.Equal(t, int64(len(inputs)), attempts.Load())
	assert.ErrorIs(t, results[0].Err, boom)
	assert.NoError(t, results[1].Err)
	assert.ErrorIs(t, results[2].Err, boom)
	assert.NoError(t, results[3].Err)
}

func TestAllRespectsConcurrencyLimit(t *testing.T) {
	var current, peak atomic.Int64
	inputs := make([]int, 20)

	All(context.Background(), 3, inputs, func(_ context.Context, _ int) (struct{}, error) {
		now := current.Add(1)
		for {
			observed := peak.Load()
			if now <= observed || peak.CompareAndSwap(observed, now) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		current.Add(-1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, peak.Load(), int64(3))
}

func TestAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := All(ctx, 1, []int{1, 2, 3}, func(ctx context.Context, n int) (int, error) {
		return n, ctx.Err()
	})

	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
}

func TestAllEmptyInputs(t *testing.T) {
	results := All(context.Background(), 4, nil, func(_ context.Context, _ int) (int, error) {
		t.Fatal("fn must not be called")
		return 0, nil
	})
	assert.Empty(t, results)
}
