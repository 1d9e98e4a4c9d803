package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelMapPreservesOrder(t *testing.T) {
	items := []int{5, 3, 8, 1}

	results := ParallelMap(context.Background(), items, func(_ context.Context, n int) (int, error) {
		return n * 10, nil
	})

	values, err := OrderedValues(results)
	require.NoError(t, err)
	assert.Equal(t, []int{50, 30, 80, 10}, values)
}

func TestParallelMapWithLimitBoundsConcurrency(t *testing.T) {
	const limit = 2
	var inFlight, peak int64

	items := make([]int, 16)
	ParallelMapWithLimit(context.Background(), items, func(_ context.Context, _ int) (struct{}, error) {
		n := atomic.AddInt64(&inFlight, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		atomic.AddInt64(&inFlight, -1)
		return struct{}{}, nil
	}, limit)

	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(limit))
}

func TestOrderedValuesSurfacesFirstError(t *testing.T) {
	boom := errors.New("boom")

	results := ParallelMap(context.Background(), []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})

	_, err := OrderedValues(results)
	assert.True(t, errors.Is(err, boom))
}

func TestParallelExecuteCollectsAllResults(t *testing.T) {
	tasks := []Task[string]{
		func(context.Context) (string, error) { return "a", nil },
		func(context.Context) (string, error) { return "", errors.New("failed") },
		func(context.Context) (string, error) { return "c", nil },
	}

	results := ParallelExecute(context.Background(), tasks)

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Value)
	assert.Error(t, results[1].Error)
	assert.Equal(t, 2, results[2].Index)
}
