package statistics

import (
	"context"
	"math"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lambday/fstream/collection"
	"github.com/lambday/fstream/commonerrors"
	"github.com/lambday/fstream/commonerrors/errortest"
	"github.com/lambday/fstream/logs/logstest"
	"github.com/lambday/fstream/parallelisation"
	"github.com/lambday/fstream/stream"
)

func TestSummarise(t *testing.T) {
	t.Run("one to ten", func(t *testing.T) {
		summary, err := Summarise(stream.FromSlice(collection.Range(1, 11, nil)...))
		require.NoError(t, err)
		assert.Equal(t, uint64(10), summary.Count)
		assert.InDelta(t, 5.5, summary.Mean, 1e-12)
		assert.InDelta(t, 55.0/6, summary.Variance, 1e-12)
		assert.Equal(t, 1, summary.Min)
		assert.Equal(t, 10, summary.Max)
	})

	t.Run("single traversal", func(t *testing.T) {
		counter := collection.NewCounter[float64](collection.NewVector(2.0, 4, 4, 4, 5, 5, 7, 9))
		s, err := stream.Of[float64](counter)
		require.NoError(t, err)
		summary, err := Summarise(s)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), counter.Traversals())
		assert.Equal(t, uint64(8), counter.Advances())
		assert.InDelta(t, 5, summary.Mean, 1e-12)
		assert.InDelta(t, 32.0/7, summary.Variance, 1e-12)
		assert.Equal(t, 2.0, summary.Min)
		assert.Equal(t, 9.0, summary.Max)
	})

	t.Run("empty", func(t *testing.T) {
		summary, err := Summarise(stream.FromSlice[int]())
		require.NoError(t, err)
		assert.Equal(t, Summary[int]{}, summary)
	})

	t.Run("undefined", func(t *testing.T) {
		_, err := Summarise[int](nil)
		errortest.AssertError(t, err, commonerrors.ErrUndefined)
	})
}

func TestSummariseInParallel(t *testing.T) {
	defer goleak.VerifyNone(t)
	values, err := faker.RandomInt(-500, 500, 200)
	require.NoError(t, err)
	expected, err := Summarise(stream.FromSlice(values...))
	require.NoError(t, err)

	for _, option := range []parallelisation.StoreOption{parallelisation.Parallel, parallelisation.Sequential, parallelisation.Workers(3), parallelisation.ChunkSize(7)} {
		summary, err := SummariseInParallel(context.Background(), values, option, parallelisation.WithLogger(logstest.NewTestLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, expected.Count, summary.Count)
		assert.Equal(t, expected.Min, summary.Min)
		assert.Equal(t, expected.Max, summary.Max)
		assert.InDelta(t, expected.Mean, summary.Mean, 1e-9)
		assert.InDelta(t, expected.Variance, summary.Variance, 1e-6)
	}

	t.Run("empty", func(t *testing.T) {
		summary, err := SummariseInParallel(context.Background(), []float64{})
		require.NoError(t, err)
		assert.Equal(t, Summary[float64]{}, summary)
	})

	t.Run("extrema agree when NaN is present", func(t *testing.T) {
		withNaN := []float64{2, 1, math.NaN(), 3, 5, -1}
		expected, err := Summarise(stream.FromSlice(withNaN...))
		require.NoError(t, err)
		assert.True(t, math.IsNaN(expected.Min))
		assert.Equal(t, 5.0, expected.Max)
		for _, size := range []int{1, 2, 4} {
			summary, err := SummariseInParallel(context.Background(), withNaN, parallelisation.ChunkSize(size))
			require.NoError(t, err)
			assert.True(t, math.IsNaN(summary.Min))
			assert.Equal(t, expected.Max, summary.Max)
			assert.Equal(t, expected.Count, summary.Count)
		}
	})

	t.Run("cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := SummariseInParallel(ctx, values)
		errortest.AssertError(t, err, commonerrors.ErrCancelled)
	})
}
