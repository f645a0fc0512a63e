package statistics

import (
	"context"
	"errors"
	"slices"
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
	"github.com/lambday/fstream/retry"
	"github.com/lambday/fstream/stream"
)

func blockMean(block []float64) (float64, error) {
	return stream.Numbers(block...).RunningMean()
}

func blockVariance(block []float64) (float64, error) {
	_, variance, err := stream.Numbers(block...).MeanAndVariance()
	return variance, err
}

func threeBlocks() [][]float64 {
	return [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
}

func randomBlocks(t *testing.T) (blocks [][]float64) {
	t.Helper()
	for range 20 {
		values, err := faker.RandomInt(0, 100, 10)
		require.NoError(t, err)
		blocks = append(blocks, collection.Map(values, func(v int) float64 { return float64(v) }))
	}
	return
}

func TestStatistic(t *testing.T) {
	mean, err := Statistic[[]float64](collection.NewVector(threeBlocks()...), blockMean)
	require.NoError(t, err)
	assert.InDelta(t, 5, mean, 1e-12)

	_, err = Statistic[[]float64](collection.NewVector(threeBlocks()...), nil)
	errortest.AssertError(t, err, commonerrors.ErrUndefined)
	_, err = Statistic[[]float64](nil, blockMean)
	errortest.AssertError(t, err, commonerrors.ErrUndefined)
}

func TestStatisticAndVariance(t *testing.T) {
	t.Run("known blocks", func(t *testing.T) {
		result, err := StatisticAndVariance[[]float64](collection.NewVector(threeBlocks()...), blockMean, blockVariance)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), result.Blocks)
		assert.InDelta(t, 5, result.Statistic, 1e-12)
		assert.InDelta(t, 1, result.Variance, 1e-12)
	})

	t.Run("blocks are traversed once", func(t *testing.T) {
		blocks := collection.NewCounter[[]float64](collection.NewVector(threeBlocks()...))
		_, err := StatisticAndVariance[[]float64](blocks, blockMean, blockVariance)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), blocks.Traversals())
		assert.Equal(t, uint64(3), blocks.Advances())
	})

	t.Run("empty", func(t *testing.T) {
		result, err := StatisticAndVariance[[]float64](collection.NewVector[[]float64](), blockMean, blockVariance)
		require.NoError(t, err)
		assert.Equal(t, Estimate{}, result)
	})

	t.Run("failing job", func(t *testing.T) {
		cause := errors.New(faker.Sentence())
		calls := 0
		failing := func(block []float64) (float64, error) {
			calls++
			if calls == 2 {
				return 0, cause
			}
			return blockVariance(block)
		}
		_, err := StatisticAndVariance[[]float64](collection.NewVector(threeBlocks()...), blockMean, failing)
		errortest.AssertError(t, err, commonerrors.ErrFailed)
		assert.ErrorIs(t, err, cause)
		assert.ErrorContains(t, err, "element #1")
		assert.Equal(t, 2, calls)
	})

	t.Run("undefined", func(t *testing.T) {
		blocks := collection.NewVector(threeBlocks()...)
		_, err := StatisticAndVariance[[]float64](blocks, nil, blockVariance)
		errortest.AssertError(t, err, commonerrors.ErrUndefined)
		_, err = StatisticAndVariance[[]float64](blocks, blockMean, nil)
		errortest.AssertError(t, err, commonerrors.ErrUndefined)
		_, err = StatisticAndVariance[[]float64](nil, blockMean, blockVariance)
		errortest.AssertError(t, err, commonerrors.ErrUndefined)
	})
}

func TestStatisticAndVarianceInParallel(t *testing.T) {
	defer goleak.VerifyNone(t)
	blocks := randomBlocks(t)
	expected, err := StatisticAndVariance[[]float64](collection.NewVector(blocks...), blockMean, blockVariance)
	require.NoError(t, err)

	for _, option := range []parallelisation.StoreOption{parallelisation.Parallel, parallelisation.Sequential, parallelisation.Workers(4)} {
		result, err := StatisticAndVarianceInParallel(context.Background(), blocks, blockMean, blockVariance, option)
		require.NoError(t, err)
		assert.Equal(t, expected, result)
	}

	t.Run("failing job", func(t *testing.T) {
		cause := errors.New(faker.Sentence())
		_, err := StatisticAndVarianceInParallel(context.Background(), blocks, func(block []float64) (float64, error) {
			if slices.Equal(block, blocks[5]) {
				return 0, cause
			}
			return blockMean(block)
		}, blockVariance, parallelisation.StopOnFirstError)
		errortest.AssertError(t, err, commonerrors.ErrFailed)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := StatisticAndVarianceInParallel(ctx, blocks, blockMean, blockVariance)
		errortest.AssertError(t, err, commonerrors.ErrCancelled)
	})

	t.Run("undefined", func(t *testing.T) {
		_, err := StatisticAndVarianceInParallel(context.Background(), blocks, nil, blockVariance)
		errortest.AssertError(t, err, commonerrors.ErrUndefined)
	})
}

func TestWithRetry(t *testing.T) {
	transient := errors.New(faker.Sentence())
	attempts := map[float64]int{}
	flaky := func(block []float64) (float64, error) {
		attempts[block[0]]++
		if attempts[block[0]] < 3 {
			return 0, transient
		}
		return blockMean(block)
	}
	logger := logstest.NewTestLogger(t)

	result, err := StatisticAndVariance[[]float64](collection.NewVector(threeBlocks()...), WithRetry(context.Background(), logger, retry.DefaultBasicRetryPolicy(), flaky, transient), blockVariance)
	require.NoError(t, err)
	assert.InDelta(t, 5, result.Statistic, 1e-12)
	assert.Equal(t, map[float64]int{1: 3, 4: 3, 7: 3}, attempts)

	clear(attempts)
	_, err = StatisticAndVariance[[]float64](collection.NewVector(threeBlocks()...), WithRetry(context.Background(), logger, retry.DefaultNoRetryPolicy(), flaky), blockVariance)
	errortest.AssertError(t, err, commonerrors.ErrFailed)
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, map[float64]int{1: 1}, attempts)

	assert.Nil(t, WithRetry[[]float64](context.Background(), logger, retry.DefaultBasicRetryPolicy(), nil))
}
