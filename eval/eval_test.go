package eval

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambday/fstream/collection"
	"github.com/lambday/fstream/commonerrors"
	"github.com/lambday/fstream/commonerrors/errortest"
)

func squareRootChain(t *testing.T, source collection.Collection[int]) Eval[int, float64] {
	t.Helper()
	chain, err := Evaluate(source)
	require.NoError(t, err)
	roots := Map(chain, func(i int) float64 { return math.Sqrt(float64(i)) })
	text := Map(roots, func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) })
	return MapWithError(text, func(s string) (float64, error) {
		f, err := strconv.ParseFloat(s, 64)
		return f / 2, err
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("undefined source", func(t *testing.T) {
		_, err := Evaluate[int](nil)
		errortest.AssertError(t, err, commonerrors.ErrUndefined)
	})

	t.Run("without mappings the source is copied", func(t *testing.T) {
		values := []string{faker.Word(), faker.Word(), faker.Word()}
		source := collection.NewVector(values...)
		chain, err := Evaluate[string](source)
		require.NoError(t, err)
		assert.Zero(t, chain.Maps())
		result, err := chain.Yield()
		require.NoError(t, err)
		assert.Equal(t, values, result.Values())
		assert.NotSame(t, source, result)
		assert.Equal(t, values, source.Values())
	})

	t.Run("empty source", func(t *testing.T) {
		result, err := Map(EvaluateValues[int](), strconv.Itoa).Yield()
		require.NoError(t, err)
		assert.Zero(t, result.Len())
	})
}

func TestMap(t *testing.T) {
	t.Run("mappings are composed in order", func(t *testing.T) {
		source := collection.NewVector(collection.Range(1, 11, nil)...)
		chain := squareRootChain(t, source)
		assert.Equal(t, 3, chain.Maps())

		result, err := chain.Yield()
		require.NoError(t, err)
		require.Equal(t, 10, result.Len())
		for i, v := range result.Values() {
			assert.InDelta(t, math.Sqrt(float64(i+1))/2, v, 1e-12)
		}
	})

	t.Run("yield is repeatable", func(t *testing.T) {
		source := collection.NewVector(collection.Range(1, 11, nil)...)
		chain := squareRootChain(t, source)
		first, err := chain.Yield()
		require.NoError(t, err)
		second, err := chain.Get()
		require.NoError(t, err)
		assert.Equal(t, first.Values(), second.Values())
		assert.Equal(t, collection.Range(1, 11, nil), source.Values())
	})

	t.Run("nothing is evaluated before the chain is materialised", func(t *testing.T) {
		counter := collection.NewCounter[int](collection.NewVector(1, 2, 3))
		calls := 0
		chain, err := Evaluate[int](counter)
		require.NoError(t, err)
		mapped := Map(chain, func(i int) int {
			calls++
			return i * 2
		})
		assert.Zero(t, counter.Traversals())
		assert.Zero(t, calls)

		result, err := mapped.Yield()
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 6}, result.Values())
		assert.Equal(t, uint64(1), counter.Traversals())
		assert.Equal(t, 3, calls)

		_, err = mapped.Yield()
		require.NoError(t, err)
		assert.Equal(t, uint64(2), counter.Traversals())
		assert.Equal(t, 6, calls)
	})

	t.Run("chains are immutable", func(t *testing.T) {
		base := EvaluateValues("a", "b")
		upper := Map(base, strings.ToUpper)
		doubled := Map(base, func(s string) string { return s + s })

		result, err := upper.Yield()
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, result.Values())
		result, err = doubled.Yield()
		require.NoError(t, err)
		assert.Equal(t, []string{"aa", "bb"}, result.Values())
		result, err = base.Yield()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, result.Values())
	})

	t.Run("failing mapping", func(t *testing.T) {
		cause := errors.New(faker.Sentence())
		chain := MapWithError(EvaluateValues(1, 2, 3, 4), func(i int) (int, error) {
			if i == 3 {
				return 0, cause
			}
			return i, nil
		})
		_, err := chain.Yield()
		errortest.AssertError(t, err, commonerrors.ErrFailed)
		assert.ErrorIs(t, err, cause)
		errortest.AssertErrorDescription(t, err, "element #2")

		var seen []int
		for v := range chain.All() {
			seen = append(seen, v)
		}
		assert.Equal(t, []int{1, 2}, seen)
	})

	t.Run("undefined mapping", func(t *testing.T) {
		chain := Map[int, int, string](EvaluateValues(1, 2), nil)
		errortest.AssertError(t, chain.Validate(), commonerrors.ErrUndefined)
		_, err := chain.Yield()
		errortest.AssertError(t, err, commonerrors.ErrUndefined)
		_, err = Map(chain, strings.ToUpper).Yield()
		errortest.AssertError(t, err, commonerrors.ErrUndefined)
	})

	t.Run("zero value chain", func(t *testing.T) {
		var chain Eval[int, int]
		errortest.AssertError(t, chain.Validate(), commonerrors.ErrUndefined)
		_, err := chain.Yield()
		errortest.AssertError(t, err, commonerrors.ErrUndefined)
	})
}

func TestSequence(t *testing.T) {
	chain := Map(EvaluateValues(1, 2, 3, 4), func(i int) int { return i * i })
	var got []int
	for v, err := range chain.Sequence() {
		require.NoError(t, err)
		got = append(got, v)
		if v == 9 {
			break
		}
	}
	assert.Equal(t, []int{1, 4, 9}, got)
}

func TestFunctor(t *testing.T) {
	var functor Functor[int] = EvaluateValues(1, 2, 3)
	functor = functor.Apply(func(i int) int { return i + 1 }).Apply(func(i int) int { return i * 10 })
	assert.Equal(t, []int{20, 30, 40}, slices.Collect(functor.All()))
}

func TestFmap(t *testing.T) {
	result, err := Fmap[int](collection.NewVector(1, 2, 3), strconv.Itoa)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, result.Values())

	_, err = Fmap[int, string](nil, strconv.Itoa)
	errortest.AssertError(t, err, commonerrors.ErrUndefined)
}
