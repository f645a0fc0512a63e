/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package statistics provides streaming estimators built on single-traversal reductions.
package statistics

import (
	"cmp"
	"context"

	"github.com/lambday/fstream/parallelisation"
	"github.com/lambday/fstream/reducer"
	"github.com/lambday/fstream/stream"
)

// Summary describes a set of numbers.
type Summary[T reducer.Number] struct {
	Count uint64
	Mean  float64
	// Variance is the unbiased sample variance.
	Variance float64
	Min      T
	Max      T
}

func newSummary[T reducer.Number](moments reducer.Moments, minimum, maximum reducer.Extremum[T]) Summary[T] {
	return Summary[T]{
		Count:    moments.Count,
		Mean:     moments.Mean,
		Variance: moments.Variance(),
		Min:      minimum.Value,
		Max:      maximum.Value,
	}
}

// Summarise computes the summary of a stream of numbers in a single traversal.
func Summarise[T reducer.Number](s *stream.Stream[T]) (summary Summary[T], err error) {
	moments, minimum, maximum, err := stream.Reduce3(s, reducer.MeanVariance[T](), reducer.Min[T](), reducer.Max[T]())
	if err != nil {
		return
	}
	summary = newSummary(moments, minimum, maximum)
	return
}

type partialSummary[T reducer.Number] struct {
	moments reducer.Moments
	min     reducer.Extremum[T]
	max     reducer.Extremum[T]
}

func mergeExtremum[T reducer.Number](a, b reducer.Extremum[T], keep func(candidate, current T) bool) reducer.Extremum[T] {
	if !a.Found || (b.Found && keep(b.Value, a.Value)) {
		return b
	}
	return a
}

func mergeSummaries[T reducer.Number](a, b partialSummary[T]) partialSummary[T] {
	return partialSummary[T]{
		moments: a.moments.Merge(b.moments),
		min:     mergeExtremum(a.min, b.min, func(candidate, current T) bool { return cmp.Less(candidate, current) }),
		max:     mergeExtremum(a.max, b.max, func(candidate, current T) bool { return cmp.Less(current, candidate) }),
	}
}

// SummariseInParallel is like Summarise over a slice of numbers whose chunks are summarised concurrently.
func SummariseInParallel[T reducer.Number](ctx context.Context, values []T, options ...parallelisation.StoreOption) (summary Summary[T], err error) {
	meanVariance, minimum, maximum := reducer.MeanVariance[T](), reducer.Min[T](), reducer.Max[T]()
	config := reducer.NewConfigWithError(partialSummary[T]{}, func(acc partialSummary[T], e T) (next partialSummary[T], err error) {
		next.moments, err = meanVariance.Accumulate(acc.moments, e)
		if err != nil {
			return
		}
		next.min, err = minimum.Accumulate(acc.min, e)
		if err != nil {
			return
		}
		next.max, err = maximum.Accumulate(acc.max, e)
		return
	})
	partial, err := parallelisation.Reduce(ctx, values, config, mergeSummaries[T], options...)
	if err != nil {
		return
	}
	summary = newSummary(partial.moments, partial.min, partial.max)
	return
}
