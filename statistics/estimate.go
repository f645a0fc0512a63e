/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package statistics

import (
	"context"
	"slices"

	"github.com/go-logr/logr"

	"github.com/lambday/fstream/collection"
	"github.com/lambday/fstream/commonerrors"
	"github.com/lambday/fstream/eval"
	"github.com/lambday/fstream/parallelisation"
	"github.com/lambday/fstream/reducer"
	"github.com/lambday/fstream/retry"
	"github.com/lambday/fstream/stream"
)

// BlockJob computes a value from a block of data.
type BlockJob[B any] func(block B) (float64, error)

// Estimate is the mean over blocks of a per-block statistic and of its variance.
type Estimate struct {
	Statistic float64
	Variance  float64
	Blocks    uint64
}

// WithRetry returns a job running job again, as policy describes, when it fails with one of retriableErr or with
// any error if none is given.
func WithRetry[B any](ctx context.Context, logger logr.Logger, policy *retry.Policy, job BlockJob[B], retriableErr ...error) BlockJob[B] {
	if job == nil {
		return nil
	}
	retriable := func(err error) bool {
		return len(retriableErr) == 0 || commonerrors.Any(err, retriableErr...)
	}
	return func(block B) (float64, error) {
		return retry.Value(ctx, logger, policy, func() (float64, error) { return job(block) }, "block job failed", retriable)
	}
}

type jobs[B any] struct {
	statistic BlockJob[B]
	variance  BlockJob[B]
}

func (j jobs[B]) check() error {
	if j.statistic == nil {
		return commonerrors.UndefinedVariable("statistic job")
	}
	if j.variance == nil {
		return commonerrors.UndefinedVariable("variance job")
	}
	return nil
}

// both runs the two jobs over the same block.
func (j jobs[B]) both(block B) (values reducer.Pair[float64, float64], err error) {
	values.First, err = j.statistic(block)
	if err != nil {
		err = commonerrors.WrapError(commonerrors.ErrFailed, err, "statistic job")
		return
	}
	values.Second, err = j.variance(block)
	if err != nil {
		err = commonerrors.WrapError(commonerrors.ErrFailed, err, "variance job")
	}
	return
}

func estimate(s *stream.Stream[reducer.Pair[float64, float64]]) (result Estimate, err error) {
	statistic, variance, count, err := stream.Reduce3(s,
		reducer.Bind(reducer.RunningMean[float64](), reducer.First[float64, float64]()),
		reducer.Bind(reducer.RunningMean[float64](), reducer.Second[float64, float64]()),
		reducer.Count[reducer.Pair[float64, float64]](),
	)
	if err != nil {
		return
	}
	result = Estimate{Statistic: statistic.First, Variance: variance.First, Blocks: count}
	return
}

// Statistic returns the mean over blocks of a per-block statistic.
func Statistic[B any](blocks collection.Collection[B], statistic BlockJob[B]) (mean float64, err error) {
	if statistic == nil {
		err = commonerrors.UndefinedVariable("statistic job")
		return
	}
	chain, err := eval.Evaluate(blocks)
	if err != nil {
		return
	}
	s, err := stream.FromEval(eval.MapWithError(chain, collection.MapWithErrorFunc[B, float64](statistic)))
	if err != nil {
		return
	}
	return stream.AsNumbers(s).RunningMean()
}

// StatisticAndVariance computes both the statistic and the variance of every block, and returns their means over
// blocks. Blocks are traversed once and each of them is only seen by the two jobs in turn.
func StatisticAndVariance[B any](blocks collection.Collection[B], statistic, variance BlockJob[B]) (result Estimate, err error) {
	j := jobs[B]{statistic: statistic, variance: variance}
	err = j.check()
	if err != nil {
		return
	}
	chain, err := eval.Evaluate(blocks)
	if err != nil {
		return
	}
	s, err := stream.FromEval(eval.MapWithError(chain, j.both))
	if err != nil {
		return
	}
	return estimate(s)
}

// StatisticAndVarianceInParallel is like StatisticAndVariance but blocks are processed concurrently. Results are
// combined in block order so that they are the same as those of StatisticAndVariance.
func StatisticAndVarianceInParallel[B any](ctx context.Context, blocks []B, statistic, variance BlockJob[B], options ...parallelisation.StoreOption) (result Estimate, err error) {
	j := jobs[B]{statistic: statistic, variance: variance}
	err = j.check()
	if err != nil {
		return
	}
	values, err := parallelisation.Map(ctx, blocks, func(fCtx context.Context, block B) (reducer.Pair[float64, float64], error) {
		err := parallelisation.DetermineContextError(fCtx)
		if err != nil {
			return reducer.Pair[float64, float64]{}, err
		}
		return j.both(block)
	}, options...)
	if err != nil {
		return
	}
	s, err := stream.FromSequence(slices.Values(values))
	if err != nil {
		return
	}
	return estimate(s)
}
