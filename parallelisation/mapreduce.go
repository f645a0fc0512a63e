/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package parallelisation

import (
	"context"
	"slices"

	"github.com/lambday/fstream/collection"
	"github.com/lambday/fstream/commonerrors"
	"github.com/lambday/fstream/field"
	"github.com/lambday/fstream/reducer"
)

type TransformFunc[I any, O any] func(context.Context, I) (output O, err error)

// MergeFunc combines two partial results of a reduction.
type MergeFunc[U any] func(U, U) U

// Map applies transform to every element of values, concurrently unless the Sequential option is given.
// Each result is written to its own slot so that results are in the same order as values.
func Map[I, O any](ctx context.Context, values []I, transform TransformFunc[I, O], options ...StoreOption) (results []O, err error) {
	if transform == nil {
		err = commonerrors.UndefinedVariable("transform function")
		return
	}
	opts := WithOptions(options...)
	err = opts.Validate()
	if err != nil {
		return
	}
	outputs := make([]O, len(values))
	g := NewExecutionGroup[int](func(fCtx context.Context, i int) error {
		o, subErr := transform(fCtx, values[i])
		if subErr != nil {
			return commonerrors.WrapErrorf(commonerrors.ErrFailed, subErr, "transformation of element #%v failed", i)
		}
		outputs[i] = o
		return nil
	}, options...)
	g.RegisterFunction(collection.Range(0, len(values), nil)...)

	logger := opts.Logger()
	logger.V(1).Info("transforming elements", "elements", len(values), "workers", opts.Workers(len(values)))
	err = g.Execute(ctx)
	if err != nil {
		logger.Error(err, "transformation failed")
		return
	}
	results = outputs
	return
}

type chunk struct {
	index int
	start int
	end   int
}

func partition(n int, opts *StoreOptions) (chunks []chunk) {
	if n <= 0 {
		return
	}
	workers := opts.Workers(n)
	size := field.OptionalPositiveInt(opts.chunkSize, (n+workers-1)/workers)
	for start := 0; start < n; start += size {
		chunks = append(chunks, chunk{index: len(chunks), start: start, end: min(start+size, n)})
	}
	return
}

// Reduce reduces values with config by splitting them into contiguous chunks, reducing each chunk in its own task
// and merging the partial results in chunk order.
// The result equals the sequential reduction of values as long as the accumulation is associative and the initial
// value of config is an identity for merge.
func Reduce[T, U any](ctx context.Context, values []T, config reducer.Config[T, U], merge MergeFunc[U], options ...StoreOption) (result U, err error) {
	result = config.Initial()
	err = config.Validate()
	if err != nil {
		return
	}
	if merge == nil {
		err = commonerrors.UndefinedVariable("merge function")
		return
	}
	opts := WithOptions(options...)
	err = opts.Validate()
	if err != nil {
		return
	}

	chunks := partition(len(values), opts)
	partials := make([]U, len(chunks))
	g := NewExecutionGroup[chunk](func(fCtx context.Context, c chunk) error {
		partial, subErr := reducer.Reduce(slices.Values(values[c.start:c.end]), config)
		if subErr != nil {
			return commonerrors.WrapErrorf(commonerrors.ErrFailed, subErr, "reduction of chunk #%v [%v,%v) failed", c.index, c.start, c.end)
		}
		partials[c.index] = partial
		return nil
	}, options...)
	g.RegisterFunction(chunks...)

	logger := opts.Logger()
	logger.V(1).Info("reducing elements", "elements", len(values), "chunks", len(chunks), "workers", opts.Workers(len(chunks)))
	err = g.Execute(ctx)
	if err != nil {
		logger.Error(err, "reduction failed")
		return
	}
	result = collection.Reduce(partials, config.Initial(), collection.ReduceFunc[U, U](merge))
	return
}
