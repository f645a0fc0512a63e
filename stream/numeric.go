/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package stream

import (
	"github.com/lambday/fstream/reducer"
)

// Numeric is a stream of numbers providing the usual reductions.
type Numeric[T reducer.Number] struct {
	*Stream[T]
}

// Numbers returns a numeric stream over a copy of values.
func Numbers[T reducer.Number](values ...T) *Numeric[T] {
	return &Numeric[T]{Stream: FromSlice(values...)}
}

// AsNumbers returns a numeric view of s.
func AsNumbers[T reducer.Number](s *Stream[T]) *Numeric[T] {
	return &Numeric[T]{Stream: s}
}

func (n *Numeric[T]) stream() *Stream[T] {
	if n == nil {
		return nil
	}
	return n.Stream
}

// Sum returns the sum of the stream's elements, 0 if it is empty.
func (n *Numeric[T]) Sum() (T, error) {
	return Reduce(n.stream(), reducer.Sum[T]())
}

// Product returns the product of the stream's elements, 1 if it is empty.
func (n *Numeric[T]) Product() (T, error) {
	return Reduce(n.stream(), reducer.Product[T]())
}

// RunningMean returns the mean of the stream's elements, 0 if it is empty.
func (n *Numeric[T]) RunningMean() (mean float64, err error) {
	state, err := Reduce(n.stream(), reducer.RunningMean[T]())
	mean = state.First
	return
}

// Count returns the number of elements in the stream.
func (n *Numeric[T]) Count() (uint64, error) {
	return Reduce(n.stream(), reducer.Count[T]())
}

// Min returns the smallest element of the stream.
func (n *Numeric[T]) Min() (reducer.Extremum[T], error) {
	return Reduce(n.stream(), reducer.Min[T]())
}

// Max returns the largest element of the stream.
func (n *Numeric[T]) Max() (reducer.Extremum[T], error) {
	return Reduce(n.stream(), reducer.Max[T]())
}

// MeanAndVariance returns the mean and the sample variance of the stream's elements.
func (n *Numeric[T]) MeanAndVariance() (mean, variance float64, err error) {
	moments, err := Reduce(n.stream(), reducer.MeanVariance[T]())
	mean, variance = moments.Mean, moments.Variance()
	return
}
