/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package stream provides the entry point for reducing finite collections: any number of accumulations are performed
// over a stream in a single traversal.
package stream

import (
	"iter"
	"slices"

	"github.com/lambday/fstream/collection"
	"github.com/lambday/fstream/commonerrors"
	"github.com/lambday/fstream/eval"
	"github.com/lambday/fstream/reducer"
)

// Stream is a finite and ordered stream of elements which can be reduced any number of times.
// Reducing a stream never modifies its source.
type Stream[T any] struct {
	elements iter.Seq2[T, error]
}

func lift[T any](seq iter.Seq[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for e := range seq {
			if !yield(e, nil) {
				return
			}
		}
	}
}

// Of returns a stream over the elements of source.
func Of[T any](source collection.Collection[T]) (s *Stream[T], err error) {
	if source == nil {
		err = commonerrors.UndefinedVariable("source")
		return
	}
	s = &Stream[T]{elements: func(yield func(T, error) bool) {
		for e := range source.All() {
			if !yield(e, nil) {
				return
			}
		}
	}}
	return
}

// FromSlice returns a stream over a copy of values.
func FromSlice[T any](values ...T) *Stream[T] {
	return &Stream[T]{elements: lift(slices.Values(slices.Clone(values)))}
}

// FromSequence returns a stream over seq. seq must be finite, and re-iterable if the stream is reduced more than once.
func FromSequence[T any](seq iter.Seq[T]) (s *Stream[T], err error) {
	if seq == nil {
		err = commonerrors.UndefinedVariable("sequence")
		return
	}
	s = &Stream[T]{elements: lift(seq)}
	return
}

// FromEval returns a stream over the elements of an evaluation chain. The chain is evaluated lazily, every time the
// stream is reduced, without materialising it; any evaluation failure makes the reduction fail.
func FromEval[A, B any](chain eval.Eval[A, B]) (s *Stream[B], err error) {
	err = chain.Validate()
	if err != nil {
		return
	}
	s = &Stream[B]{elements: chain.Sequence()}
	return
}

// Filter returns a stream over the elements of s satisfying predicate.
func (s *Stream[T]) Filter(predicate collection.Predicate[T]) (filtered *Stream[T], err error) {
	if s == nil || s.elements == nil {
		err = commonerrors.UndefinedVariable("stream")
		return
	}
	if predicate == nil {
		err = commonerrors.UndefinedVariable("predicate")
		return
	}
	filtered = &Stream[T]{elements: collection.FilterSequenceWithError(s.elements, predicate)}
	return
}

// Reject is the opposite of Filter.
func (s *Stream[T]) Reject(predicate collection.Predicate[T]) (*Stream[T], error) {
	if predicate == nil {
		return nil, commonerrors.UndefinedVariable("predicate")
	}
	return s.Filter(collection.OppositeFunc(predicate))
}

// All returns a sequence over the stream's elements. It stops at the first element which could not be produced.
func (s *Stream[T]) All() iter.Seq[T] {
	seq, _ := s.sequence()
	return seq
}

// Collect returns the stream's elements in a new vector.
func (s *Stream[T]) Collect() (result *collection.Vector[T], err error) {
	seq, failure := s.sequence()
	values := slices.Collect(seq)
	err = failure()
	if err != nil {
		return
	}
	result = collection.NewVector(values...)
	return
}

// sequence adapts the stream for the reduction engine. The returned function reports the failure which ended the
// traversal early, if any.
func (s *Stream[T]) sequence() (iter.Seq[T], func() error) {
	var failure error
	seq := func(yield func(T) bool) {
		if s == nil || s.elements == nil {
			failure = commonerrors.UndefinedVariable("stream")
			return
		}
		for e, err := range s.elements {
			if err != nil {
				failure = err
				return
			}
			if !yield(e) {
				return
			}
		}
	}
	return seq, func() error { return failure }
}

func check(err error, failure func() error) error {
	if err != nil {
		return err
	}
	return failure()
}

// Reduce folds the stream into a single value.
func Reduce[T, U any](s *Stream[T], r reducer.Reducible[T, U]) (result U, err error) {
	seq, failure := s.sequence()
	result, err = reducer.Reduce(seq, r)
	err = check(err, failure)
	return
}

// Reduce2 performs two accumulations over the stream in a single traversal.
func Reduce2[T, U1, U2 any](s *Stream[T], r1 reducer.Reducible[T, U1], r2 reducer.Reducible[T, U2]) (result1 U1, result2 U2, err error) {
	seq, failure := s.sequence()
	result1, result2, err = reducer.Reduce2(seq, r1, r2)
	err = check(err, failure)
	return
}

// Reduce3 performs three accumulations over the stream in a single traversal.
func Reduce3[T, U1, U2, U3 any](s *Stream[T], r1 reducer.Reducible[T, U1], r2 reducer.Reducible[T, U2], r3 reducer.Reducible[T, U3]) (result1 U1, result2 U2, result3 U3, err error) {
	seq, failure := s.sequence()
	result1, result2, result3, err = reducer.Reduce3(seq, r1, r2, r3)
	err = check(err, failure)
	return
}

// Reduce4 performs four accumulations over the stream in a single traversal.
func Reduce4[T, U1, U2, U3, U4 any](s *Stream[T], r1 reducer.Reducible[T, U1], r2 reducer.Reducible[T, U2], r3 reducer.Reducible[T, U3], r4 reducer.Reducible[T, U4]) (result1 U1, result2 U2, result3 U3, result4 U4, err error) {
	seq, failure := s.sequence()
	result1, result2, result3, result4, err = reducer.Reduce4(seq, r1, r2, r3, r4)
	err = check(err, failure)
	return
}

// ReduceAll performs any number of accumulations over the stream in a single traversal.
func ReduceAll[T any](s *Stream[T], accumulators ...reducer.Accumulator[T]) (results []any, err error) {
	seq, failure := s.sequence()
	results, err = reducer.ReduceAll(seq, accumulators...)
	err = check(err, failure)
	return
}

// ReduceEach performs any number of accumulations of the same result type over the stream in a single traversal.
func ReduceEach[T, U any](s *Stream[T], reducibles ...reducer.Reducible[T, U]) (results []U, err error) {
	seq, failure := s.sequence()
	results, err = reducer.ReduceEach(seq, reducibles...)
	err = check(err, failure)
	return
}
