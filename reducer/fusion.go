/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package reducer fuses any number of independent accumulations over a sequence into a single traversal.
//
// An accumulation is described by a Config (an initial value and an accumulate function) and may be bound to a
// projection with Bind so that accumulations reading different parts of the same element can share a traversal.
// Fusing k accumulations gives, for each of them, the same result as reducing the sequence k times, but the sequence
// is only traversed once: for each element in order, accumulations are updated in the order they were supplied.
package reducer

import (
	"iter"

	"github.com/lambday/fstream/commonerrors"
)

// Stage is an accumulation in progress, as driven by Fuse.
type Stage[T any] interface {
	// Validate checks the stage can accumulate elements.
	Validate() error
	// Accumulate folds one element into the running value.
	Accumulate(element T) error
	// Result returns the running value.
	Result() any
	// Count returns how many elements were accumulated so far.
	Count() uint64
}

// Run is the running state of a Bound accumulation. It is created by Bound.Start and must not be shared between reductions.
type Run[T, U any] struct {
	value U
	step  func(U, T) (U, error)
	count uint64
}

func (r *Run[T, U]) Validate() error {
	if r == nil || r.step == nil {
		return commonerrors.UndefinedVariable("accumulate function")
	}
	return nil
}

// Accumulate folds element into the running value. If accumulation fails, the running value is left unchanged.
// commonerrors.ErrEOF is not a failure: the element is accumulated and the error returned to request the end of
// the traversal.
func (r *Run[T, U]) Accumulate(element T) error {
	next, err := r.step(r.value, element)
	if err != nil && !commonerrors.Any(err, commonerrors.ErrEOF) {
		return err
	}
	r.value = next
	r.count++
	return err
}

// Value returns the running value.
func (r *Run[T, U]) Value() U {
	return r.value
}

func (r *Run[T, U]) Result() any {
	return r.value
}

func (r *Run[T, U]) Count() uint64 {
	return r.count
}

// Fuse traverses seq exactly once and, for every element in order, has each stage accumulate it in the order
// stages were supplied.
// At least one stage must be supplied and every stage must be valid: this is checked before the traversal starts.
// If a stage fails to accumulate an element, the traversal stops immediately and the error is returned. Stages keep
// whatever they had accumulated until then.
// A stage returning commonerrors.ErrEOF ends the traversal once every stage has accumulated the current element, and
// no error is returned.
func Fuse[T any](seq iter.Seq[T], stages ...Stage[T]) (err error) {
	if seq == nil {
		err = commonerrors.UndefinedVariable("sequence")
		return
	}
	if len(stages) == 0 {
		err = commonerrors.InvalidParameter("at least one accumulation must be supplied")
		return
	}
	for i := range stages {
		if stages[i] == nil {
			err = commonerrors.UndefinedParameterf("accumulation #%v is undefined", i)
			return
		}
		subErr := stages[i].Validate()
		if subErr != nil {
			err = commonerrors.WrapErrorf(commonerrors.ErrInvalid, subErr, "accumulation #%v", i)
			return
		}
	}

	index := 0
	for e := range seq {
		done := false
		for i := range stages {
			subErr := stages[i].Accumulate(e)
			if commonerrors.Any(subErr, commonerrors.ErrEOF) {
				done = true
				continue
			}
			if subErr != nil {
				err = commonerrors.WrapErrorf(commonerrors.ErrFailed, subErr, "accumulation #%v failed on element #%v", i, index)
				return
			}
		}
		if done {
			return
		}
		index++
	}
	return
}

func start[T, U any](r Reducible[T, U], i int) (*Run[T, U], error) {
	if r == nil {
		return nil, commonerrors.UndefinedParameterf("accumulation #%v is undefined", i)
	}
	return r.Bound().Start(), nil
}

// Reduce folds seq into a single value.
// On failure, the value accumulated until the failure is returned alongside the error.
func Reduce[T, U any](seq iter.Seq[T], r Reducible[T, U]) (result U, err error) {
	r1, err := start(r, 0)
	if err != nil {
		return
	}
	err = Fuse[T](seq, r1)
	result = r1.Value()
	return
}

// Reduce2 performs two accumulations over seq in a single traversal.
func Reduce2[T, U1, U2 any](seq iter.Seq[T], r1 Reducible[T, U1], r2 Reducible[T, U2]) (result1 U1, result2 U2, err error) {
	run1, err := start(r1, 0)
	if err != nil {
		return
	}
	run2, err := start(r2, 1)
	if err != nil {
		return
	}
	err = Fuse[T](seq, run1, run2)
	result1, result2 = run1.Value(), run2.Value()
	return
}

// Reduce3 performs three accumulations over seq in a single traversal.
func Reduce3[T, U1, U2, U3 any](seq iter.Seq[T], r1 Reducible[T, U1], r2 Reducible[T, U2], r3 Reducible[T, U3]) (result1 U1, result2 U2, result3 U3, err error) {
	run1, err := start(r1, 0)
	if err != nil {
		return
	}
	run2, err := start(r2, 1)
	if err != nil {
		return
	}
	run3, err := start(r3, 2)
	if err != nil {
		return
	}
	err = Fuse[T](seq, run1, run2, run3)
	result1, result2, result3 = run1.Value(), run2.Value(), run3.Value()
	return
}

// Reduce4 performs four accumulations over seq in a single traversal.
func Reduce4[T, U1, U2, U3, U4 any](seq iter.Seq[T], r1 Reducible[T, U1], r2 Reducible[T, U2], r3 Reducible[T, U3], r4 Reducible[T, U4]) (result1 U1, result2 U2, result3 U3, result4 U4, err error) {
	run1, err := start(r1, 0)
	if err != nil {
		return
	}
	run2, err := start(r2, 1)
	if err != nil {
		return
	}
	run3, err := start(r3, 2)
	if err != nil {
		return
	}
	run4, err := start(r4, 3)
	if err != nil {
		return
	}
	err = Fuse[T](seq, run1, run2, run3, run4)
	result1, result2, result3, result4 = run1.Value(), run2.Value(), run3.Value(), run4.Value()
	return
}

// ReduceAll performs any number of accumulations over seq in a single traversal. Results are returned in the
// order accumulations were supplied; result i has the type of accumulation i's initial value.
func ReduceAll[T any](seq iter.Seq[T], accumulators ...Accumulator[T]) (results []any, err error) {
	if len(accumulators) == 0 {
		err = commonerrors.InvalidParameter("at least one accumulation must be supplied")
		return
	}
	stages := make([]Stage[T], len(accumulators))
	for i := range accumulators {
		if accumulators[i] == nil {
			err = commonerrors.UndefinedParameterf("accumulation #%v is undefined", i)
			return
		}
		stages[i] = accumulators[i].Begin()
	}
	err = Fuse(seq, stages...)
	results = make([]any, len(stages))
	for i := range stages {
		results[i] = stages[i].Result()
	}
	return
}

// ReduceEach performs any number of accumulations of the same result type over seq in a single traversal.
func ReduceEach[T, U any](seq iter.Seq[T], reducibles ...Reducible[T, U]) (results []U, err error) {
	if len(reducibles) == 0 {
		err = commonerrors.InvalidParameter("at least one accumulation must be supplied")
		return
	}
	runs := make([]*Run[T, U], len(reducibles))
	stages := make([]Stage[T], len(reducibles))
	for i := range reducibles {
		runs[i], err = start(reducibles[i], i)
		if err != nil {
			return
		}
		stages[i] = runs[i]
	}
	err = Fuse(seq, stages...)
	results = make([]U, len(runs))
	for i := range runs {
		results[i] = runs[i].Value()
	}
	return
}
