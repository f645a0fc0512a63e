/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package reducer

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lambday/fstream/commonerrors"
)

// ProjectionFunc extracts the value of type V an accumulation reads from an element of type T.
type ProjectionFunc[T, V any] func(T) V

// ProjectionWithErrorFunc is a ProjectionFunc which may fail.
type ProjectionWithErrorFunc[T, V any] func(T) (V, error)

// Reducible describes anything which can accumulate elements of type T into a value of type U.
// Both Config (bound to the identity projection) and Bound satisfy it.
type Reducible[T, U any] interface {
	Bound() Bound[T, U]
}

// Accumulator is the type-erased form of a Reducible, so that accumulations of different
// result types can be fused over the same elements.
type Accumulator[T any] interface {
	Begin() Stage[T]
}

// Bound is an accumulation configuration bound to a projection: every element of type T is projected before being accumulated.
// Several Bound values over the same element type can read different parts of the same element in a single traversal.
type Bound[T, U any] struct {
	initial U
	step    func(U, T) (U, error)
}

// Bind binds an accumulation configuration to a projection.
// The projection's output type is the type of elements the configuration accumulates.
// A nil projection stands for the identity: it is only valid when T and V are the same type, otherwise
// the returned Bound is invalid and any reduction using it fails before traversing anything.
func Bind[T, V, U any](config Config[V, U], projection ProjectionFunc[T, V]) Bound[T, U] {
	if projection == nil {
		return BindWithError[T](config, nil)
	}
	return BindWithError(config, func(t T) (V, error) {
		return projection(t), nil
	})
}

// BindWithError is like Bind for projections which may fail.
func BindWithError[T, V, U any](config Config[V, U], projection ProjectionWithErrorFunc[T, V]) Bound[T, U] {
	b := Bound[T, U]{initial: config.initial}
	if config.accumulate == nil {
		return b
	}
	if projection == nil {
		identity, ok := any(config.accumulate).(AccumulateWithErrorFunc[U, T])
		if ok {
			b.step = identity
		}
		return b
	}
	accumulate := config.accumulate
	b.step = func(value U, element T) (U, error) {
		projected, err := projection(element)
		if err != nil {
			return value, err
		}
		return accumulate(value, projected)
	}
	return b
}

// Initial returns the value the accumulation starts from.
func (b Bound[T, U]) Initial() U {
	return b.initial
}

func (b Bound[T, U]) Validate() error {
	err := validation.ValidateStruct(&b,
		validation.Field(&b.step, validation.NotNil),
	)
	if err != nil {
		return commonerrors.WrapError(commonerrors.ErrUndefined, err, "accumulation is not bound")
	}
	return nil
}

// Bound returns b.
func (b Bound[T, U]) Bound() Bound[T, U] {
	return b
}

// Start returns a new accumulation in progress, starting from the initial value.
func (b Bound[T, U]) Start() *Run[T, U] {
	return &Run[T, U]{
		value: b.initial,
		step:  b.step,
	}
}

// Begin is like Start but returns the type-erased stage.
func (b Bound[T, U]) Begin() Stage[T] {
	return b.Start()
}
