/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package reducer

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lambday/fstream/commonerrors"
)

// AccumulateFunc combines a running value of type U and an element of type V into a new running value.
type AccumulateFunc[U, V any] func(U, V) U

// AccumulateWithErrorFunc is an AccumulateFunc which may fail.
type AccumulateWithErrorFunc[U, V any] func(U, V) (U, error)

// Config describes one accumulation over elements of type V: the value it starts from and how each element is folded into it.
// A Config is immutable and can be shared between any number of reductions.
type Config[V, U any] struct {
	initial    U
	accumulate AccumulateWithErrorFunc[U, V]
}

// NewConfig returns an accumulation configuration.
func NewConfig[U, V any](initial U, accumulate AccumulateFunc[U, V]) Config[V, U] {
	var f AccumulateWithErrorFunc[U, V]
	if accumulate != nil {
		f = func(u U, v V) (U, error) {
			return accumulate(u, v), nil
		}
	}
	return NewConfigWithError(initial, f)
}

// NewConfigWithError returns an accumulation configuration whose accumulate function may fail.
// Any failure stops the reduction it takes part in.
func NewConfigWithError[U, V any](initial U, accumulate AccumulateWithErrorFunc[U, V]) Config[V, U] {
	return Config[V, U]{
		initial:    initial,
		accumulate: accumulate,
	}
}

// Initial returns the value the accumulation starts from.
func (c Config[V, U]) Initial() U {
	return c.initial
}

// Accumulate folds a single element into value.
func (c Config[V, U]) Accumulate(value U, element V) (U, error) {
	if c.accumulate == nil {
		return value, commonerrors.UndefinedVariable("accumulate function")
	}
	return c.accumulate(value, element)
}

func (c Config[V, U]) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.accumulate, validation.NotNil),
	)
	if err != nil {
		return commonerrors.WrapError(commonerrors.ErrUndefined, err, "invalid accumulation configuration")
	}
	return nil
}

// Bound binds the configuration to the identity projection.
func (c Config[V, U]) Bound() Bound[V, U] {
	return BindWithError[V](c, nil)
}

// Begin starts an accumulation.
func (c Config[V, U]) Begin() Stage[V] {
	return c.Bound().Start()
}
