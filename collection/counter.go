/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package collection

import (
	"iter"

	"go.uber.org/atomic"
)

// Counter is a collection instrumenting another one: it records how many times the underlying collection
// was traversed and how many elements were consumed overall.
type Counter[T any] struct {
	source     Collection[T]
	traversals *atomic.Uint64
	advances   *atomic.Uint64
}

// NewCounter instruments source.
func NewCounter[T any](source Collection[T]) *Counter[T] {
	return &Counter[T]{
		source:     source,
		traversals: atomic.NewUint64(0),
		advances:   atomic.NewUint64(0),
	}
}

// All returns a sequence over the source's elements. A traversal is only recorded once the sequence is iterated.
func (c *Counter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		c.traversals.Inc()
		if c.source == nil {
			return
		}
		for e := range c.source.All() {
			c.advances.Inc()
			if !yield(e) {
				return
			}
		}
	}
}

// Traversals returns the number of traversals started so far.
func (c *Counter[T]) Traversals() uint64 {
	return c.traversals.Load()
}

// Advances returns the number of elements yielded so far, across all traversals.
func (c *Counter[T]) Advances() uint64 {
	return c.advances.Load()
}

// Reset sets the counts back to zero.
func (c *Counter[T]) Reset() {
	c.traversals.Store(0)
	c.advances.Store(0)
}
