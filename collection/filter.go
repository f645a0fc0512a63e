/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package collection

import (
	"iter"
	"slices"
)

// FilterFunc returns whether an element should be kept.
type FilterFunc[E any] func(E) bool

type Predicate[E any] = FilterFunc[E]

// OppositeFunc returns the opposite of a FilterFunc.
func OppositeFunc[E any](f FilterFunc[E]) FilterFunc[E] { return func(e E) bool { return !f(e) } }

// Filter returns a new slice that contains elements from the input slice for which f returns true.
func Filter[S ~[]E, E any](s S, f FilterFunc[E]) S {
	return slices.Collect[E](FilterSequence[E](slices.Values(s), f))
}

// FilterSequence returns a new sequence that contains elements from the input sequence for which f returns true.
func FilterSequence[E any](s iter.Seq[E], f Predicate[E]) iter.Seq[E] {
	return func(yield func(E) bool) {
		for v := range s {
			if f(v) {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// FilterSequenceWithError is like FilterSequence over a sequence whose elements may come with an error. Elements
// coming with an error are always yielded so that failures reach the consumer.
func FilterSequenceWithError[E any](s iter.Seq2[E, error], f Predicate[E]) iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		for v, err := range s {
			if err != nil || f(v) {
				if !yield(v, err) {
					return
				}
			}
		}
	}
}
