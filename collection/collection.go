/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package collection provides the finite, read-only sequences streams are built upon as well as utilities working on them.
package collection

import (
	"iter"
	"slices"

	"github.com/lambday/fstream/commonerrors"
)

//go:generate go tool mockgen -destination=./mocks/mock_$GOPACKAGE.go -package=mocks github.com/lambday/fstream/$GOPACKAGE Collection

// Collection is an ordered and finite collection of elements which can be traversed from its first element to its last.
// Traversing a collection must not modify it.
type Collection[T any] interface {
	// All returns a sequence over every element of the collection in order.
	All() iter.Seq[T]
}

// Sized is a collection whose number of elements is known before traversal.
type Sized[T any] interface {
	Collection[T]
	// Len returns the number of elements in the collection.
	Len() int
}

// Vector is a collection backed by a contiguous slice.
type Vector[T any] struct {
	values []T
}

// NewVector returns a vector holding a copy of values.
func NewVector[T any](values ...T) *Vector[T] {
	return &Vector[T]{values: slices.Clone(values)}
}

// All returns a sequence over the vector's elements.
func (v *Vector[T]) All() iter.Seq[T] {
	if v == nil {
		return func(func(T) bool) {}
	}
	return slices.Values(v.values)
}

// Len returns the number of elements of the vector.
func (v *Vector[T]) Len() int {
	if v == nil {
		return 0
	}
	return len(v.values)
}

// At returns the element at index i.
func (v *Vector[T]) At(i int) (e T, err error) {
	if i < 0 || i >= v.Len() {
		err = commonerrors.InvalidParameterf("index %v is out of range [0,%v)", i, v.Len())
		return
	}
	e = v.values[i]
	return
}

// Values returns a copy of the vector's elements.
func (v *Vector[T]) Values() []T {
	if v == nil {
		return nil
	}
	return slices.Clone(v.values)
}

type sequence[T any] struct {
	seq iter.Seq[T]
}

func (s *sequence[T]) All() iter.Seq[T] {
	return s.seq
}

// FromSequence returns a collection traversing seq. seq must be finite and should be re-iterable if
// the collection is to be traversed more than once.
func FromSequence[T any](seq iter.Seq[T]) (Collection[T], error) {
	if seq == nil {
		return nil, commonerrors.UndefinedVariable("sequence")
	}
	return &sequence[T]{seq: seq}, nil
}
