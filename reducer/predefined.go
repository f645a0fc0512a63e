/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package reducer

import (
	"cmp"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/constraints"

	"github.com/lambday/fstream/commonerrors"
)

// Number is any integer or floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Pair holds two values.
type Pair[A, B any] struct {
	First  A
	Second B
}

// MakePair returns the pair (a, b).
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

// First returns the projection of a pair onto its first component.
func First[A, B any]() ProjectionFunc[Pair[A, B], A] {
	return func(p Pair[A, B]) A { return p.First }
}

// Second returns the projection of a pair onto its second component.
func Second[A, B any]() ProjectionFunc[Pair[A, B], B] {
	return func(p Pair[A, B]) B { return p.Second }
}

// Sum adds elements up, starting from 0.
func Sum[T Number]() Config[T, T] {
	return NewConfig(T(0), func(acc T, e T) T { return acc + e })
}

// Product multiplies elements, starting from 1.
func Product[T Number]() Config[T, T] {
	return NewConfig(T(1), func(acc T, e T) T { return acc * e })
}

// MeanState is the state of a running mean: the mean of the elements seen so far and the index the next element will have, counting from 1.
type MeanState = Pair[float64, uint64]

// RunningMean computes the mean of elements with Welford's online update: mean += (e - mean) / n.
// It starts from (0.0, 1); the mean is the first component of the result.
func RunningMean[T Number]() Config[T, MeanState] {
	return NewConfig(MakePair(0.0, uint64(1)), func(acc MeanState, e T) MeanState {
		delta := float64(e) - acc.First
		acc.First += delta / float64(acc.Second)
		acc.Second++
		return acc
	})
}

// Count counts elements.
func Count[T any]() Config[T, uint64] {
	return NewConfig(uint64(0), func(acc uint64, _ T) uint64 { return acc + 1 })
}

// Extremum is the smallest or largest element seen, if any was.
type Extremum[T cmp.Ordered] struct {
	Value T
	Found bool
}

func extremum[T cmp.Ordered](keep func(candidate, current T) bool) Config[T, Extremum[T]] {
	return NewConfig(Extremum[T]{}, func(acc Extremum[T], e T) Extremum[T] {
		if !acc.Found || keep(e, acc.Value) {
			return Extremum[T]{Value: e, Found: true}
		}
		return acc
	})
}

// Min keeps the smallest element. On ties the first one is kept.
func Min[T cmp.Ordered]() Config[T, Extremum[T]] {
	return extremum(func(candidate, current T) bool { return cmp.Less(candidate, current) })
}

// Max keeps the largest element. On ties the first one is kept.
func Max[T cmp.Ordered]() Config[T, Extremum[T]] {
	return extremum(func(candidate, current T) bool { return cmp.Less(current, candidate) })
}

// Take collects the first n elements in order and then ends the traversal. With n lower than 1, the traversal ends
// on the first element, which is not kept.
func Take[T any](n int) Config[T, []T] {
	return NewConfigWithError([]T(nil), func(acc []T, e T) ([]T, error) {
		if n < 1 {
			return acc, commonerrors.ErrEOF
		}
		acc = append(acc, e)
		if len(acc) >= n {
			return acc, commonerrors.ErrEOF
		}
		return acc, nil
	})
}

// Distinct collects the distinct elements. The set is created by the first accumulated element, so that
// reductions never share it; reducing an empty sequence gives a nil set.
func Distinct[T comparable]() Config[T, mapset.Set[T]] {
	return NewConfig(mapset.Set[T](nil), func(acc mapset.Set[T], e T) mapset.Set[T] {
		if acc == nil {
			acc = mapset.NewThreadUnsafeSet[T]()
		}
		acc.Add(e)
		return acc
	})
}
