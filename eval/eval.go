/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package eval provides lazy evaluation chains: mapping functions are composed as they are added to a chain and only
// applied to the source's elements when the chain is materialised.
package eval

import (
	"iter"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lambday/fstream/collection"
	"github.com/lambday/fstream/commonerrors"
)

// Functor is anything whose elements can be mapped lazily without changing their type.
type Functor[T any] interface {
	collection.Collection[T]
	// Apply returns a new functor whose elements are those of the receiver mapped by f.
	Apply(f collection.MapFunc[T, T]) Functor[T]
}

// Eval is a lazy evaluation chain over a source of elements of type A, producing elements of type B.
// A chain is immutable: adding a mapping returns a new chain and leaves the receiver untouched. The source is never modified.
type Eval[A, B any] struct {
	source    collection.Collection[A]
	transform collection.MapWithErrorFunc[A, B]
	maps      int
}

// Evaluate starts a chain over source. Until mappings are added, the chain produces the source's elements.
func Evaluate[A any](source collection.Collection[A]) (chain Eval[A, A], err error) {
	if source == nil {
		err = commonerrors.UndefinedVariable("source")
		return
	}
	chain = Eval[A, A]{
		source: source,
		transform: func(a A) (A, error) {
			return a, nil
		},
	}
	return
}

// EvaluateValues is like Evaluate over a vector holding a copy of values.
func EvaluateValues[A any](values ...A) Eval[A, A] {
	chain, _ := Evaluate[A](collection.NewVector(values...))
	return chain
}

// Map returns a chain applying f after every mapping of chain. Nothing is evaluated.
// A nil f makes the returned chain invalid: it fails when materialised.
func Map[A, B, C any](chain Eval[A, B], f collection.MapFunc[B, C]) Eval[A, C] {
	if f == nil {
		return MapWithError[A, B, C](chain, nil)
	}
	return MapWithError(chain, func(b B) (C, error) {
		return f(b), nil
	})
}

// MapWithError is like Map for mapping functions which may fail. A failure is reported when the chain is materialised.
func MapWithError[A, B, C any](chain Eval[A, B], f collection.MapWithErrorFunc[B, C]) Eval[A, C] {
	next := Eval[A, C]{
		source: chain.source,
		maps:   chain.maps + 1,
	}
	if f != nil && chain.transform != nil {
		next.transform = collection.ComposeWithError(chain.transform, f)
	}
	return next
}

// Apply satisfies Functor.
func (e Eval[A, B]) Apply(f collection.MapFunc[B, B]) Functor[B] {
	return Map(e, f)
}

// Maps returns how many mappings were added to the chain.
func (e Eval[A, B]) Maps() int {
	return e.maps
}

// Source returns the collection the chain reads from.
func (e Eval[A, B]) Source() collection.Collection[A] {
	return e.source
}

func (e Eval[A, B]) Validate() error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.source, validation.NotNil),
		validation.Field(&e.transform, validation.NotNil),
	)
	if err != nil {
		return commonerrors.WrapError(commonerrors.ErrUndefined, err, "invalid evaluation chain")
	}
	return nil
}

// Sequence returns a sequence over the chain's elements, evaluated one at a time as the sequence is iterated.
// If the chain is invalid or a mapping fails, a single error is yielded and the sequence stops.
func (e Eval[A, B]) Sequence() iter.Seq2[B, error] {
	return func(yield func(B, error) bool) {
		var zero B
		err := e.Validate()
		if err != nil {
			yield(zero, err)
			return
		}
		i := 0
		for a := range e.source.All() {
			b, subErr := e.transform(a)
			if subErr != nil {
				yield(zero, commonerrors.WrapErrorf(commonerrors.ErrFailed, subErr, "mapping of element #%v failed", i))
				return
			}
			if !yield(b, nil) {
				return
			}
			i++
		}
	}
}

// All returns a sequence over the chain's elements. It stops early if the chain cannot be evaluated: use Sequence or
// Yield to find out why.
func (e Eval[A, B]) All() iter.Seq[B] {
	return func(yield func(B) bool) {
		for b, err := range e.Sequence() {
			if err != nil || !yield(b) {
				return
			}
		}
	}
}

// Yield materialises the chain: every mapping is applied to every element of the source, in order, and the results
// are returned in a new vector. Each call evaluates the chain again; results are never cached.
func (e Eval[A, B]) Yield() (result *collection.Vector[B], err error) {
	var values []B
	if sized, ok := e.source.(collection.Sized[A]); ok {
		values = make([]B, 0, sized.Len())
	}
	for b, subErr := range e.Sequence() {
		if subErr != nil {
			err = subErr
			return
		}
		values = append(values, b)
	}
	result = collection.NewVector(values...)
	return
}

// Get is an alias for Yield.
func (e Eval[A, B]) Get() (*collection.Vector[B], error) {
	return e.Yield()
}

// Fmap applies f to every element of source and returns the results in a new vector.
func Fmap[A, B any](source collection.Collection[A], f collection.MapFunc[A, B]) (*collection.Vector[B], error) {
	chain, err := Evaluate(source)
	if err != nil {
		return nil, err
	}
	return Map(chain, f).Yield()
}
