package collection

import (
	"iter"

	"golang.org/x/exp/constraints"

	"github.com/lambday/fstream/field"
)

func sign[T constraints.Integer](x T) T {
	if x < 0 {
		return T(0) - 1
	}
	return 1
}

// Range returns a slice of integers similar to Python's built-in range().
// https://docs.python.org/2/library/functions.html#range
//
//	Note: The stop value is always exclusive.
func Range[T constraints.Signed](start, stop T, step *T) (result []T) {
	it, length := rangeSequence(start, stop, step)
	result = make([]T, 0, length)
	for v := range it {
		result = append(result, v)
	}
	return result
}

// RangeSequence returns an iterator over a range
func RangeSequence[T constraints.Signed](start, stop T, step *T) iter.Seq[T] {
	it, _ := rangeSequence(start, stop, step)
	return it
}

func rangeSequence[T constraints.Signed](start, stop T, step *T) (it iter.Seq[T], length int) {
	s := field.Optional(step, 1)
	length = 0
	if s == 0 {
		it = func(yield func(T) bool) {}
		return
	}
	if (s > 0 && start < stop) || (s < 0 && start > stop) {
		length = int((stop - start + s - sign(s)) / s)
	}
	it = func(yield func(T) bool) {
		v := start
		for i := 0; i < length; i++ {
			if !yield(v) {
				return
			}
			v += s
		}
	}
	return
}
