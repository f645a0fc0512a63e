/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package reducer

import "math"

// Moments holds the number of elements seen, their mean and the sum of squared deviations from that mean (M2).
type Moments struct {
	Count uint64
	Mean  float64
	M2    float64
}

// Variance returns the unbiased sample variance, or 0 if fewer than two elements were seen.
func (m Moments) Variance() float64 {
	if m.Count < 2 {
		return 0
	}
	return m.M2 / float64(m.Count-1)
}

// PopulationVariance returns the variance of the elements seen, or 0 if none was.
func (m Moments) PopulationVariance() float64 {
	if m.Count == 0 {
		return 0
	}
	return m.M2 / float64(m.Count)
}

// StandardDeviation returns the square root of the sample variance.
func (m Moments) StandardDeviation() float64 {
	return math.Sqrt(m.Variance())
}

// Merge returns the moments of the union of two disjoint sets of elements.
func (m Moments) Merge(other Moments) Moments {
	if m.Count == 0 {
		return other
	}
	if other.Count == 0 {
		return m
	}
	n := m.Count + other.Count
	delta := other.Mean - m.Mean
	return Moments{
		Count: n,
		Mean:  m.Mean + delta*float64(other.Count)/float64(n),
		M2:    m.M2 + other.M2 + delta*delta*float64(m.Count)*float64(other.Count)/float64(n),
	}
}

// MeanVariance computes the mean and variance of elements with Welford's online algorithm.
func MeanVariance[T Number]() Config[T, Moments] {
	return NewConfig(Moments{}, func(acc Moments, e T) Moments {
		x := float64(e)
		acc.Count++
		delta := x - acc.Mean
		acc.Mean += delta / float64(acc.Count)
		acc.M2 += delta * (x - acc.Mean)
		return acc
	})
}
