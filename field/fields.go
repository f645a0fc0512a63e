/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package field provides utilities to handle optional fields and parameters.
package field

// ToOptional returns a pointer to a copy of v.
func ToOptional[T any](v T) *T {
	return &v
}

// Optional returns the value of an optional field or else returns defaultValue.
func Optional[T any](ptr *T, defaultValue T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultValue
}

// ToOptionalInt returns a pointer to an int
func ToOptionalInt(i int) *int {
	return ToOptional(i)
}

// OptionalInt returns the value of an optional field or else
// returns defaultValue.
func OptionalInt(ptr *int, defaultValue int) int {
	return Optional(ptr, defaultValue)
}

// OptionalPositiveInt is like OptionalInt but also falls back to defaultValue when the value is not strictly positive.
func OptionalPositiveInt(ptr *int, defaultValue int) int {
	if v := OptionalInt(ptr, defaultValue); v > 0 {
		return v
	}
	return defaultValue
}
