/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package commonerrors defines the errors returned by stream and reduction operations.
package commonerrors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrUndefined  = errors.New("undefined")
	ErrInvalid    = errors.New("invalid")
	ErrFailed     = errors.New("failed")
	ErrTimeout    = errors.New("timeout")
	ErrCancelled  = errors.New("cancelled")
	ErrUnexpected = errors.New("unexpected")
	// ErrEOF is returned by an accumulation to end a traversal early. It is not a failure.
	ErrEOF = errors.New("end of sequence")
)

// Any determines whether the target error is of the same type as any of the errors `err`
func Any(target error, err ...error) bool {
	for i := range err {
		e := err[i]
		if e == nil || target == nil {
			if e == target {
				return true
			}
			continue
		}
		if errors.Is(target, e) || errors.Is(e, target) {
			return true
		}
	}
	return false
}

// None determines whether the target error is of none of the types of the errors `err`
func None(target error, err ...error) bool {
	return !Any(target, err...)
}

// CorrespondTo determines whether the description of `target` contains any of the descriptions given.
func CorrespondTo(target error, description ...string) bool {
	if target == nil {
		return false
	}
	desc := strings.ToLower(target.Error())
	for i := range description {
		if strings.Contains(desc, strings.ToLower(description[i])) {
			return true
		}
	}
	return false
}

// New creates a new error of type `errorType` with a message.
func New(errorType error, message string) error {
	if errorType == nil {
		return errors.New(message)
	}
	if strings.TrimSpace(message) == "" {
		return errorType
	}
	return fmt.Errorf("%w: %v", errorType, message)
}

// Newf is similar to New but allows formatting of the message.
func Newf(errorType error, format string, args ...any) error {
	return New(errorType, fmt.Sprintf(format, args...))
}

// WrapError wraps an error `err` into an error of type `errorType` with a message. Both errors remain detectable with errors.Is.
func WrapError(errorType, err error, message string) error {
	if err == nil {
		return New(errorType, message)
	}
	if errorType == nil {
		errorType = ErrUnexpected
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%w: %w", errorType, err)
	}
	return fmt.Errorf("%w: %v: %w", errorType, message, err)
}

// WrapErrorf is similar to WrapError but allows formatting of the message.
func WrapErrorf(errorType, err error, format string, args ...any) error {
	return WrapError(errorType, err, fmt.Sprintf(format, args...))
}

// Join aggregates errors, discarding any nil one. It returns nil if there is nothing to report.
func Join(errs ...error) error {
	var result *multierror.Error
	for i := range errs {
		if errs[i] != nil {
			result = multierror.Append(result, errs[i])
		}
	}
	return result.ErrorOrNil()
}

// Ignore returns nil if `target` is of any of the types listed in `ignore`, `target` otherwise.
func Ignore(target error, ignore ...error) error {
	if Any(target, ignore...) {
		return nil
	}
	return target
}

// ConvertContextError converts a context error into a common error.
func ConvertContextError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return WrapError(ErrTimeout, err, "")
	case errors.Is(err, context.Canceled):
		return WrapError(ErrCancelled, err, "")
	default:
		return err
	}
}

// ErrFromContext returns the error of a context converted into a common error, or nil if the context is still valid.
func ErrFromContext(ctx context.Context) error {
	if ctx == nil {
		return UndefinedVariable("context")
	}
	return ConvertContextError(ctx.Err())
}

// UndefinedParameter returns an error stating that a parameter was not defined.
func UndefinedParameter(message string) error {
	return New(ErrUndefined, message)
}

// UndefinedParameterf is similar to UndefinedParameter but allows formatting.
func UndefinedParameterf(format string, args ...any) error {
	return Newf(ErrUndefined, format, args...)
}

// UndefinedVariable returns an error stating that the variable `name` was not defined.
func UndefinedVariable(name string) error {
	return Newf(ErrUndefined, "%v is undefined", name)
}

// InvalidParameter returns an error stating that a parameter was invalid.
func InvalidParameter(message string) error {
	return New(ErrInvalid, message)
}

// InvalidParameterf is similar to InvalidParameter but allows formatting.
func InvalidParameterf(format string, args ...any) error {
	return Newf(ErrInvalid, format, args...)
}
