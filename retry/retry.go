/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package retry runs jobs again when they fail, according to a retry policy.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-logr/logr"

	"github.com/lambday/fstream/commonerrors"
)

func options(ctx context.Context, logger logr.Logger, policy *Policy, msgOnRetry string, retryConditionFn func(err error) bool) []retry.Option {
	var delayType retry.DelayTypeFunc
	switch {
	case policy.LinearBackOffEnabled:
		delayType = retry.CombineDelay(retry.FixedDelay, retry.RandomDelay)
	case policy.BackOffEnabled:
		delayType = retry.BackOffDelay
	default:
		delayType = retry.FixedDelay
	}
	return []retry.Option{
		retry.OnRetry(func(n uint, err error) {
			logger.Error(err, fmt.Sprintf("%v (attempt #%v)", msgOnRetry, n+1), "attempt", n+1)
		}),
		retry.Delay(policy.WaitMin),
		retry.MaxDelay(policy.WaitMax),
		retry.MaxJitter(25 * time.Millisecond),
		retry.DelayType(delayType),
		retry.Attempts(uint(policy.Attempts)), //nolint:gosec // Attempts is validated to be positive
		retry.RetryIf(retryConditionFn),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	}
}

// Value runs fn until it succeeds, retryConditionFn returns false for the error it returned or the policy gives up.
func Value[O any](ctx context.Context, logger logr.Logger, policy *Policy, fn func() (O, error), msgOnRetry string, retryConditionFn func(err error) bool) (result O, err error) {
	if fn == nil {
		err = commonerrors.UndefinedVariable("function to retry")
		return
	}
	if policy == nil {
		err = commonerrors.UndefinedVariable("retry policy")
		return
	}
	err = policy.Validate()
	if err != nil {
		return
	}
	if !policy.Enabled {
		return fn()
	}
	if retryConditionFn == nil {
		retryConditionFn = func(error) bool { return true }
	}
	result, err = retry.DoWithData(fn, options(ctx, logger, policy, msgOnRetry, retryConditionFn)...)
	err = commonerrors.ConvertContextError(err)
	return
}

// RetryIf will retry fn when the value returned from retryConditionFn is true
func RetryIf(ctx context.Context, logger logr.Logger, retryPolicy *Policy, fn func() error, msgOnRetry string, retryConditionFn func(err error) bool) error {
	if fn == nil {
		return commonerrors.UndefinedVariable("function to retry")
	}
	_, err := Value(ctx, logger, retryPolicy, func() (struct{}, error) { return struct{}{}, fn() }, msgOnRetry, retryConditionFn)
	return err
}

// RetryOnError allows the caller to retry fn when the error returned by fn is retriable
// as in of the type specified by retriableErr.
func RetryOnError(ctx context.Context, logger logr.Logger, retryPolicy *Policy, fn func() error, msgOnRetry string, retriableErr ...error) error {
	return RetryIf(ctx, logger, retryPolicy, fn, msgOnRetry, func(err error) bool {
		return commonerrors.Any(err, retriableErr...)
	})
}
