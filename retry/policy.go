/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */
package retry

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lambday/fstream/commonerrors"
)

// Policy describes how a failing job is retried.
type Policy struct {
	// Enabled specifies whether this retry policy is enabled or not. If not, no retry will be performed.
	Enabled bool
	// Attempts is the maximum number of times a job is run, the first run included.
	Attempts int
	// WaitMin specifies the minimum time to wait between attempts.
	WaitMin time.Duration
	// WaitMax represents the maximum time to wait (only necessary if backoff is enabled).
	WaitMax time.Duration
	// BackOffEnabled states whether backoff must be performed during retries (exponential unless LinearBackOffEnabled is set).
	BackOffEnabled bool
	// LinearBackOffEnabled forces linear backoff instead of exponential backoff provided BackOffEnabled is set to true.
	LinearBackOffEnabled bool
}

func (p *Policy) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Enabled, validation.Required.When(p.BackOffEnabled || p.LinearBackOffEnabled)),
		validation.Field(&p.Attempts, validation.When(p.Enabled, validation.Required, validation.Min(1))),
		validation.Field(&p.WaitMin, validation.Min(time.Duration(0))),
		validation.Field(&p.WaitMax, validation.Required.When(p.BackOffEnabled), validation.Min(p.WaitMin)),
		validation.Field(&p.BackOffEnabled, validation.Required.When(p.LinearBackOffEnabled)),
	)
	if err != nil {
		return commonerrors.WrapError(commonerrors.ErrInvalid, err, "invalid retry policy")
	}
	return nil
}

// DefaultNoRetryPolicy defines a policy for no retry being performed.
func DefaultNoRetryPolicy() *Policy {
	return &Policy{
		Enabled: false,
	}
}

// DefaultBasicRetryPolicy defines a policy retrying straight after a failure for a maximum of 4 attempts.
func DefaultBasicRetryPolicy() *Policy {
	return &Policy{
		Enabled:  true,
		Attempts: 4,
	}
}

// DefaultExponentialBackOffRetryPolicy defines a policy for retries with exponential backoff.
func DefaultExponentialBackOffRetryPolicy() *Policy {
	return &Policy{
		Enabled:        true,
		Attempts:       4,
		WaitMin:        100 * time.Millisecond,
		WaitMax:        5 * time.Second,
		BackOffEnabled: true,
	}
}

// DefaultLinearBackOffRetryPolicy defines a policy for retries with linear backoff.
func DefaultLinearBackOffRetryPolicy() *Policy {
	return &Policy{
		Enabled:              true,
		Attempts:             4,
		WaitMin:              100 * time.Millisecond,
		WaitMax:              time.Second,
		BackOffEnabled:       true,
		LinearBackOffEnabled: true,
	}
}
