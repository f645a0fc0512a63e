/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package parallelisation provides parallel forms of element-wise mapping and of reduction over finite slices.
package parallelisation

import (
	"context"

	"github.com/go-logr/logr"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/sync/errgroup"

	"github.com/lambday/fstream/commonerrors"
	"github.com/lambday/fstream/field"
)

type StoreOptions struct {
	stopOnFirstError bool
	sequential       bool
	joinErrors       bool
	workers          int
	chunkSize        *int
	logger           logr.Logger
}

func (o *StoreOptions) Default() *StoreOptions {
	o.stopOnFirstError = false
	o.sequential = false
	o.joinErrors = false
	o.workers = 0
	o.chunkSize = nil
	o.logger = logr.Discard()
	return o
}

// Validate checks the options are consistent.
func (o *StoreOptions) Validate() error {
	err := validation.ValidateStruct(o,
		validation.Field(&o.workers, validation.Min(0)),
		validation.Field(&o.chunkSize, validation.Min(0)),
	)
	if err != nil {
		return commonerrors.WrapError(commonerrors.ErrInvalid, err, "invalid execution options")
	}
	if o.stopOnFirstError && o.joinErrors {
		return commonerrors.InvalidParameter("errors cannot be joined if execution stops on the first one")
	}
	return nil
}

// Workers returns the number of workers to use for n tasks.
func (o *StoreOptions) Workers(n int) int {
	if o.sequential {
		return 1
	}
	if o.workers <= 0 || o.workers > n {
		return max(n, 1)
	}
	return o.workers
}

// Logger returns the logger to report progress to.
func (o *StoreOptions) Logger() logr.Logger {
	return o.logger
}

type StoreOption func(*StoreOptions) *StoreOptions

// StopOnFirstError stops execution on first error.
var StopOnFirstError StoreOption = func(o *StoreOptions) *StoreOptions {
	if o == nil {
		o = DefaultOptions()
	}
	o.stopOnFirstError = true
	o.joinErrors = false
	return o
}

// JoinErrors will collate any errors which happened during execution.
// This option should not be used in combination with StopOnFirstError.
var JoinErrors StoreOption = func(o *StoreOptions) *StoreOptions {
	if o == nil {
		o = DefaultOptions()
	}
	o.stopOnFirstError = false
	o.joinErrors = true
	return o
}

// ExecuteAll executes all tasks even if an error is raised. The first error raised is then returned.
var ExecuteAll StoreOption = func(o *StoreOptions) *StoreOptions {
	if o == nil {
		o = DefaultOptions()
	}
	o.stopOnFirstError = false
	return o
}

// Parallel ensures tasks are executed concurrently.
var Parallel StoreOption = func(o *StoreOptions) *StoreOptions {
	if o == nil {
		o = DefaultOptions()
	}
	o.sequential = false
	return o
}

// Sequential ensures tasks are executed one after the other in the order they were registered.
var Sequential StoreOption = func(o *StoreOptions) *StoreOptions {
	if o == nil {
		o = DefaultOptions()
	}
	o.sequential = true
	return o
}

// Workers defines a limit number of workers for executing tasks.
func Workers(workers int) StoreOption {
	return func(o *StoreOptions) *StoreOptions {
		if o == nil {
			o = DefaultOptions()
		}
		o.workers = workers
		o.sequential = false
		return o
	}
}

// ChunkSize defines how many elements a single reduction task handles. By default, or if size is 0, elements are
// spread evenly between workers.
func ChunkSize(size int) StoreOption {
	return func(o *StoreOptions) *StoreOptions {
		if o == nil {
			o = DefaultOptions()
		}
		o.chunkSize = field.ToOptionalInt(size)
		return o
	}
}

// WithLogger defines the logger progress is reported to.
func WithLogger(logger logr.Logger) StoreOption {
	return func(o *StoreOptions) *StoreOptions {
		if o == nil {
			o = DefaultOptions()
		}
		o.logger = logger
		return o
	}
}

// WithOptions defines a store configuration.
func WithOptions(option ...StoreOption) (opts *StoreOptions) {
	for i := range option {
		opts = option[i](opts)
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	return
}

// DefaultOptions returns the default store configuration
func DefaultOptions() *StoreOptions {
	opts := &StoreOptions{}
	return opts.Default()
}

type IExecutor interface {
	// Execute executes all the tasks in the group.
	Execute(ctx context.Context) error
}

type IExecutionGroup[T any] interface {
	IExecutor
	RegisterFunction(element ...T)
	Len() int
}

// NewExecutionGroup returns an execution group which executes tasks according to store options.
func NewExecutionGroup[T any](executeFunc ExecuteFunc[T], options ...StoreOption) *ExecutionGroup[T] {
	opts := WithOptions(options...)
	return &ExecutionGroup[T]{
		mu:          deadlock.RWMutex{},
		elements:    make([]T, 0),
		executeFunc: executeFunc,
		options:     *opts,
	}
}

type ExecuteFunc[T any] func(ctx context.Context, element T) error

// ExecutionGroup executes a function over every element registered to it.
type ExecutionGroup[T any] struct {
	mu          deadlock.RWMutex
	elements    []T
	executeFunc ExecuteFunc[T]
	options     StoreOptions
}

// RegisterFunction registers elements to the group.
func (s *ExecutionGroup[T]) RegisterFunction(element ...T) {
	defer s.mu.Unlock()
	s.mu.Lock()
	s.elements = append(s.elements, element...)
}

func (s *ExecutionGroup[T]) Len() int {
	defer s.mu.RUnlock()
	s.mu.RLock()
	return len(s.elements)
}

// Execute executes the function over every element of the group according to store options.
func (s *ExecutionGroup[T]) Execute(ctx context.Context) (err error) {
	defer s.mu.Unlock()
	s.mu.Lock()
	if s.executeFunc == nil {
		return commonerrors.New(commonerrors.ErrUndefined, "the group was not initialised correctly")
	}
	err = s.options.Validate()
	if err != nil {
		return
	}

	if s.options.sequential {
		err = s.executeSequentially(ctx, s.options.stopOnFirstError, s.options.joinErrors)
	} else {
		err = s.executeConcurrently(ctx, s.options.stopOnFirstError, s.options.joinErrors)
	}
	return
}

func (s *ExecutionGroup[T]) executeConcurrently(ctx context.Context, stopOnFirstError bool, collateErrors bool) error {
	g, gCtx := errgroup.WithContext(ctx)
	if !stopOnFirstError {
		gCtx = ctx
	}
	n := len(s.elements)
	errs := make([]error, n)

	g.SetLimit(s.options.Workers(n))
	for i := range s.elements {
		g.Go(func() error {
			errs[i] = s.executeFunction(gCtx, s.elements[i])
			return errs[i]
		})
	}
	err := g.Wait()
	if collateErrors {
		err = commonerrors.Join(errs...)
	}
	return err
}

func (s *ExecutionGroup[T]) executeSequentially(ctx context.Context, stopOnFirstError, collateErrors bool) (err error) {
	err = DetermineContextError(ctx)
	if err != nil {
		return
	}
	errs := make([]error, len(s.elements))
	for i := range s.elements {
		subErr := s.executeFunction(ctx, s.elements[i])
		errs[i] = subErr
		if subErr != nil && err == nil {
			err = subErr
			if stopOnFirstError || commonerrors.Any(subErr, commonerrors.ErrCancelled, commonerrors.ErrTimeout) {
				return
			}
		}
	}

	if collateErrors {
		err = commonerrors.Join(errs...)
	}
	return
}

func (s *ExecutionGroup[T]) executeFunction(ctx context.Context, element T) error {
	err := DetermineContextError(ctx)
	if err != nil {
		return err
	}
	return s.executeFunc(ctx, element)
}
