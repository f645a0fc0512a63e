/*
 * Copyright (C) 2020-2025 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package logs defines the loggers which can be handed over to long-running operations. All of them are
// github.com/go-logr/logr loggers backed by common logging libraries.
package logs

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/bombsimon/logrusr/v4"
	"github.com/evanphx/hclogr"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/go-logr/stdr"
	"github.com/go-logr/zapr"
	"github.com/hashicorp/go-hclog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// NewNoopLogger returns a logger discarding everything.
func NewNoopLogger() logr.Logger {
	return logr.Discard()
}

// NewStdOutLogger returns a logger to standard output.
func NewStdOutLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Printf("%s: %s\n", prefix, args)
		} else {
			fmt.Println(args)
		}
	}, funcr.Options{})
}

// NewStdLogger returns a logger writing to a standard library logger.
func NewStdLogger(logger *log.Logger) logr.Logger {
	if logger == nil {
		logger = log.Default()
	}
	return stdr.New(logger)
}

// NewZapLogger returns a new zap logger.
func NewZapLogger(logger *zap.Logger) logr.Logger {
	return zapr.NewLogger(logger)
}

// NewLogrusLogger returns a logrus logger.
func NewLogrusLogger(logger logrus.FieldLogger, opts ...logrusr.Option) logr.Logger {
	return logrusr.New(logger, opts...)
}

// NewHclogLogger returns a new HCLog logger.
func NewHclogLogger(logger hclog.Logger) logr.Logger {
	return hclogr.Wrap(logger)
}

// NewSlogLogger returns a logger writing to a structured logger of the standard library.
func NewSlogLogger(logger *slog.Logger) logr.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logr.FromSlogHandler(logger.Handler())
}
