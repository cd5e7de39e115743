// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-hfcore.
//
// go-hfcore is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-hfcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-hfcore; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package transport provides internal polling-retry helpers shared by the
// concrete Link implementations and the long-running attack/dump loops.
// This is distinct from the package-level RetryConfig/RetryWithConfig in
// hfcore, which retries a single Link call; this package retries a
// poll-until-ready predicate (card present, device ready, buffer filled).
package transport

import (
	"time"

	hfcore "github.com/rfresearch/go-hfcore"
)

// PollOperation represents a predicate that can be polled.
// Returns: data, shouldRetry, error
//   - data: the result if successful
//   - shouldRetry: true if the caller should poll again
//   - error: any permanent error that should stop polling
type PollOperation[T any] func() (T, bool, error)

// PollConfig configures polling behavior.
type PollConfig struct {
	OnRetry       func() error
	OnRetryFailed func() error
	Description   string
	MaxRetries    int
	RetryDelay    time.Duration
}

// WithPoll executes operation, polling up to config.MaxRetries times while
// it reports shouldRetry. Used for "wait for tag in field" and "wait for
// BIG_BUF fill" style loops that are not a single retryable Link call.
func WithPoll[T any](config PollConfig, operation PollOperation[T]) (T, error) {
	var zero T

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		result, shouldRetry, err := operation()
		if err != nil {
			return zero, err
		}

		if !shouldRetry {
			return result, nil
		}

		if attempt >= config.MaxRetries {
			break
		}

		if err := executeRetryCallback(config); err != nil {
			return zero, err
		}

		if config.RetryDelay > 0 {
			time.Sleep(config.RetryDelay)
		}
	}

	return handlePollExhausted[T](config)
}

func executeRetryCallback(config PollConfig) error {
	if config.OnRetry != nil {
		return config.OnRetry()
	}
	return nil
}

func handlePollExhausted[T any](config PollConfig) (T, error) {
	var zero T

	if config.OnRetryFailed != nil {
		if failErr := config.OnRetryFailed(); failErr != nil {
			return zero, failErr
		}
	}

	desc := config.Description
	if desc == "" {
		desc = "poll"
	}
	return zero, hfcore.NewLinkError(desc, "", hfcore.ErrTimeout, hfcore.KindTransient)
}

// TimeoutPoll executes operation repeatedly until it stops requesting a
// retry or timeout elapses. Common pattern for "wait for device ready"
// and BIG_BUF drain polling.
func TimeoutPoll[T any](timeout time.Duration, operation PollOperation[T]) (T, error) {
	var zero T
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		result, shouldRetry, err := operation()
		if err != nil {
			return zero, err
		}

		if !shouldRetry {
			return result, nil
		}

		time.Sleep(time.Millisecond)
	}

	return zero, hfcore.NewLinkError("timeoutPoll", "", hfcore.ErrTimeout, hfcore.KindTransient)
}
