// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package hfcore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetryConfig(t *testing.T) {
	t.Parallel()

	config := DefaultRetryConfig()

	require.NotNil(t, config)
	assert.Positive(t, config.MaxAttempts)
	assert.Greater(t, config.InitialBackoff, time.Duration(0))
	assert.Greater(t, config.MaxBackoff, config.InitialBackoff)
	assert.Greater(t, config.BackoffMultiplier, 1.0)
	assert.GreaterOrEqual(t, config.Jitter, 0.0)
	assert.LessOrEqual(t, config.Jitter, 1.0)
	assert.Greater(t, config.RetryTimeout, time.Duration(0))
}

func TestRetryWithConfigStopsOnNonRetryableError(t *testing.T) {
	t.Parallel()

	calls := 0
	err := RetryWithConfig(context.Background(), DefaultRetryConfig(), func() error {
		calls++
		return ErrInvalidParameter
	})

	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, 1, calls, "non-retryable errors should not be retried")
}

func TestRetryWithConfigRetriesTransientError(t *testing.T) {
	t.Parallel()

	calls := 0
	config := &RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        10 * time.Millisecond,
		BackoffMultiplier: 2.0,
		RetryTimeout:      time.Second,
	}

	err := RetryWithConfig(context.Background(), config, func() error {
		calls++
		if calls < 3 {
			return ErrTimeout
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls, "should retry transient failures until success")
}

func TestRetryWithConfigExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	config := &RetryConfig{
		MaxAttempts:       2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        10 * time.Millisecond,
		BackoffMultiplier: 2.0,
		RetryTimeout:      time.Second,
	}

	err := RetryWithConfig(context.Background(), config, func() error {
		calls++
		return ErrCRCFailed
	})

	require.ErrorIs(t, err, ErrCRCFailed)
	assert.Equal(t, 2, calls)
}

func TestExponentialBackoffGrowsAndCaps(t *testing.T) {
	t.Parallel()

	initial := 10 * time.Millisecond
	maxDur := 100 * time.Millisecond

	assert.Equal(t, initial, ExponentialBackoff(0, initial, maxDur, 2.0))
	assert.Equal(t, initial, ExponentialBackoff(1, initial, maxDur, 2.0))
	assert.Equal(t, 20*time.Millisecond, ExponentialBackoff(2, initial, maxDur, 2.0))
	assert.Equal(t, maxDur, ExponentialBackoff(10, initial, maxDur, 2.0))
}

func TestRetryWithConfigRespectsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithConfig(ctx, DefaultRetryConfig(), func() error {
		return ErrTimeout
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
