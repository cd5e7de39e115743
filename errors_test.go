// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package hfcore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkErrorWrapsAndUnwraps(t *testing.T) {
	t.Parallel()

	le := NewLinkError("select", "uart:/dev/ttyACM0", ErrTimeout, KindTransient)
	assert.Contains(t, le.Error(), "select")
	assert.Contains(t, le.Error(), "uart:/dev/ttyACM0")
	require.True(t, errors.Is(le, ErrTimeout))
	assert.True(t, le.Retryable)
}

func TestNewLinkErrorRetryableOnlyForTransient(t *testing.T) {
	t.Parallel()

	assert.True(t, NewLinkError("op", "", ErrTimeout, KindTransient).Retryable)
	assert.False(t, NewLinkError("op", "", ErrAuthFailed, KindAuth).Retryable)
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRetryable(ErrTimeout))
	assert.True(t, IsRetryable(ErrCRCFailed))
	assert.True(t, IsRetryable(ErrParityFailed))
	assert.False(t, IsRetryable(ErrAuthFailed))
	assert.True(t, IsRetryable(NewLinkError("op", "", ErrInvalidTag, KindTransient)))
	assert.False(t, IsRetryable(NewLinkError("op", "", ErrInvalidTag, KindProtocol)))
}

func TestKindClassifiesSentinelErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want ErrorKind
	}{
		{ErrAuthFailed, KindAuth},
		{ErrTornWrite, KindTearOff},
		{ErrInvalidParameter, KindInput},
		{ErrOutOfBound, KindInput},
		{ErrTimeout, KindTransient},
		{ErrCRCFailed, KindTransient},
		{ErrNotImplemented, KindProtocol},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Kind(c.err), "err=%v", c.err)
	}
}

func TestKindPrefersLinkErrorClassification(t *testing.T) {
	t.Parallel()

	// ErrAuthFailed would classify as KindAuth by sentinel matching, but a
	// LinkError's explicit Kind always wins.
	le := NewLinkError("auth", "", ErrAuthFailed, KindProtocol)
	assert.Equal(t, KindProtocol, Kind(le))
}

func TestErrorKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "transient", KindTransient.String())
	assert.Equal(t, "auth", KindAuth.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
