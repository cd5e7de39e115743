// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package hfcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hftesting "github.com/rfresearch/go-hfcore/internal/testing"
)

func TestLinkWithRetrySendRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdPing, Response{}, NewLinkError("send", "", ErrTimeout, KindTransient))
	link.Queue(CmdPing, Response{Payload: []byte{0x01}}, nil)

	wrapped := NewLinkWithRetry(link, &RetryConfig{
		MaxAttempts:       2,
		InitialBackoff:    0,
		MaxBackoff:        0,
		BackoffMultiplier: 2,
		RetryTimeout:      0,
	})

	resp, err := wrapped.Send(context.Background(), CmdPing, [3]uint32{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, resp.Payload)
}

func TestLinkWithRetryUploadChunkedDoesNotRetry(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	wrapped := NewLinkWithRetry(link, DefaultRetryConfig())

	require.NoError(t, wrapped.UploadChunked(context.Background(), []byte{1, 2, 3}, false))
	assert.Equal(t, []byte{1, 2, 3}, link.Uploaded())
}

func TestLinkWithRetryHasCapabilityDefaultsFalse(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	wrapped := NewLinkWithRetry(link, DefaultRetryConfig())
	assert.False(t, wrapped.HasCapability(CapabilityFastUpload))
}

func TestLinkWithRetryCloseForwardsToUnderlyingLink(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	wrapped := NewLinkWithRetry(link, DefaultRetryConfig())
	require.NoError(t, wrapped.Close())
	assert.True(t, link.Closed())
}
