// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package thinfilm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hfcore "github.com/rfresearch/go-hfcore"
	hftesting "github.com/rfresearch/go-hfcore/internal/testing"
)

func TestPollSplitsUIDAndNDEF(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	payload := append([]byte{4, 0x11, 0x22, 0x33, 0x44}, []byte{0xD1, 0x01, 0x02, 'h', 'i'}...)
	link.Queue(CmdPoll, hfcore.Response{Payload: payload}, nil)

	session, err := hfcore.New(link)
	require.NoError(t, err)

	tag, err := Poll(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, tag.UID)
	assert.Equal(t, []byte{0xD1, 0x01, 0x02, 'h', 'i'}, tag.NDEF)
}

func TestPollEmptyNDEFPayload(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdPoll, hfcore.Response{Payload: []byte{2, 0xAA, 0xBB}}, nil)

	session, err := hfcore.New(link)
	require.NoError(t, err)

	tag, err := Poll(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, tag.UID)
	assert.Empty(t, tag.NDEF)
}

func TestPollRejectsEmptyPayload(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdPoll, hfcore.Response{}, nil)

	session, err := hfcore.New(link)
	require.NoError(t, err)

	_, err = Poll(context.Background(), session)
	require.Error(t, err)
	assert.ErrorIs(t, err, hfcore.ErrInvalidTag)
}

func TestPollRejectsTruncatedUID(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdPoll, hfcore.Response{Payload: []byte{10, 0x01, 0x02}}, nil)

	session, err := hfcore.New(link)
	require.NoError(t, err)

	_, err = Poll(context.Background(), session)
	require.Error(t, err)
	assert.ErrorIs(t, err, hfcore.ErrInvalidTag)
}
