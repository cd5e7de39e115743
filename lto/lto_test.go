// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package lto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hfcore "github.com/rfresearch/go-hfcore"
	"github.com/rfresearch/go-hfcore/iso14a"
	hftesting "github.com/rfresearch/go-hfcore/internal/testing"
)

func selectPayload(uid []byte) []byte {
	payload := []byte{0x01, 0x00, byte(len(uid))}
	payload = append(payload, uid...)
	payload = append(payload, 0x00) // SAK
	return payload
}

func TestReadBlockRequiresCorrectSize(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(iso14a.CmdSelect, hfcore.Response{Payload: selectPayload([]byte{0x04, 0x11, 0x22, 0x33})}, nil)
	session, err := hfcore.New(link)
	require.NoError(t, err)

	h, err := Select(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x11, 0x22, 0x33}, h.UID())

	link.Queue(CmdReadBlock, hfcore.Response{Payload: make([]byte, BlockSize-1)}, nil)
	_, err = h.ReadBlock(context.Background(), 0)
	assert.Error(t, err, "short block payload should be rejected")
}

func TestWriteBlockRoundTrip(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(iso14a.CmdSelect, hfcore.Response{Payload: selectPayload([]byte{0x04, 0x11, 0x22, 0x33})}, nil)
	session, err := hfcore.New(link)
	require.NoError(t, err)

	h, err := Select(context.Background(), session)
	require.NoError(t, err)

	link.Queue(CmdWriteBlock, hfcore.Response{}, nil)
	var data [16]byte
	require.NoError(t, h.WriteBlock(context.Background(), 3, data))

	sent := link.Sent()
	require.NotEmpty(t, sent)
	assert.Equal(t, CmdWriteBlock, sent[len(sent)-1].Opcode)
}
