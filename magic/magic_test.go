// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package magic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hfcore "github.com/rfresearch/go-hfcore"
	hftesting "github.com/rfresearch/go-hfcore/internal/testing"
)

func TestUnlockFullSequence(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdWupC1, hfcore.Response{Payload: []byte{gen1Ack}}, nil)
	link.Queue(CmdWupC2, hfcore.Response{Payload: []byte{gen1Ack}}, nil)

	session, err := hfcore.New(link)
	require.NoError(t, err)

	err = Unlock(context.Background(), session, SequenceFlags{Init: true, WupC: true})
	require.NoError(t, err)

	sent := link.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, CmdWupC1, sent[0].Opcode)
	assert.Equal(t, CmdWupC2, sent[1].Opcode)
}

func TestUnlockRejectsBadAck(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdWupC1, hfcore.Response{Payload: []byte{0xFF}}, nil)

	session, err := hfcore.New(link)
	require.NoError(t, err)

	err = Unlock(context.Background(), session, SequenceFlags{Init: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, hfcore.ErrInvalidTag)
}

func TestUnlockWipeAndHalt(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdWipeC, hfcore.Response{}, nil)
	link.Queue(CmdHaltC, hfcore.Response{}, nil)

	session, err := hfcore.New(link)
	require.NoError(t, err)

	err = Unlock(context.Background(), session, SequenceFlags{Wipe: true, Halt: true})
	require.NoError(t, err)

	sent := link.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, CmdWipeC, sent[0].Opcode)
	assert.Equal(t, CmdHaltC, sent[1].Opcode)
}

func TestWriteBlockSendsBlockIndexAndData(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdWriteC, hfcore.Response{}, nil)

	session, err := hfcore.New(link)
	require.NoError(t, err)

	var data [16]byte
	copy(data[:], []byte("0123456789abcdef"))
	require.NoError(t, WriteBlock(context.Background(), session, 5, data))

	sent := link.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, CmdWriteC, sent[0].Opcode)
	assert.Equal(t, uint32(5), sent[0].Args[0])
	assert.Equal(t, data[:], sent[0].Payload)
}
