// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package mifare

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hfcore "github.com/rfresearch/go-hfcore"
	"github.com/rfresearch/go-hfcore/iso14a"
	hftesting "github.com/rfresearch/go-hfcore/internal/testing"
)

func TestTrailerBlockLayout(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, TrailerBlock(0))
	assert.Equal(t, 127, TrailerBlock(31))
	assert.Equal(t, 143, TrailerBlock(32))
	assert.True(t, IsTrailerBlock(3))
	assert.False(t, IsTrailerBlock(2))
}

func TestReadBlockRequiresAuthOnCorrectSector(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(iso14a.CmdSelect, hfcore.Response{
		Payload: append([]byte{0x04, 0x00, 0x04}, append(hftesting.TestMIFARE1KUID, 0x08)...),
	}, nil)
	session, err := hfcore.New(link)
	require.NoError(t, err)

	h, err := Select(context.Background(), session)
	require.NoError(t, err)

	_, err = h.ReadBlock(context.Background(), 4)
	require.Error(t, err, "expected ErrWrongState before authentication")

	link.Queue(CmdAuth, hfcore.Response{}, nil)
	require.NoError(t, h.Authenticate(context.Background(), 1, KeyA, [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}))

	// Sector 1 spans blocks 4-7; block 8 belongs to sector 2.
	_, err = h.ReadBlock(context.Background(), 8)
	require.Error(t, err, "expected wrong-sector error reading block 8 after authing sector 1")

	link.Queue(CmdReadBlock, hfcore.Response{Payload: make([]byte, BlockSize)}, nil)
	_, err = h.ReadBlock(context.Background(), 4)
	require.NoError(t, err, "ReadBlock after correct auth")
}
