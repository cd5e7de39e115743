// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package tcl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hfcore "github.com/rfresearch/go-hfcore"
	hftesting "github.com/rfresearch/go-hfcore/internal/testing"
)

func TestTransceiveAPDUSingleBlock(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdExchangeAPDU, hfcore.Response{Payload: append([]byte{pcbIBlock}, 0x90, 0x00)}, nil)
	session, err := hfcore.New(link)
	require.NoError(t, err)

	tl := NewLink(session, 256)
	resp, err := tl.TransceiveAPDU(context.Background(), []byte{0x00, 0xA4, 0x04, 0x00})
	require.NoError(t, err)

	data, sw1, sw2 := StatusWord(resp)
	assert.Empty(t, data)
	assert.Equal(t, byte(0x90), sw1)
	assert.Equal(t, byte(0x00), sw2)
}

func TestNeedsGetResponseAndWrongLength(t *testing.T) {
	t.Parallel()
	assert.True(t, NeedsGetResponse(0x61), "0x61 should require GET RESPONSE")

	le, ok := WrongLength(0x6C, 0x10)
	assert.True(t, ok)
	assert.Equal(t, byte(0x10), le)
}
