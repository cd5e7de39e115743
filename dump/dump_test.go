// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	f := &File{
		FileType: FileTypeMifareClassic,
		Card:     CardMeta{UID: "04112233"},
		Blocks: map[int][]byte{
			0: {0x04, 0x11, 0x22, 0x33},
			1: {0x00, 0x00, 0x00, 0x00},
		},
		SectorKeys: map[int]AccessConditions{
			0: {KeyA: "ffffffffffff"},
		},
	}

	data, err := f.MarshalJSON()
	require.NoError(t, err)

	var got File
	require.NoError(t, got.UnmarshalJSON(data))
	assert.Equal(t, f.FileType, got.FileType)
	assert.Equal(t, f.Card.UID, got.Card.UID)
	assert.Len(t, got.Blocks, 2)
	assert.Equal(t, "ffffffffffff", got.SectorKeys[0].KeyA)
}

func TestEMLRoundTrip(t *testing.T) {
	t.Parallel()
	text := "# comment\n0102030405060708090a0b0c0d0e0f10\n\n1112131415161718191a1b1c1d1e1f20\n"
	f, err := LoadEML(text)
	require.NoError(t, err)
	require.Len(t, f.Blocks, 2)

	rendered := f.SaveEML()
	f2, err := LoadEML(rendered)
	require.NoError(t, err)
	assert.Len(t, f2.Blocks, 2, "round trip should preserve block count")
}

func TestBinRoundTrip(t *testing.T) {
	t.Parallel()
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	f := LoadBin(raw, 16)
	require.Len(t, f.Blocks, 2)
	assert.Len(t, f.SaveBin(), 32)
}

func TestDetectMFULayoutPlain(t *testing.T) {
	t.Parallel()
	data := make([]byte, 64)
	assert.Equal(t, MFULayoutPlain, DetectMFULayout(data))
}
