// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndReadNDEFTextRoundTrip(t *testing.T) {
	t.Parallel()

	f := &File{FileType: FileTypeMifareUltralight, Blocks: map[int][]byte{
		0: {0x04, 0x11, 0x22, 0x33},
		1: {0x44, 0x55, 0x66, 0x00},
		2: {0x00, 0x00, 0x00, 0x00},
		3: {0xE1, 0x10, 0x06, 0x00},
	}}

	require.NoError(t, f.SetNDEFText(4, 4, "hello hfcore", "en"))

	got, err := f.NDEFText(4)
	require.NoError(t, err)
	assert.Equal(t, "hello hfcore", got)
}

func TestNDEFTextMissingTLVReturnsError(t *testing.T) {
	t.Parallel()

	f := &File{Blocks: map[int][]byte{
		4: {0x00, 0x00, 0x00, 0x00},
		5: {0x00, 0x00, 0x00, 0x00},
	}}

	_, err := f.NDEFText(4)
	assert.Error(t, err)
}

func TestSetNDEFTextRejectsOversizedPayload(t *testing.T) {
	t.Parallel()

	f := &File{}
	big := make([]byte, 300)
	for i := range big {
		big[i] = 'a'
	}
	err := f.SetNDEFText(4, 4, string(big), "en")
	assert.Error(t, err)
}
