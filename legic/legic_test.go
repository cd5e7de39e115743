// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package legic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeobfuscateRoundTrip(t *testing.T) {
	t.Parallel()
	plain := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	stamp := byte(0x2A)

	var state byte = stamp
	obfuscated := make([]byte, len(plain))
	for i, b := range plain {
		ks := legicKeystreamByte(&state)
		obfuscated[i] = b ^ ks
	}

	got := Deobfuscate(stamp, obfuscated)
	assert.Equal(t, plain, got)
}

func TestDecodeSegmentsStopsAtLastFlag(t *testing.T) {
	t.Parallel()
	mem := []byte{
		0x02, 0x00, 0x00, 0xAA, 0x11, 0x22, // segment 1: len=2, not last
		0x01, 0x80, 0x00, 0xBB, 0x33, // segment 2: len=1, last
	}
	segs := DecodeSegments(mem)
	require.Len(t, segs, 2)

	assert.Equal(t, byte(0xAA), segs[0].Stamp)
	assert.Equal(t, 2, segs[0].Length)
	assert.Equal(t, byte(0xBB), segs[1].Stamp)
	assert.Equal(t, 1, segs[1].Length)
}
