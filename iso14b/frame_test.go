// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package iso14b

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	t.Parallel()
	framed := Frame([]byte{0x05, 0x00})
	payload, ok := VerifyCRC(framed)
	require.True(t, ok, "VerifyCRC rejected a freshly-framed payload")
	assert.Equal(t, []byte{0x05, 0x00}, payload)

	framed[0] ^= 0xFF
	_, ok = VerifyCRC(framed)
	assert.False(t, ok, "VerifyCRC accepted a corrupted frame")
}

func TestMaxFrameSize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		fsci byte
		want int
	}{
		{0x00, 16},
		{0x80, 256}, // FSCI 8
		{0xF0, 256}, // out of range clamps to max
	}
	for _, c := range cases {
		got := MaxFrameSize([3]byte{c.fsci, 0, 0})
		assert.Equal(t, c.want, got, "fsci=%x", c.fsci)
	}
}

func TestParseATQBLength(t *testing.T) {
	t.Parallel()
	_, ok := ParseATQB(make([]byte, 10))
	assert.False(t, ok, "ParseATQB accepted a short payload")

	_, ok = ParseATQB(make([]byte, 11))
	assert.True(t, ok, "ParseATQB rejected a correctly-sized payload")
}
