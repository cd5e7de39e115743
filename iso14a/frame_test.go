// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package iso14a

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfresearch/go-hfcore/parity"
)

func TestStandardFrameAppendsVerifiableCRC(t *testing.T) {
	t.Parallel()
	frame := StandardFrame([]byte{0x93, 0x20})
	require.Len(t, frame, 4)
	assert.True(t, parity.CheckCRC16A(frame), "appended CRC_A should verify")
}

func TestParityRoundTrip(t *testing.T) {
	t.Parallel()
	data := []byte{0x93, 0x70, 0x12, 0x34, 0x56, 0x78, 0x9A}
	bits := ParityBits(data)
	require.Equal(t, -1, VerifyParity(data, bits), "VerifyParity found mismatch on untouched data")

	corrupted := append([]byte(nil), data...)
	corrupted[2] ^= 0x01
	require.Equal(t, 2, VerifyParity(corrupted, bits), "VerifyParity should catch corruption at byte 2")
}

func TestCascadeLevelFor(t *testing.T) {
	t.Parallel()
	cases := []struct {
		uidLen int
		want   byte
	}{
		{4, CascadeLevel1},
		{7, CascadeLevel2},
		{10, CascadeLevel3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CascadeLevelFor(c.uidLen), "uidLen=%d", c.uidLen)
	}
}

func TestResidualBitsClampedRange(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, ResidualBits(0))
	assert.Equal(t, 7, ResidualBits(10000))
}
