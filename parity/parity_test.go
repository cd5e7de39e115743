// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package parity

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

var checkVector = []byte("123456789")

func TestCRC16ACheckVector(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint16(0xBF05), CRC16A(checkVector))
}

func TestCRC16BCheckVector(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint16(0x906E), CRC16B(checkVector))
}

func TestCRC16ISO15693MatchesCRC16B(t *testing.T) {
	t.Parallel()
	assert.Equal(t, CRC16B(checkVector), CRC16ISO15693(checkVector))
}

func TestCRC16CCITTCheckVector(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint16(0x29B1), CRC16CCITT(checkVector))
}

func TestCRC16CCITTKermitIsByteSwappedReflectedCRC(t *testing.T) {
	t.Parallel()

	raw := updateReflected(0x0000, checkVector)
	swapped := (raw << 8) | (raw >> 8)
	assert.Equal(t, swapped, CRC16CCITTKermit(checkVector))
}

func TestAppendAndCheckCRC16A(t *testing.T) {
	t.Parallel()

	frame := AppendCRC16A(append([]byte(nil), checkVector...))
	assert.True(t, CheckCRC16A(frame))

	frame[0] ^= 0xFF
	assert.False(t, CheckCRC16A(frame))
}

func TestAppendAndCheckCRC16B(t *testing.T) {
	t.Parallel()

	frame := AppendCRC16B(append([]byte(nil), checkVector...))
	assert.True(t, CheckCRC16B(frame))

	frame[len(frame)-1] ^= 0xFF
	assert.False(t, CheckCRC16B(frame))
}

func TestCheckCRC16RejectsShortFrame(t *testing.T) {
	t.Parallel()
	assert.False(t, CheckCRC16A([]byte{0x01}))
	assert.False(t, CheckCRC16B(nil))
}

func TestCRC8LegicIsDeterministicAndSeedSensitive(t *testing.T) {
	t.Parallel()

	data := []byte{0x01, 0x02, 0x03, 0x04}
	a := CRC8Legic(data, 0x00)
	b := CRC8Legic(data, 0x00)
	assert.Equal(t, a, b)

	c := CRC8Legic(data, 0xFF)
	assert.NotEqual(t, a, c)
}

func TestOddParity8MatchesBitCountParity(t *testing.T) {
	t.Parallel()

	for x := 0; x < 256; x++ {
		want := uint8(0)
		if bits.OnesCount8(uint8(x))%2 == 0 {
			want = 1
		}
		assert.Equal(t, want, OddParity8(uint8(x)), "byte %d", x)
	}
}

func TestEvenParity8IsInverseOfOdd(t *testing.T) {
	t.Parallel()

	for x := 0; x < 256; x++ {
		assert.Equal(t, OddParity8(uint8(x))^1, EvenParity8(uint8(x)))
	}
}

func TestOddParity16XorsBothBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, OddParity8(0x12^0x34), OddParity16(0x1234))
}

func TestOddParity32FoldsToOddParity16(t *testing.T) {
	t.Parallel()

	var x uint32 = 0x12345678
	want := OddParity16(uint16(x ^ (x >> 16)))
	assert.Equal(t, want, OddParity32(x))
}

func TestEvenParity16And32AreInverses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, OddParity16(0xABCD)^1, EvenParity16(0xABCD))
	assert.Equal(t, OddParity32(0xDEADBEEF)^1, EvenParity32(0xDEADBEEF))
}

func TestAddAndCheckOddParityRoundTrip(t *testing.T) {
	t.Parallel()

	data := []byte{0x00, 0xFF, 0x5A, 0xA5}
	bitsOut := AddOddParity(data)
	assert.True(t, CheckOddParity(data, bitsOut))

	bitsOut[1] ^= 1
	assert.False(t, CheckOddParity(data, bitsOut))
}

func TestCheckOddParityRejectsLengthMismatch(t *testing.T) {
	t.Parallel()
	assert.False(t, CheckOddParity([]byte{0x00, 0x01}, []uint8{1}))
}
