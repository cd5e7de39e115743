// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfresearch/go-hfcore/parity"
)

func buildRecord(timestamp, duration uint32, isResponse bool, data []byte) []byte {
	var buf []byte
	put32 := func(v uint32) {
		buf = append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	put32(timestamp)
	put32(duration)
	buf = append(buf, byte(len(data)>>8), byte(len(data)))
	if isResponse {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = append(buf, data...)
	parityBits := parity.AddOddParity(data)
	buf = append(buf, parityBits...)
	return buf
}

func TestParseRecordsRoundTrip(t *testing.T) {
	t.Parallel()
	data := []byte{0x26}
	buf := buildRecord(100, 64, false, data)
	records, err := ParseRecords(buf)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, uint32(100), records[0].Header.Timestamp)
	assert.False(t, records[0].Header.IsResponse)
}

func TestCheckCRCISO14A(t *testing.T) {
	t.Parallel()
	framed := parity.AppendCRC16A([]byte{0x93, 0x70})
	assert.Equal(t, CRCPass, CheckCRC(ProtocolISO14A, framed), "valid CRC-16/A frame should pass")

	framed[0] ^= 0xFF
	assert.Equal(t, CRCFail, CheckCRC(ProtocolISO14A, framed), "corrupted frame should fail CRC check")
}

func TestResidualBitsOnlyForShortISO14AFrames(t *testing.T) {
	t.Parallel()
	assert.NotZero(t, ResidualBits(ProtocolISO14A, 544), "short frame should report nonzero residual bits")
	assert.Zero(t, ResidualBits(ProtocolISO15693, 544), "non-14A protocol should report 0")
}

func TestDurationUnitScaling(t *testing.T) {
	t.Parallel()
	assert.Equal(t, float64(3200), DurationUnit(ProtocolISO15693, 100, false))
	assert.InDelta(t, 100.0, DurationUnit(ProtocolISO14A, 1356, true), 0.1)
}
