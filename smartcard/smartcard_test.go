// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package smartcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseATRDirectConventionNoTA1(t *testing.T) {
	t.Parallel()
	raw := []byte{0x3B, 0x00}
	atr, err := ParseATR(raw)
	require.NoError(t, err)

	assert.Equal(t, byte(0x3B), atr.Convention)
	assert.Equal(t, 372, atr.Fi)
	assert.Equal(t, 1, atr.Di)
}

func TestParseATRDecodesTA1(t *testing.T) {
	t.Parallel()
	// T0 = 0x10 (TA1 present), TA1 = 0x13 -> Fi index 1 (372), Di index 3 (4)
	raw := []byte{0x3B, 0x10, 0x13}
	atr, err := ParseATR(raw)
	require.NoError(t, err)

	assert.Equal(t, 372, atr.Fi)
	assert.Equal(t, 4, atr.Di)
}

func TestParseATRTooShort(t *testing.T) {
	t.Parallel()
	_, err := ParseATR([]byte{0x3B})
	assert.Error(t, err, "expected error for truncated ATR")
}
