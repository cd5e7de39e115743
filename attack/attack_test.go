// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package attack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rfresearch/go-hfcore/parity"
)

func TestValidNonceRoundTrip(t *testing.T) {
	t.Parallel()
	nonce := uint32(0xE0512BB5)

	var p uint8
	for i := 0; i < 4; i++ {
		b := byte(nonce >> uint((3-i)*8))
		p |= parity.OddParity8(b) << uint(3-i)
	}

	assert.True(t, ValidNonce(nonce, p), "correctly-derived parity bits should validate")
	assert.False(t, ValidNonce(nonce, p^0x01), "corrupted parity bit should not validate")
}
