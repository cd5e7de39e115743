// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMifareDecoderRequiresSession(t *testing.T) {
	t.Parallel()
	d := NewMifareDecoder()
	_, ok := d.Decrypt([]byte{1, 2, 3, 4})
	assert.False(t, ok, "Decrypt should fail before StartSession")

	d.StartSession([6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 0x0DB3FA11, 0xE0512BB5)
	_, ok = d.Decrypt([]byte{1, 2, 3, 4})
	assert.True(t, ok, "Decrypt should succeed once a session is active")

	d.EndSession()
	_, ok = d.Decrypt([]byte{1, 2, 3, 4})
	assert.False(t, ok, "Decrypt should fail after EndSession")
}
