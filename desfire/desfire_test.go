// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package desfire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSessionKeyLength(t *testing.T) {
	t.Parallel()
	rndA8 := make([]byte, 8)
	rndB8 := make([]byte, 8)
	assert.Len(t, deriveSessionKey(rndA8, rndB8), 16, "8-byte randoms should derive a 16-byte session key")

	rndA16 := make([]byte, 16)
	rndB16 := make([]byte, 16)
	assert.Len(t, deriveSessionKey(rndA16, rndB16), 16, "16-byte randoms should derive a 16-byte session key")
}

func TestBlockCipherForUnknown(t *testing.T) {
	t.Parallel()
	_, err := blockCipherFor(Cipher(99), make([]byte, 16))
	assert.Error(t, err, "unknown cipher should be rejected")
}
