// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package mifareul

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTearingFlag(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, DecodeTearingFlag(0xFF))
	assert.Equal(t, 5, DecodeTearingFlag(0x05))
}

func TestExpand2KeyTDES(t *testing.T) {
	t.Parallel()
	key := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	expanded := expand2KeyTDES(key)
	require.Len(t, expanded, 24)
	for i := 0; i < 8; i++ {
		assert.Equal(t, expanded[i], expanded[16+i], "K1/K3 mismatch at byte %d", i)
	}
}
