// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package topaz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeShortFrames(t *testing.T) {
	t.Parallel()
	got := MergeShortFrames([][]byte{{0x11}, {0x22}, {}, {0x33}})
	assert.Equal(t, []byte{0x11, 0x22, 0x33}, got)
}
