// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package hardnested

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitSetClearAndCount(t *testing.T) {
	t.Parallel()
	b := NewBitSet()
	require.Equal(t, StateSpaceSize, b.Count())

	b.Clear(42)
	assert.False(t, b.IsSet(42), "state 42 should be cleared")
	assert.Equal(t, StateSpaceSize-1, b.Count())
}

func TestIntersectKeep(t *testing.T) {
	t.Parallel()
	a := NewBitSet()
	keep := NewBitSet()
	keep.Clear(7)
	a.IntersectKeep(keep)
	assert.False(t, a.IsSet(7), "intersected bitset should drop state 7")
	assert.True(t, a.IsSet(8), "intersected bitset should keep state 8")
}

func TestSumBitCount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, SumBitCount(0b1011, 4))
}
