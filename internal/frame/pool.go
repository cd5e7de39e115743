// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-hfcore.
//
// go-hfcore is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-hfcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-hfcore; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package frame

import "sync"

var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, MaxFrameDataLength)
		return &buf
	},
}

// GetBuffer returns a zeroed byte slice of length size from the pool when
// size fits the pool's buffer size, or a freshly allocated slice otherwise.
func GetBuffer(size int) []byte {
	if size > MaxFrameDataLength {
		return make([]byte, size)
	}
	ptr, _ := bufferPool.Get().(*[]byte)
	buf := (*ptr)[:size]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// GetSmallBuffer is GetBuffer for small, frequently-allocated reads (ready
// status, ACK frames) where pool churn would otherwise dominate.
func GetSmallBuffer(size int) []byte {
	return GetBuffer(size)
}

// PutBuffer returns buf to the pool if it originated from one.
func PutBuffer(buf []byte) {
	if cap(buf) != MaxFrameDataLength {
		return
	}
	full := buf[:MaxFrameDataLength]
	bufferPool.Put(&full)
}
