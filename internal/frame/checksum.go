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

import "github.com/rfresearch/go-hfcore/parity"

// CalculateLengthChecksum computes the length checksum (LCS): the two's
// complement of length, so that length+LCS always sums to 0 mod 256.
func CalculateLengthChecksum(length byte) byte {
	return (^length) + 1
}

// CalculateDataChecksum computes the CRC-16/A over the TFI direction byte
// followed by data, returned little-endian as the frame's trailing two
// checksum bytes.
func CalculateDataChecksum(tfi byte, data []byte) (lo, hi byte) {
	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, tfi)
	buf = append(buf, data...)
	crc := parity.CRC16A(buf)
	return byte(crc), byte(crc >> 8)
}

// ValidateDataChecksum reports whether the CRC-16/A of tfi+data matches the
// little-endian checksum bytes (lo, hi).
func ValidateDataChecksum(tfi byte, data []byte, lo, hi byte) bool {
	wantLo, wantHi := CalculateDataChecksum(tfi, data)
	return wantLo == lo && wantHi == hi
}
