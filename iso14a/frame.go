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

package iso14a

import "github.com/rfresearch/go-hfcore/parity"

// ShortFrame builds a 7-bit REQA/WUPA request. It carries no parity and no
// CRC; the device's framer is responsible for transmitting only the low 7
// bits of cmd.
func ShortFrame(cmd byte) []byte {
	return []byte{cmd}
}

// StandardFrame appends a CRC-16/A trailer to payload, matching every
// 14443-A frame that carries more than a bare command byte (anticollision
// select, read/write, halt).
func StandardFrame(payload []byte) []byte {
	return parity.AppendCRC16A(payload)
}

// ParityBits returns one odd-parity bit per byte of data, packed per
// spec §4.2: bit i of the returned byte k is the parity of data[8k+i].
func ParityBits(data []byte) []uint8 {
	return parity.AddOddParity(data)
}

// VerifyParity checks that each byte of data matches its corresponding
// transmitted parity bit, returning the index of the first mismatch, or -1
// if every byte's parity is correct.
func VerifyParity(data []byte, parityBits []uint8) int {
	for i, b := range data {
		byteIdx := i / 8
		bitIdx := uint(i % 8)
		if byteIdx >= len(parityBits) {
			return i
		}
		want := (parityBits[byteIdx] >> bitIdx) & 1
		if parity.OddByteParity[b] != want {
			return i
		}
	}
	return -1
}

// CascadeLevelFor returns the anticollision select command byte for the
// cascade level implied by an accumulating UID of uidLen bytes so far.
func CascadeLevelFor(uidLen int) byte {
	switch {
	case uidLen <= 4:
		return CascadeLevel1
	case uidLen <= 7:
		return CascadeLevel2
	default:
		return CascadeLevel3
	}
}

// ResidualBits computes the short-frame residual bit count (1-7) per
// spec §4.2 for a frame whose measured duration is less than the nominal
// 1088-carrier-period byte time: durationCarrierPeriods*8/1088, clamped
// into [1,7].
func ResidualBits(durationCarrierPeriods uint32) int {
	const nominalByteDuration = 1088
	bits := int((uint64(durationCarrierPeriods) * 8) / nominalByteDuration)
	if bits < 1 {
		return 1
	}
	if bits > 7 {
		return 7
	}
	return bits
}
