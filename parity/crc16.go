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

package parity

// reflectedTable is the standard CRC-16/CCITT table for the reflected
// polynomial 0x8408 (bit-reverse of 0x1021), used by ISO 14443-A/B,
// ISO 15693 and the Kermit variant of CRC-CCITT.
var reflectedTable = func() [256]uint16 {
	var t [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i)
		for bit := 0; bit < 8; bit++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ 0x8408
			} else {
				crc >>= 1
			}
		}
		t[i] = crc
	}
	return t
}()

func updateReflected(crc uint16, data []byte) uint16 {
	for _, b := range data {
		crc = (crc >> 8) ^ reflectedTable[(crc^uint16(b))&0xFF]
	}
	return crc
}

// CRC16A computes the ISO/IEC 14443-A frame CRC (init 0x6363, reflected
// poly 0x8408, no final XOR), appended little-endian after the payload.
func CRC16A(data []byte) uint16 {
	return updateReflected(0x6363, data)
}

// CRC16B computes the ISO/IEC 14443-B frame CRC (init 0xFFFF, reflected
// poly 0x8408, ones-complemented on output), appended little-endian.
func CRC16B(data []byte) uint16 {
	return updateReflected(0xFFFF, data) ^ 0xFFFF
}

// CRC16ISO15693 computes the ISO/IEC 15693 frame CRC, which shares CRC_B's
// parameters.
func CRC16ISO15693(data []byte) uint16 {
	return CRC16B(data)
}

// CRC16CCITTKermit computes the Kermit variant of CRC-CCITT (init 0x0000,
// reflected poly 0x8408, no final XOR, result returned byte-swapped per the
// Kermit convention).
func CRC16CCITTKermit(data []byte) uint16 {
	crc := updateReflected(0x0000, data)
	return (crc << 8) | (crc >> 8)
}

// CRC16CCITT computes the non-reflected CRC-CCITT (poly 0x1021, init
// 0xFFFF, MSB-first), used by LEGIC's higher-layer framing.
func CRC16CCITT(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// AppendCRC16A appends the little-endian CRC_A of data to data.
func AppendCRC16A(data []byte) []byte {
	crc := CRC16A(data)
	return append(data, byte(crc), byte(crc>>8))
}

// AppendCRC16B appends the little-endian CRC_B of data to data.
func AppendCRC16B(data []byte) []byte {
	crc := CRC16B(data)
	return append(data, byte(crc), byte(crc>>8))
}

// CheckCRC16A reports whether the last two bytes of frame are a valid
// little-endian CRC_A over the preceding bytes.
func CheckCRC16A(frame []byte) bool {
	if len(frame) < 2 {
		return false
	}
	payload, tail := frame[:len(frame)-2], frame[len(frame)-2:]
	want := CRC16A(payload)
	return tail[0] == byte(want) && tail[1] == byte(want>>8)
}

// CheckCRC16B reports whether the last two bytes of frame are a valid
// little-endian CRC_B over the preceding bytes.
func CheckCRC16B(frame []byte) bool {
	if len(frame) < 2 {
		return false
	}
	payload, tail := frame[:len(frame)-2], frame[len(frame)-2:]
	want := CRC16B(payload)
	return tail[0] == byte(want) && tail[1] == byte(want>>8)
}

// crc8LegicTable is the CRC-8 table for LEGIC Prime's polynomial 0x1D.
var crc8LegicTable = func() [256]uint8 {
	var t [256]uint8
	for i := 0; i < 256; i++ {
		crc := uint8(i)
		for bit := 0; bit < 8; bit++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ 0x1D
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}()

// CRC8Legic computes LEGIC Prime's CRC-8 (poly 0x1D) seeded by uidCRC, the
// running checksum carried in the card's segment header.
func CRC8Legic(data []byte, uidCRC uint8) uint8 {
	crc := uidCRC
	for _, b := range data {
		crc = crc8LegicTable[crc^b]
	}
	return crc
}
