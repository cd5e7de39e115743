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

// Package frame builds and parses the wire frames exchanged with the RF
// front-end over transport/uart and transport/i2c: a fixed preamble/start
// code, a length + length-checksum pair, a TFI direction byte, the
// opcode+args+payload body, and a trailing CRC-16/A instead of the
// PN532-style byte-sum checksum (the front-end firmware this module targets
// verifies chunked uploads with CRC-16/A, per spec §6).
package frame

// Frame direction constants indicate which side originated a frame.
const (
	HostToDevice = 0xD4
	DeviceToHost = 0xD5
)

// Frame markers and control bytes.
const (
	Preamble   = 0x00
	StartCode1 = 0x00
	StartCode2 = 0xFF
	Postamble  = 0x00
)

// Frame size limits.
const (
	MaxFrameDataLength = 512 // opcode(2) + args(12) + chunk payload
	MinFrameLength     = 6   // preamble + startcode + len + lcs + tfi + crc-lo
)

// ACK and NACK frames used for per-chunk flow control during UploadChunked.
var (
	AckFrame  = []byte{0x00, 0x00, 0xFF, 0x00, 0xFF, 0x00}
	NackFrame = []byte{0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00}
)
