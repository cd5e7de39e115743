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

// Package mifare drives MIFARE Classic: authenticate, block read/write,
// halt, and the wire-level nonce acquisition opcodes the nested and
// hardnested attacks in package attack consume.
package mifare

import hfcore "github.com/rfresearch/go-hfcore"

// Opcodes in the MIFARE Classic command range.
const (
	CmdAuth            hfcore.Opcode = 0x0400
	CmdReadBlock       hfcore.Opcode = 0x0401
	CmdWriteBlock      hfcore.Opcode = 0x0402
	CmdHalt            hfcore.Opcode = 0x0403
	CmdAcquireNonces   hfcore.Opcode = 0x0404 // MifareAcquireEncryptedNonces
	CmdNested          hfcore.Opcode = 0x0405 // MifareNested
	CmdMagicGen1Escape hfcore.Opcode = 0x0406
)

// KeyType selects which sector key (A or B) an authentication uses.
type KeyType uint8

const (
	KeyA KeyType = 0
	KeyB KeyType = 1
)

// Memory layout constants (spec §3 invariant: small-sector trailer at
// position 3 of 4, large-sector trailer at position 15 of 16).
const (
	BlockSize        = 16
	SmallSectorCount = 32
	SmallSectorSize  = 4
	LargeSectorSize  = 16
)

// TrailerBlock returns the absolute block number of sector's trailer.
func TrailerBlock(sector int) int {
	if sector < SmallSectorCount {
		return sector*SmallSectorSize + SmallSectorSize - 1
	}
	base := SmallSectorCount * SmallSectorSize
	return base + (sector-SmallSectorCount)*LargeSectorSize + LargeSectorSize - 1
}

// SectorFirstBlock returns the first block number of sector.
func SectorFirstBlock(sector int) int {
	if sector < SmallSectorCount {
		return sector * SmallSectorSize
	}
	base := SmallSectorCount * SmallSectorSize
	return base + (sector-SmallSectorCount)*LargeSectorSize
}

// IsTrailerBlock reports whether block is a sector trailer.
func IsTrailerBlock(block int) bool {
	if block < SmallSectorCount*SmallSectorSize {
		return (block+1)%SmallSectorSize == 0
	}
	return (block-SmallSectorCount*SmallSectorSize+1)%LargeSectorSize == 0
}
