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

// Package iso15693 implements ISO/IEC 15693 vicinity-card inventory,
// block read/write, AFI/DSFID discovery and the NXP SLIX2 originality
// signature check.
package iso15693

import hfcore "github.com/rfresearch/go-hfcore"

// Opcodes in the ISO 15693 command range.
const (
	CmdInventory    hfcore.Opcode = 0x0600
	CmdReadBlock    hfcore.Opcode = 0x0601
	CmdWriteBlock   hfcore.Opcode = 0x0602
	CmdGetSysInfo   hfcore.Opcode = 0x0603
	CmdGetSignature hfcore.Opcode = 0x0604
)

// Request flag bits (ISO/IEC 15693-3 §7.1).
const (
	FlagSubcarrierDual byte = 1 << 0
	FlagDataRateHigh   byte = 1 << 1
	FlagInventory      byte = 1 << 2
	FlagProtocolExt    byte = 1 << 3
	FlagSelect         byte = 1 << 4 // non-inventory meaning of bit 4
	FlagAFI            byte = 1 << 4 // inventory meaning of bit 4
	FlagAddressed      byte = 1 << 5
	FlagOption         byte = 1 << 6
)

// Command codes.
const (
	CmdCodeInventory       byte = 0x01
	CmdCodeReadBlock       byte = 0x20
	CmdCodeWriteBlock      byte = 0x21
	CmdCodeGetSystemInfo   byte = 0x2B
	CmdCodeReadMultiBlock  byte = 0x23
	CmdCodeWriteAFI        byte = 0x27
	CmdCodeWriteDSFID      byte = 0x29
	CmdCodeGetSignatureNXP byte = 0xBD // NXP custom, IC-manufacturer code 0x04
)

// SystemInfoFlags reports which optional fields GetSystemInfo returned.
type SystemInfoFlags byte

const (
	SysInfoHasDSFID       SystemInfoFlags = 1 << 0
	SysInfoHasAFI         SystemInfoFlags = 1 << 1
	SysInfoHasMemorySize  SystemInfoFlags = 1 << 2
	SysInfoHasICReference SystemInfoFlags = 1 << 3
)
