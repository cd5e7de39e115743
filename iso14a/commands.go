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

// Package iso14a implements ISO/IEC 14443-A bit framing, anticollision and
// select/halt for the Link opcode space the device exposes for this family.
package iso14a

import hfcore "github.com/rfresearch/go-hfcore"

// Opcodes in the ISO 14443-A command range.
const (
	CmdSelect hfcore.Opcode = 0x0300
	CmdHalt   hfcore.Opcode = 0x0301
	CmdRaw    hfcore.Opcode = 0x0302
)

// Short-frame command codes (7-bit, no parity).
const (
	CmdREQA byte = 0x26
	CmdWUPA byte = 0x52
)

// Select cascade levels.
const (
	CascadeLevel1 byte = 0x93
	CascadeLevel2 byte = 0x95
	CascadeLevel3 byte = 0x97
)

// CascadeTag marks an incomplete UID needing another cascade level.
const CascadeTag byte = 0x88
