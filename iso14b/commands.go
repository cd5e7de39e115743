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

// Package iso14b implements ISO/IEC 14443-B anticollision/select and the
// family of B-type variants (standard ATQB/ATTRIB, ST Microelectronics
// SRx, ASK C-ticket, Fujitsu/Xerox, CryptoRF) that share the same frame
// shape but diverge in their command set. A Variant tag picks the dialect
// rather than splitting into five near-identical packages.
package iso14b

import hfcore "github.com/rfresearch/go-hfcore"

// Opcodes in the ISO 14443-B command range.
const (
	CmdSelect hfcore.Opcode = 0x0500
	CmdAttrib hfcore.Opcode = 0x0501
	CmdHalt   hfcore.Opcode = 0x0502
	CmdRaw    hfcore.Opcode = 0x0503
)

// Variant picks a 14443-B dialect. They share REQB/WUPB-style wakeup and
// CRC-16/B framing but diverge in their select/attrib command encoding.
type Variant uint8

const (
	VariantStandard Variant = iota // plain ATQB/ATTRIB
	VariantSRx                     // ST Microelectronics SRx (SR176, SRI4K, ...)
	VariantASKCTicket
	VariantFujiXerox
	VariantCryptoRF
)

// REQB/WUPB command codes (standard variant).
const (
	CmdREQB byte = 0x05
	CmdWUPB byte = 0x0B
)

// AFIWildcard selects every application family in a REQB/WUPB.
const AFIWildcard byte = 0x00
