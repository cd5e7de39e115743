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

package trace

import (
	"encoding/hex"
	"fmt"
)

// Over-the-air iCLASS command bytes, as they appear in a sniffed trace
// (distinct from this module's own Link opcodes in package iclass, which
// address the device rather than the card).
const (
	iclassCmdSelect    = 0x0C
	iclassCmdReadCheck = 0x88
	iclassKeyTypeDebit = 0x02
	iclassCmdCheck     = 0x05
)

const (
	iclassCSNLen    = 8
	iclassEPurseLen = 8
	iclassMACLen    = 8
)

// ICLASSLookupTemplate is the invocation an offline key-dictionary check
// needs to recover the key behind a sniffed iCLASS mutual-authentication
// exchange: the card's serial number, the e-purse value read back during
// READCHECK, and the MACs sent in CHECK.
type ICLASSLookupTemplate struct {
	CSN     [iclassCSNLen]byte
	EPurse  [iclassEPurseLen]byte
	MACs    [iclassMACLen]byte
	Command string
}

// ExtractICLASSLookupTemplate scans records for a complete ACTALL-less
// SELECT(CSN) -> READCHECK(epurse) -> CHECK(MACs) sequence and, if found,
// returns the `hf iclass lookup` command line an offline dictionary check
// would be invoked with. It reports false if no complete sequence is
// present, e.g. a trace that was cut off mid-authentication.
func ExtractICLASSLookupTemplate(records []Record) (ICLASSLookupTemplate, bool) {
	var tmpl ICLASSLookupTemplate
	stage := 0

	for i := 0; i < len(records); i++ {
		r := records[i]
		switch stage {
		case 0:
			if !r.Header.IsResponse && len(r.Data) == 1 && r.Data[0] == iclassCmdSelect {
				if next, ok := responseOfLen(records, i+1, iclassCSNLen); ok {
					copy(tmpl.CSN[:], next)
					stage = 1
				}
			}
		case 1:
			if !r.Header.IsResponse && len(r.Data) == 2 &&
				r.Data[0] == iclassCmdReadCheck && r.Data[1] == iclassKeyTypeDebit {
				if next, ok := responseOfLen(records, i+1, iclassEPurseLen); ok {
					copy(tmpl.EPurse[:], next)
					stage = 2
				}
			}
		case 2:
			if !r.Header.IsResponse && len(r.Data) == 1+iclassMACLen && r.Data[0] == iclassCmdCheck {
				copy(tmpl.MACs[:], r.Data[1:])
				tmpl.Command = fmt.Sprintf(
					"hf iclass lookup --csn %s --epurse %s --macs %s -f iclass_default_keys.dic",
					hex.EncodeToString(tmpl.CSN[:]), hex.EncodeToString(tmpl.EPurse[:]), hex.EncodeToString(tmpl.MACs[:]),
				)
				return tmpl, true
			}
		}
	}

	return ICLASSLookupTemplate{}, false
}

// responseOfLen returns records[idx].Data if it is a response record of
// exactly length n.
func responseOfLen(records []Record, idx, n int) ([]byte, bool) {
	if idx >= len(records) {
		return nil, false
	}
	r := records[idx]
	if !r.Header.IsResponse || len(r.Data) != n {
		return nil, false
	}
	return r.Data, true
}
