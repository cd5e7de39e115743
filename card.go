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

package hfcore

// Protocol identifies which card family a CardHandle was selected under.
type Protocol int

const (
	ProtoRaw Protocol = iota
	ProtoISO14A
	ProtoISO14B
	ProtoISO15693
	ProtoICLASS
	ProtoLegic
	ProtoTopaz
	ProtoFeliCa
	ProtoLTO
	ProtoThinfilm
	ProtoMFC
	ProtoMFP
	ProtoMFDES
	ProtoCryptoRF
)

func (p Protocol) String() string {
	switch p {
	case ProtoISO14A:
		return "iso14a"
	case ProtoISO14B:
		return "iso14b"
	case ProtoISO15693:
		return "iso15693"
	case ProtoICLASS:
		return "iclass"
	case ProtoLegic:
		return "legic"
	case ProtoTopaz:
		return "topaz"
	case ProtoFeliCa:
		return "felica"
	case ProtoLTO:
		return "lto"
	case ProtoThinfilm:
		return "thinfilm"
	case ProtoMFC:
		return "mfc"
	case ProtoMFP:
		return "mfp"
	case ProtoMFDES:
		return "mfdes"
	case ProtoCryptoRF:
		return "cryptorf"
	default:
		return "raw"
	}
}

// State is the typestate of a CardHandle: the set of operations legal on a
// handle depends on which state it is in (an auth call on a StateIdle
// handle is a programming error, not a transient failure).
type State int

const (
	StateIdle State = iota
	StateSelected
	StateAuthenticated
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StateAuthenticated:
		return "authenticated"
	case StateHalted:
		return "halted"
	default:
		return "idle"
	}
}

// CardHandle is the tagged variant produced by a Session select operation.
// Per-family packages (mifare.Handle, iso15693.Handle, ...) wrap the fields
// they need and expose their own typed operations; CardHandle itself only
// carries what every family shares: identity, the protocol tag and the
// current typestate.
type CardHandle struct {
	Protocol Protocol
	State    State

	// UID is the anticollision identifier, 4, 7 or 10 bytes depending on
	// protocol and cascade level.
	UID []byte

	// ATQA/SAK are populated for ISO 14443-A selections.
	ATQA [2]byte
	SAK  byte

	// ATS is the Answer To Select returned by ISO 14443-4 cards, empty for
	// Layer 3-only cards.
	ATS []byte

	// AFI/DSFID/blockSize/numBlocks are populated for ISO 15693 selections.
	AFI       byte
	DSFID     byte
	BlockSize int
	NumBlocks int

	// Raw carries the last raw select response payload for protocols this
	// package has no richer model for.
	Raw []byte
}

// RequireState returns ErrWrongState wrapped with op if the handle is not
// currently in one of the allowed states.
func (c *CardHandle) RequireState(op string, allowed ...State) error {
	for _, s := range allowed {
		if c.State == s {
			return nil
		}
	}
	return NewLinkError(op, "", ErrWrongState, KindProtocol)
}
