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

// Package tcl implements the ISO/IEC 14443-4 (T=CL) block transport:
// I-block chaining, R-block ACKs (no R-block NACK is ever sent) and
// helpers for the APDU-level status word retry conventions (61xx "more
// data", 6Cxx "wrong Le") on top of an already-selected Layer-4 ISO
// 14443-A or -B card.
package tcl

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// CmdExchangeAPDU is the single opcode. The host side (Link) builds each
// block's PCB, toggles the block number, and acknowledges and reassembles
// chained response blocks itself.
const CmdExchangeAPDU hfcore.Opcode = 0x0D00

// PCB (Protocol Control Byte) block type bits (ISO/IEC 14443-4 §7.1).
const (
	pcbIBlock byte = 0x02
	pcbRBlock byte = 0xA2
	pcbSBlock byte = 0xC2

	pcbChaining byte = 0x10
	pcbBlockNum byte = 0x01
)

// Link tracks the toggling block number the T=CL protocol requires
// between successive I-blocks on one card.
type Link struct {
	session  *hfcore.Session
	blockNum byte
	maxFrame int
}

// NewLink wraps session for T=CL APDU exchange. maxFrame is the card's
// negotiated frame size (from ATS/ATTRIB), used to decide when an I-block
// must be chained.
func NewLink(session *hfcore.Session, maxFrame int) *Link {
	return &Link{session: session, maxFrame: maxFrame}
}

// TransceiveAPDU sends a full APDU, chaining across multiple I-blocks if
// it exceeds the card's max frame size, then drains a chained response
// with R-blocks, returning the reassembled response (data plus trailing
// status word).
func (l *Link) TransceiveAPDU(ctx context.Context, apdu []byte) ([]byte, error) {
	for offset := 0; offset < len(apdu) || len(apdu) == 0; {
		chunkEnd := len(apdu)
		chaining := false
		if l.maxFrame > 0 && chunkEnd-offset > l.maxFrame {
			chunkEnd = offset + l.maxFrame
			chaining = true
		}
		chunk := apdu[offset:chunkEnd]

		pcb := pcbIBlock | (l.blockNum & pcbBlockNum)
		if chaining {
			pcb |= pcbChaining
		}
		resp, err := l.session.Exchange(ctx, CmdExchangeAPDU, [3]uint32{uint32(pcb)}, chunk)
		if err != nil {
			return nil, fmt.Errorf("tcl exchange: %w", err)
		}
		l.blockNum ^= pcbBlockNum

		offset = chunkEnd
		if !chaining {
			// Last fragment of the request sent: what comes back is the
			// start of the card's response.
			return l.drainChainedResponse(ctx, resp)
		}
		if len(resp.Payload) == 0 || resp.Payload[0]&pcbRBlock != pcbRBlock {
			return nil, hfcore.NewLinkError("tcl exchange", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
		}
	}
	return nil, hfcore.NewLinkError("tcl exchange", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
}

// drainChainedResponse appends first (the reply to the final I-block of
// the request) and keeps sending R-block acks while the card signals
// more chained data is coming.
func (l *Link) drainChainedResponse(ctx context.Context, first hfcore.Response) ([]byte, error) {
	if len(first.Payload) == 0 {
		return nil, hfcore.NewLinkError("tcl exchange", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}
	response := append([]byte(nil), first.Payload[1:]...)
	pcb := first.Payload[0]

	for pcb&pcbChaining != 0 {
		ack := pcbRBlock | (l.blockNum & pcbBlockNum)
		resp, err := l.session.Exchange(ctx, CmdExchangeAPDU, [3]uint32{uint32(ack)}, nil)
		if err != nil {
			return nil, fmt.Errorf("tcl r-block ack: %w", err)
		}
		l.blockNum ^= pcbBlockNum
		if len(resp.Payload) == 0 {
			return nil, hfcore.NewLinkError("tcl r-block ack", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
		}
		pcb = resp.Payload[0]
		response = append(response, resp.Payload[1:]...)
	}
	return response, nil
}

// StatusWord splits a reassembled APDU response into its data and
// trailing two-byte status word.
func StatusWord(response []byte) (data []byte, sw1, sw2 byte) {
	if len(response) < 2 {
		return response, 0, 0
	}
	return response[:len(response)-2], response[len(response)-2], response[len(response)-1]
}

// NeedsGetResponse reports whether sw1/sw2 is a 61xx "more data
// available" status requiring a GET RESPONSE follow-up.
func NeedsGetResponse(sw1 byte) bool {
	return sw1 == 0x61
}

// WrongLength reports whether sw1/sw2 is a 6Cxx "wrong Le" status, and
// returns the Le the card expects.
func WrongLength(sw1, sw2 byte) (correctLe byte, ok bool) {
	if sw1 != 0x6C {
		return 0, false
	}
	return sw2, true
}

// GetResponseAPDU builds the ISO 7816-4 GET RESPONSE command for le
// bytes of trailing data, per the 61xx status handling convention.
func GetResponseAPDU(le byte) []byte {
	return []byte{0x00, 0xC0, 0x00, 0x00, le}
}
