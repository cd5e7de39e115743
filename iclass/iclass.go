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

// Package iclass implements HID iCLASS (Picopass) anticollision and
// block access: ACTALL, SELECT, READCHECK/CHECK mutual authentication,
// and the page-mapped memory model iCLASS uses instead of MIFARE-style
// flat sectors.
package iclass

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// Opcodes in the iCLASS command range.
const (
	CmdActAll     hfcore.Opcode = 0x0A00
	CmdSelect     hfcore.Opcode = 0x0A01
	CmdReadCheck  hfcore.Opcode = 0x0A02
	CmdCheck      hfcore.Opcode = 0x0A03
	CmdReadBlock  hfcore.Opcode = 0x0A04
	CmdWriteBlock hfcore.Opcode = 0x0A05
)

// Fixed block numbers in an iCLASS page's configuration area.
const (
	BlockCSN    = 0
	BlockConfig = 1
	BlockEPurse = 2
	BlockKd     = 3 // debit key, write-only
	BlockKc     = 4 // credit key, write-only
	BlockAIA    = 5 // application issuer area
)

// BlockSize is the fixed iCLASS block size.
const BlockSize = 8

// PageCount is the number of 256-byte pages an iCLASS 2KS/16KS card
// exposes; legacy 2KS cards only ever use page 0.
type PageCount int

// Handle is a selected iCLASS card.
type Handle struct {
	session *hfcore.Session
	CSN     [8]byte
	authed  bool
}

// ActAll wakes every iCLASS card in the field (broadcast, no response
// data beyond an ack); callers follow with Select to resolve a CSN.
func ActAll(ctx context.Context, session *hfcore.Session) error {
	if _, err := session.Exchange(ctx, CmdActAll, [3]uint32{}, nil); err != nil {
		return fmt.Errorf("iclass actall: %w", err)
	}
	return nil
}

// Select resolves one card's CSN after ActAll.
func Select(ctx context.Context, session *hfcore.Session) (*Handle, error) {
	resp, err := session.Exchange(ctx, CmdSelect, [3]uint32{}, nil)
	if err != nil {
		return nil, fmt.Errorf("iclass select: %w", err)
	}
	if len(resp.Payload) != 8 {
		return nil, hfcore.NewLinkError("iclass select", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}
	h := &Handle{session: session}
	copy(h.CSN[:], resp.Payload)
	return h, nil
}

// ReadCheck begins mutual authentication for keyType (debit=Kd,
// credit=Kc), returning the card's challenge/epurse material the host
// uses to compute the CHECK response.
func (h *Handle) ReadCheck(ctx context.Context, keyType byte) ([]byte, error) {
	resp, err := h.session.Exchange(ctx, CmdReadCheck, [3]uint32{uint32(keyType)}, h.CSN[:])
	if err != nil {
		return nil, fmt.Errorf("iclass readcheck: %w", err)
	}
	return resp.Payload, nil
}

// Check completes mutual authentication with an 8-byte reader response
// (MAC) computed from the ReadCheck challenge and the card's key.
func (h *Handle) Check(ctx context.Context, response [8]byte) error {
	_, err := h.session.Exchange(ctx, CmdCheck, [3]uint32{}, response[:])
	if err != nil {
		h.authed = false
		return hfcore.NewLinkError("iclass check", "", hfcore.ErrAuthFailed, hfcore.KindAuth)
	}
	h.authed = true
	return nil
}

// ReadBlock reads one 8-byte block. Blocks 0-5 (CSN/config/e-purse/AIA)
// are always readable; application blocks require a prior Check.
func (h *Handle) ReadBlock(ctx context.Context, block int) ([]byte, error) {
	if block > BlockAIA && !h.authed {
		return nil, hfcore.NewLinkError("iclass read block", "", hfcore.ErrWrongState, hfcore.KindProtocol)
	}
	resp, err := h.session.Exchange(ctx, CmdReadBlock, [3]uint32{uint32(block)}, nil)
	if err != nil {
		return nil, fmt.Errorf("iclass read block %d: %w", block, err)
	}
	if len(resp.Payload) != BlockSize {
		return nil, hfcore.NewLinkError("iclass read block", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}
	return resp.Payload, nil
}

// WriteBlock writes one 8-byte block, requiring prior Check unless block
// is the write-only key block itself (writing a key never requires
// reading it back).
func (h *Handle) WriteBlock(ctx context.Context, block int, data [8]byte) error {
	if !h.authed && block != BlockKd && block != BlockKc {
		return hfcore.NewLinkError("iclass write block", "", hfcore.ErrWrongState, hfcore.KindProtocol)
	}
	_, err := h.session.Exchange(ctx, CmdWriteBlock, [3]uint32{uint32(block)}, data[:])
	if err != nil {
		return fmt.Errorf("iclass write block %d: %w", block, err)
	}
	return nil
}
