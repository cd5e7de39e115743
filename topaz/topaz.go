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

// Package topaz implements the Innovision/Broadcom Topaz (ISO 14443-A
// Type-1 Tag) command set: RID, RALL, READ-8, WRITE-E and WRITE-NE. Topaz
// runs over the same carrier as ISO 14443-A but its own short-frame
// commands don't carry parity, so frames below the anticollision layer
// need merging rather than reuse of package iso14a's framer.
package topaz

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// Opcodes in the Topaz command range.
const (
	CmdRID     hfcore.Opcode = 0x0700
	CmdRALL    hfcore.Opcode = 0x0701
	CmdRead8   hfcore.Opcode = 0x0702
	CmdWriteE  hfcore.Opcode = 0x0703
	CmdWriteNE hfcore.Opcode = 0x0704
)

// Command codes (ISO 14443-A Type-1 Tag Operation, NFC Forum Type 1 Tag).
const (
	CmdCodeRID     byte = 0x78
	CmdCodeRALL    byte = 0x00
	CmdCodeRead8   byte = 0x01
	CmdCodeWriteE  byte = 0x53
	CmdCodeWriteNE byte = 0x1A
)

// Handle is an identified Topaz tag.
type Handle struct {
	session *hfcore.Session
	UID     [7]byte // HR0/HR1 header rom bytes excluded
	HR      [2]byte
}

// MergeShortFrames concatenates a sequence of 7-bit short-frame reads into
// a byte stream, for readers whose Link only ever returns whole bytes and
// need the caller to drop the synthetic high bit padding each short frame
// carries.
func MergeShortFrames(frames [][]byte) []byte {
	out := make([]byte, 0, len(frames))
	for _, f := range frames {
		if len(f) > 0 {
			out = append(out, f[0])
		}
	}
	return out
}

// Select runs RID to retrieve the tag's UID and header ROM bytes.
func Select(ctx context.Context, session *hfcore.Session) (*Handle, error) {
	resp, err := session.Exchange(ctx, CmdRID, [3]uint32{}, nil)
	if err != nil {
		return nil, fmt.Errorf("topaz rid: %w", err)
	}
	if len(resp.Payload) != 9 {
		return nil, hfcore.NewLinkError("topaz rid", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}
	h := &Handle{session: session}
	copy(h.HR[:], resp.Payload[0:2])
	copy(h.UID[:], resp.Payload[2:9])
	return h, nil
}

// ReadAll retrieves the tag's full 120-byte memory map with RALL.
func (h *Handle) ReadAll(ctx context.Context) ([]byte, error) {
	resp, err := h.session.Exchange(ctx, CmdRALL, [3]uint32{}, h.UID[:])
	if err != nil {
		return nil, fmt.Errorf("topaz rall: %w", err)
	}
	return resp.Payload, nil
}

// ReadByte reads a single byte at addr with READ-8.
func (h *Handle) ReadByte(ctx context.Context, addr byte) (byte, error) {
	resp, err := h.session.Exchange(ctx, CmdRead8, [3]uint32{uint32(addr)}, h.UID[:])
	if err != nil {
		return 0, fmt.Errorf("topaz read-8 addr %#x: %w", addr, err)
	}
	if len(resp.Payload) != 1 {
		return 0, hfcore.NewLinkError("topaz read-8", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}
	return resp.Payload[0], nil
}

// WriteByte writes one byte with erase (WRITE-E, the tag verifies the
// prior value is 0x00) if erase is true, or without (WRITE-NE) otherwise.
func (h *Handle) WriteByte(ctx context.Context, addr, value byte, erase bool) error {
	opcode := CmdWriteNE
	if erase {
		opcode = CmdWriteE
	}
	payload := append(append([]byte(nil), h.UID[:]...), value)
	_, err := h.session.Exchange(ctx, opcode, [3]uint32{uint32(addr)}, payload)
	if err != nil {
		return fmt.Errorf("topaz write addr %#x: %w", addr, err)
	}
	return nil
}
