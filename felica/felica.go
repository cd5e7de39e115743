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

// Package felica implements Sony FeliCa polling, service/system code
// discovery and Read/Write Without Encryption.
package felica

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// Opcodes in the FeliCa command range.
const (
	CmdPolling         hfcore.Opcode = 0x0B00
	CmdRequestSystem   hfcore.Opcode = 0x0B01
	CmdRequestService  hfcore.Opcode = 0x0B02
	CmdReadWithoutEnc  hfcore.Opcode = 0x0B03
	CmdWriteWithoutEnc hfcore.Opcode = 0x0B04
)

// Command codes (FeliCa Card User's Manual).
const (
	CmdCodePolling           byte = 0x00
	CmdCodeRequestService    byte = 0x02
	CmdCodeRequestSystemCode byte = 0x0C
	CmdCodeReadWithoutEnc    byte = 0x06
	CmdCodeWriteWithoutEnc   byte = 0x08
)

// SystemCodeWildcard polls for every system on the card.
const SystemCodeWildcard uint16 = 0xFFFF

// Handle is a polled FeliCa card.
type Handle struct {
	session    *hfcore.Session
	IDm        [8]byte
	PMm        [8]byte
	SystemCode uint16
}

// Polling runs the FeliCa Polling command against systemCode (use
// SystemCodeWildcard to match any system) and returns the responding
// card's IDm/PMm.
func Polling(ctx context.Context, session *hfcore.Session, systemCode uint16) (*Handle, error) {
	args := [3]uint32{uint32(systemCode)}
	resp, err := session.Exchange(ctx, CmdPolling, args, nil)
	if err != nil {
		return nil, fmt.Errorf("felica polling: %w", err)
	}
	if len(resp.Payload) != 16 {
		return nil, hfcore.NewLinkError("felica polling", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}
	h := &Handle{session: session, SystemCode: systemCode}
	copy(h.IDm[:], resp.Payload[0:8])
	copy(h.PMm[:], resp.Payload[8:16])
	return h, nil
}

// RequestSystemCode enumerates every system code the card supports.
func (h *Handle) RequestSystemCode(ctx context.Context) ([]uint16, error) {
	resp, err := h.session.Exchange(ctx, CmdRequestSystem, [3]uint32{}, h.IDm[:])
	if err != nil {
		return nil, fmt.Errorf("felica request system code: %w", err)
	}
	if len(resp.Payload)%2 != 0 {
		return nil, hfcore.NewLinkError("felica request system code", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}
	codes := make([]uint16, 0, len(resp.Payload)/2)
	for off := 0; off < len(resp.Payload); off += 2 {
		codes = append(codes, uint16(resp.Payload[off])<<8|uint16(resp.Payload[off+1]))
	}
	return codes, nil
}

// ReadWithoutEncryption reads blocks from a service addressed by
// serviceCode, returning the raw block payload for each in order.
func (h *Handle) ReadWithoutEncryption(ctx context.Context, serviceCode uint16, blocks []uint16) ([][]byte, error) {
	payload := make([]byte, 0, len(h.IDm)+2+2*len(blocks))
	payload = append(payload, h.IDm[:]...)
	payload = append(payload, byte(serviceCode>>8), byte(serviceCode))
	for _, b := range blocks {
		payload = append(payload, byte(b>>8), byte(b))
	}

	resp, err := h.session.Exchange(ctx, CmdReadWithoutEnc, [3]uint32{uint32(len(blocks))}, payload)
	if err != nil {
		return nil, fmt.Errorf("felica read without encryption: %w", err)
	}
	const blockSize = 16
	if len(resp.Payload) != blockSize*len(blocks) {
		return nil, hfcore.NewLinkError("felica read without encryption", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}
	out := make([][]byte, len(blocks))
	for i := range blocks {
		out[i] = resp.Payload[i*blockSize : (i+1)*blockSize]
	}
	return out, nil
}
