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

// Package lto drives LTO-CM (LTO Cartridge Memory), an ISO 14443-A Type-2
// derivative used on LTO tape cartridges: WUPA, SELECT, and plain block
// read/write with no authentication layer.
package lto

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
	"github.com/rfresearch/go-hfcore/iso14a"
)

// Opcodes in the LTO-CM command range.
const (
	CmdReadBlock  hfcore.Opcode = 0x0900
	CmdWriteBlock hfcore.Opcode = 0x0901
)

// BlockSize is the fixed LTO-CM page size.
const BlockSize = 16

// MemorySize is the total addressable LTO-CM memory (1024 bytes over
// 64 16-byte blocks).
const MemorySize = 1024

// Handle is a selected LTO-CM cartridge memory chip.
type Handle struct {
	session *hfcore.Session
	a14     *iso14a.Handle
}

// Select runs the shared ISO 14443-A WUPA/anticollision/select sequence.
func Select(ctx context.Context, session *hfcore.Session) (*Handle, error) {
	h14, err := iso14a.Select(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("lto select: %w", err)
	}
	return &Handle{session: session, a14: h14}, nil
}

// UID returns the chip's ISO 14443-A UID.
func (h *Handle) UID() []byte { return h.a14.UID }

// ReadBlock reads one 16-byte block; no authentication is required.
func (h *Handle) ReadBlock(ctx context.Context, block int) ([]byte, error) {
	resp, err := h.session.Exchange(ctx, CmdReadBlock, [3]uint32{uint32(block)}, nil)
	if err != nil {
		return nil, fmt.Errorf("lto read block %d: %w", block, err)
	}
	if len(resp.Payload) != BlockSize {
		return nil, hfcore.NewLinkError("lto read block", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}
	return resp.Payload, nil
}

// WriteBlock writes one 16-byte block.
func (h *Handle) WriteBlock(ctx context.Context, block int, data [16]byte) error {
	_, err := h.session.Exchange(ctx, CmdWriteBlock, [3]uint32{uint32(block)}, data[:])
	if err != nil {
		return fmt.Errorf("lto write block %d: %w", block, err)
	}
	return nil
}

// Halt sends the shared ISO 14443-A halt command.
func (h *Handle) Halt(ctx context.Context) error {
	return iso14a.Halt(ctx, h.session)
}
