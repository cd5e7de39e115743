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

package mifare

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
	"github.com/rfresearch/go-hfcore/iso14a"
)

// Handle is a selected MIFARE Classic card layered over an ISO 14443-A
// selection. It tracks which sector (if any) is currently authenticated,
// since every subsequent read/write is only valid against that sector.
type Handle struct {
	session *hfcore.Session
	a14     *iso14a.Handle

	authSector  int
	authKeyType KeyType
	authed      bool
}

// Select performs the ISO 14443-A select and wraps the result as a MIFARE
// Classic handle. Callers must still Authenticate before Read/Write.
func Select(ctx context.Context, session *hfcore.Session) (*Handle, error) {
	h14, err := iso14a.Select(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("mifare select: %w", err)
	}
	return &Handle{session: session, a14: h14}, nil
}

// UID returns the card's ISO 14443-A UID.
func (h *Handle) UID() []byte { return h.a14.UID }

// SAK returns the card's select acknowledge byte.
func (h *Handle) SAK() byte { return h.a14.SAK }

// Authenticate runs AUTH against sector's key (A or B). The device performs
// the actual CRYPTO-1 mutual authentication; the host only supplies the
// 6-byte key and target block/key-type and observes success or failure.
func (h *Handle) Authenticate(ctx context.Context, sector int, keyType KeyType, key [6]byte) error {
	block := SectorFirstBlock(sector)
	args := [3]uint32{uint32(block), uint32(keyType), 0}
	_, err := h.session.Exchange(ctx, CmdAuth, args, key[:])
	if err != nil {
		h.authed = false
		return hfcore.NewLinkError("mifare authenticate", "", hfcore.ErrAuthFailed, hfcore.KindAuth)
	}
	h.authed = true
	h.authSector = sector
	h.authKeyType = keyType
	return nil
}

// ReadBlock reads a 16-byte block. block must belong to the currently
// authenticated sector.
func (h *Handle) ReadBlock(ctx context.Context, block int) ([]byte, error) {
	if err := h.requireAuthFor(block); err != nil {
		return nil, err
	}
	resp, err := h.session.Exchange(ctx, CmdReadBlock, [3]uint32{uint32(block)}, nil)
	if err != nil {
		return nil, fmt.Errorf("mifare read block %d: %w", block, err)
	}
	if len(resp.Payload) != BlockSize {
		return nil, hfcore.NewLinkError("mifare read block", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}
	return resp.Payload, nil
}

// WriteBlock writes a 16-byte block. block must belong to the currently
// authenticated sector.
func (h *Handle) WriteBlock(ctx context.Context, block int, data [16]byte) error {
	if err := h.requireAuthFor(block); err != nil {
		return err
	}
	_, err := h.session.Exchange(ctx, CmdWriteBlock, [3]uint32{uint32(block)}, data[:])
	if err != nil {
		return fmt.Errorf("mifare write block %d: %w", block, err)
	}
	return nil
}

// Halt sends HALT and drops the authenticated-sector tracking: a fresh
// select+auth is required afterward.
func (h *Handle) Halt(ctx context.Context) error {
	if err := iso14a.Halt(ctx, h.session); err != nil {
		return fmt.Errorf("mifare halt: %w", err)
	}
	h.authed = false
	return nil
}

func (h *Handle) requireAuthFor(block int) error {
	if !h.authed {
		return hfcore.NewLinkError("mifare block access", "", hfcore.ErrWrongState, hfcore.KindProtocol)
	}
	sector := sectorOf(block)
	if sector != h.authSector {
		return hfcore.NewLinkError("mifare block access", "", hfcore.ErrWrongState, hfcore.KindProtocol)
	}
	return nil
}

func sectorOf(block int) int {
	if block < SmallSectorCount*SmallSectorSize {
		return block / SmallSectorSize
	}
	return SmallSectorCount + (block-SmallSectorCount*SmallSectorSize)/LargeSectorSize
}
