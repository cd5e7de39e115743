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

// Package magic drives MIFARE Classic "gen-1" magic UID cards, which
// respond to out-of-spec opcodes that bypass authentication entirely.
package magic

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// Opcodes in the magic-card command range.
const (
	CmdWupC1  hfcore.Opcode = 0x0480
	CmdWupC2  hfcore.Opcode = 0x0481
	CmdWipeC  hfcore.Opcode = 0x0482
	CmdWriteC hfcore.Opcode = 0x0483
	CmdHaltC  hfcore.Opcode = 0x0484
)

// gen1Ack is the single expected acknowledge byte after wupC1/wupC2.
const gen1Ack = 0x0A

// SequenceFlags controls which steps Unlock performs, mirroring the
// original's flag-controlled init/wupc/halt/wipe sequencing.
type SequenceFlags struct {
	Init bool // send wupC1 first (field already on, card idle)
	WupC bool // send wupC2 to complete the unlock
	Halt bool // halt the card after the operation
	Wipe bool // zeroize instead of write
}

// Unlock runs the gen-1 escape sequence selected by flags and returns once
// the card has acknowledged entry into the unlocked write state.
func Unlock(ctx context.Context, session *hfcore.Session, flags SequenceFlags) error {
	if flags.Init {
		resp, err := session.Exchange(ctx, CmdWupC1, [3]uint32{}, nil)
		if err != nil {
			return fmt.Errorf("magic wupC1: %w", err)
		}
		if err := expectAck(resp); err != nil {
			return err
		}
	}
	if flags.WupC {
		resp, err := session.Exchange(ctx, CmdWupC2, [3]uint32{}, nil)
		if err != nil {
			return fmt.Errorf("magic wupC2: %w", err)
		}
		if err := expectAck(resp); err != nil {
			return err
		}
	}
	if flags.Wipe {
		if _, err := session.Exchange(ctx, CmdWipeC, [3]uint32{}, nil); err != nil {
			return fmt.Errorf("magic wipeC: %w", err)
		}
	}
	if flags.Halt {
		return Halt(ctx, session)
	}
	return nil
}

// WriteBlock writes a 16-byte block with no authentication and no prior
// CRYPTO-1 state, valid only while the card remains in the unlocked state
// Unlock put it in.
func WriteBlock(ctx context.Context, session *hfcore.Session, block int, data [16]byte) error {
	_, err := session.Exchange(ctx, CmdWriteC, [3]uint32{uint32(block)}, data[:])
	if err != nil {
		return fmt.Errorf("magic write block %d: %w", block, err)
	}
	return nil
}

// Halt sends the sequence's halt step.
func Halt(ctx context.Context, session *hfcore.Session) error {
	if _, err := session.Exchange(ctx, CmdHaltC, [3]uint32{}, nil); err != nil {
		return fmt.Errorf("magic halt: %w", err)
	}
	return nil
}

func expectAck(resp hfcore.Response) error {
	if len(resp.Payload) != 1 || resp.Payload[0] != gen1Ack {
		return hfcore.NewLinkError("magic unlock", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}
	return nil
}
