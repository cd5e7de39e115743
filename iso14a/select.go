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

package iso14a

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// Handle is a selected ISO 14443-A card, carrying the cascade-resolved UID,
// ATQA, SAK and (for Layer-4 cards) ATS.
type Handle struct {
	session *hfcore.Session
	UID     []byte
	ATQA    [2]byte
	SAK     byte
	ATS     []byte
}

// Select activates the field, runs WUPA and the anticollision/select
// sequence, and returns the resulting Handle. The device performs the
// cascade-level resolution itself; Select just parses the summarized
// UID/ATQA/SAK/ATS the device returns in its response payload.
func Select(ctx context.Context, session *hfcore.Session) (*Handle, error) {
	resp, err := session.Exchange(ctx, CmdSelect, [3]uint32{}, nil)
	if err != nil {
		return nil, fmt.Errorf("iso14a select: %w", err)
	}
	if len(resp.Payload) < 3 {
		return nil, hfcore.NewLinkError("iso14a select", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}

	atqaLen := 2
	uidLen := int(resp.Payload[atqaLen])
	if len(resp.Payload) < atqaLen+1+uidLen+1 {
		return nil, hfcore.NewLinkError("iso14a select", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}

	h := &Handle{session: session}
	copy(h.ATQA[:], resp.Payload[:atqaLen])
	h.UID = append([]byte(nil), resp.Payload[atqaLen+1:atqaLen+1+uidLen]...)
	h.SAK = resp.Payload[atqaLen+1+uidLen]
	h.ATS = append([]byte(nil), resp.Payload[atqaLen+1+uidLen+1:]...)

	return h, nil
}

// Halt sends the HALT command, moving the card to the halted state. The
// card must be reselected (WUPA, not REQA) before any further command.
func Halt(ctx context.Context, session *hfcore.Session) error {
	if _, err := session.Exchange(ctx, CmdHalt, [3]uint32{}, nil); err != nil {
		return fmt.Errorf("iso14a halt: %w", err)
	}
	return nil
}

// IsLayer4 reports whether the card answered RATS (carries an ATS), i.e.
// supports the ISO 14443-4 / T=CL APDU transport.
func (h *Handle) IsLayer4() bool {
	return len(h.ATS) > 0
}
