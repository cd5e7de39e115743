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

// Package thinfilm decodes Thinfilm NFC Barcode tags: a single,
// read-only, memoryless broadcast frame with no select/authentication
// phase at all. Every frame is a self-contained NDEF-carrying barcode; a
// length prefix is all that separates it from raw payload.
package thinfilm

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// CmdPoll is the single opcode in the Thinfilm range: there is no
// select/deselect cycle, only a one-shot broadcast read.
const CmdPoll hfcore.Opcode = 0x0C00

// Tag is a decoded Thinfilm NFC Barcode broadcast.
type Tag struct {
	UID  []byte
	NDEF []byte
}

// Poll reads the next Thinfilm broadcast in the field, splitting the
// device's [lengthPrefix][uid][ndefPayload] frame into its parts.
func Poll(ctx context.Context, session *hfcore.Session) (*Tag, error) {
	resp, err := session.Exchange(ctx, CmdPoll, [3]uint32{}, nil)
	if err != nil {
		return nil, fmt.Errorf("thinfilm poll: %w", err)
	}
	if len(resp.Payload) < 1 {
		return nil, hfcore.NewLinkError("thinfilm poll", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}

	uidLen := int(resp.Payload[0])
	if len(resp.Payload) < 1+uidLen {
		return nil, hfcore.NewLinkError("thinfilm poll", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}

	return &Tag{
		UID:  append([]byte(nil), resp.Payload[1:1+uidLen]...),
		NDEF: append([]byte(nil), resp.Payload[1+uidLen:]...),
	}, nil
}
