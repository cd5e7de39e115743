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

// Package legic implements LEGIC Prime (MIM22/MIM256/MIM1024) tag
// identification and segment-structured memory decode. Every byte beyond
// the header is obfuscated with a keystream derived from the tag's UID
// before transmission; the obfuscation and the segment table format are
// both card-specific, unlike the ISO 14443/15693 families.
package legic

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// Opcodes in the LEGIC Prime command range.
const (
	CmdSelect hfcore.Opcode = 0x0800
	CmdRead   hfcore.Opcode = 0x0801
	CmdWrite  hfcore.Opcode = 0x0802
)

// Tag types, identified by the MIM byte count the card reports.
type TagType int

const (
	TagMIM22   TagType = 22
	TagMIM256  TagType = 256
	TagMIM1024 TagType = 1024
)

// Deobfuscate XORs obfuscated with the tag's keystream, derived from the
// stamp byte at offset 0 (the UID's LEGIC equivalent). LEGIC Prime masks
// every byte after the UID with a stream generated from a 6-bit LFSR
// seeded by that byte, walked one step per plaintext byte produced.
func Deobfuscate(stamp byte, obfuscated []byte) []byte {
	out := make([]byte, len(obfuscated))
	state := stamp
	for i, b := range obfuscated {
		ks := legicKeystreamByte(&state)
		out[i] = b ^ ks
	}
	return out
}

// legicKeystreamByte advances a 6-bit maximal-length LFSR (taps at bits
// 0 and 1, polynomial x^6+x+1) one byte's worth of bits and returns the
// byte formed from the low 6 bits replicated across a full byte's stream,
// mirroring LEGIC Prime's table-driven "crypto" obfuscation.
func legicKeystreamByte(state *byte) byte {
	var out byte
	s := *state & 0x3F
	for i := 0; i < 8; i++ {
		bit := s & 1
		fb := ((s >> 0) ^ (s >> 1)) & 1
		s = (s >> 1) | (fb << 5)
		out = (out << 1) | bit
	}
	*state = s
	return out
}

// Segment is one LEGIC Prime memory segment: a stamp-addressed region of
// user memory with its own read/write protection flags.
type Segment struct {
	Stamp          byte
	Length         int
	WriteProtected bool
	Data           []byte
}

// Handle is a selected LEGIC Prime tag.
type Handle struct {
	session *hfcore.Session
	Stamp   byte
	Type    TagType
}

// Select identifies a LEGIC Prime tag in the field.
func Select(ctx context.Context, session *hfcore.Session) (*Handle, error) {
	resp, err := session.Exchange(ctx, CmdSelect, [3]uint32{}, nil)
	if err != nil {
		return nil, fmt.Errorf("legic select: %w", err)
	}
	if len(resp.Payload) < 3 {
		return nil, hfcore.NewLinkError("legic select", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}
	size := int(resp.Payload[1])<<8 | int(resp.Payload[2])
	return &Handle{session: session, Stamp: resp.Payload[0], Type: TagType(size)}, nil
}

// ReadMemory reads length bytes starting at addr and deobfuscates them.
func (h *Handle) ReadMemory(ctx context.Context, addr, length int) ([]byte, error) {
	resp, err := h.session.Exchange(ctx, CmdRead, [3]uint32{uint32(addr), uint32(length)}, nil)
	if err != nil {
		return nil, fmt.Errorf("legic read: %w", err)
	}
	return Deobfuscate(h.Stamp, resp.Payload), nil
}

// DecodeSegments walks MIM256/MIM1024 user memory (offset 0x08 onward)
// parsing the 4-byte segment headers until a final-segment flag or the
// end of the supplied buffer.
func DecodeSegments(userMemory []byte) []Segment {
	var segments []Segment
	off := 0
	for off+4 <= len(userMemory) {
		hdr := userMemory[off : off+4]
		length := int(hdr[1]&0x0F)<<8 | int(hdr[0])
		wrp := hdr[2]&0x80 != 0
		last := hdr[1]&0x80 != 0

		dataStart := off + 4
		dataEnd := dataStart + length
		if dataEnd > len(userMemory) {
			dataEnd = len(userMemory)
		}
		segments = append(segments, Segment{
			Stamp:          hdr[3],
			Length:         length,
			WriteProtected: wrp,
			Data:           append([]byte(nil), userMemory[dataStart:dataEnd]...),
		})

		off = dataEnd
		if last {
			break
		}
	}
	return segments
}
