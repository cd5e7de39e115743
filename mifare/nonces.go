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
)

// AcquireFlags controls MifareAcquireEncryptedNonces.
type AcquireFlags uint32

const (
	FlagInitSession AcquireFlags = 1 << 0
	FlagSlowMode    AcquireFlags = 1 << 1 // 400 SSP-cycle pre-auth lead-in
	FlagFieldOff    AcquireFlags = 1 << 2
)

// NoncePair is one (known-key, target-key) encrypted nonce pair returned by
// MifareAcquireEncryptedNonces: 9 bytes per pair — 4 cipher bytes of the
// first nonce, 4 of the second, then a packed parity byte (high nibble =
// frame 1 parities, low nibble = frame 2 parities).
type NoncePair struct {
	Nonce1  [4]byte
	Nonce2  [4]byte
	Parity1 uint8 // low 4 bits valid
	Parity2 uint8 // low 4 bits valid
}

// AcquireEncryptedNonces issues MifareAcquireEncryptedNonces against a known
// key on (knownBlock, knownKeyType) targeting (targetBlock, targetKeyType),
// returning every 9-byte nonce pair in the device's reply.
func AcquireEncryptedNonces(
	ctx context.Context, session *hfcore.Session,
	knownBlock int, knownKeyType KeyType,
	targetBlock int, targetKeyType KeyType,
	flags AcquireFlags, key [6]byte,
) ([]NoncePair, error) {
	arg0 := uint32(knownKeyType)<<8 | uint32(knownBlock)
	arg1 := uint32(targetKeyType)<<8 | uint32(targetBlock)
	resp, err := session.Exchange(ctx, CmdAcquireNonces, [3]uint32{arg0, arg1, uint32(flags)}, key[:])
	if err != nil {
		return nil, fmt.Errorf("mifare acquire encrypted nonces: %w", err)
	}
	if len(resp.Payload)%9 != 0 {
		return nil, hfcore.NewLinkError("mifare acquire encrypted nonces", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}

	pairs := make([]NoncePair, 0, len(resp.Payload)/9)
	for off := 0; off < len(resp.Payload); off += 9 {
		chunk := resp.Payload[off : off+9]
		var p NoncePair
		copy(p.Nonce1[:], chunk[0:4])
		copy(p.Nonce2[:], chunk[4:8])
		p.Parity1 = chunk[8] >> 4
		p.Parity2 = chunk[8] & 0x0F
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// NestedResult is the 20-byte MifareNested reply: the card's UID and two
// disambiguated (nT, ks1) pairs for the target sector.
type NestedResult struct {
	CUID uint32
	Nt0  uint32
	Ks10 uint32
	Nt1  uint32
	Ks11 uint32
}

// Nested issues MifareNested against a known key, timing the nested
// authentication either freely (calibrate=true, used to measure the nonce
// distance window) or at the previously-calibrated delay.
func Nested(
	ctx context.Context, session *hfcore.Session,
	knownBlock int, knownKeyType KeyType,
	targetBlock int, targetKeyType KeyType,
	calibrate bool, key [6]byte,
) (*NestedResult, error) {
	arg0 := uint32(knownKeyType)<<8 | uint32(knownBlock)
	arg1 := uint32(targetKeyType)<<8 | uint32(targetBlock)
	var calArg uint32
	if calibrate {
		calArg = 1
	}
	resp, err := session.Exchange(ctx, CmdNested, [3]uint32{arg0, arg1, calArg}, key[:])
	if err != nil {
		return nil, fmt.Errorf("mifare nested: %w", err)
	}
	if len(resp.Payload) != 20 {
		return nil, hfcore.NewLinkError("mifare nested", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}

	be32 := func(b []byte) uint32 {
		return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	return &NestedResult{
		CUID: be32(resp.Payload[0:4]),
		Nt0:  be32(resp.Payload[4:8]),
		Ks10: be32(resp.Payload[8:12]),
		Nt1:  be32(resp.Payload[12:16]),
		Ks11: be32(resp.Payload[16:20]),
	}, nil
}
