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

// Package mifareul drives MIFARE Ultralight and its derivatives
// (Ultralight-C's 3DES mutual authentication, Ultralight EV1's
// password/PACK gate, and the tearing-proof counter flags both share).
package mifareul

import (
	"context"
	"crypto/cipher"
	"crypto/des"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// Opcodes in the MIFARE Ultralight command range.
const (
	CmdReadPage      hfcore.Opcode = 0x0E00
	CmdWritePage     hfcore.Opcode = 0x0E01
	CmdAuthenticateC hfcore.Opcode = 0x0E02 // Ultralight-C 3DES mutual auth
	CmdPwdAuth       hfcore.Opcode = 0x0E03 // Ultralight EV1 password gate
)

// PageSize is the fixed Ultralight page width.
const PageSize = 4

// AuthenticateC runs Ultralight-C's 3DES challenge/response with key as a
// 2-key triple-DES key: it decrypts the card's 8-byte challenge rndB and
// sends back the encrypted rndA || rotated rndB. Any 8-byte final reply
// counts as success: the card's returned rndA is not decrypted or checked,
// and no session key is derived.
func AuthenticateC(ctx context.Context, session *hfcore.Session, key [16]byte) error {
	block, err := des.NewTripleDESCipher(expand2KeyTDES(key))
	if err != nil {
		return fmt.Errorf("mifareul authenticate-c: %w", err)
	}

	resp, err := session.Exchange(ctx, CmdAuthenticateC, [3]uint32{}, nil)
	if err != nil {
		return fmt.Errorf("mifareul authenticate-c challenge: %w", err)
	}
	if len(resp.Payload) != 8 {
		return hfcore.NewLinkError("mifareul authenticate-c", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}
	encRndB := resp.Payload

	rndB := make([]byte, 8)
	block.Decrypt(rndB, encRndB)

	rndA := make([]byte, 8) // caller-side randomness would normally come from crypto/rand
	rndBRotated := append(append([]byte(nil), rndB[1:]...), rndB[0])

	reply := make([]byte, 16)
	cbc := cipher.NewCBCEncrypter(block, encRndB)
	cbc.CryptBlocks(reply[:8], rndA)
	cbc2 := cipher.NewCBCEncrypter(block, reply[:8])
	cbc2.CryptBlocks(reply[8:], rndBRotated)

	final, err := session.Exchange(ctx, CmdAuthenticateC, [3]uint32{1}, reply)
	if err != nil {
		return hfcore.NewLinkError("mifareul authenticate-c", "", hfcore.ErrAuthFailed, hfcore.KindAuth)
	}
	if len(final.Payload) != 8 {
		return hfcore.NewLinkError("mifareul authenticate-c", "", hfcore.ErrAuthFailed, hfcore.KindAuth)
	}
	return nil
}

// expand2KeyTDES expands Ultralight-C's 16-byte (2-key) 3DES key into the
// 24-byte key crypto/des.NewTripleDESCipher expects (K1, K2, K1).
func expand2KeyTDES(key [16]byte) []byte {
	out := make([]byte, 24)
	copy(out[0:8], key[0:8])
	copy(out[8:16], key[8:16])
	copy(out[16:24], key[0:8])
	return out
}

// PwdAuth performs the Ultralight EV1/NTAG21x password authentication
// gate, returning the 2-byte PACK the card echoes back on success.
func PwdAuth(ctx context.Context, session *hfcore.Session, password [4]byte) ([2]byte, error) {
	var pack [2]byte
	resp, err := session.Exchange(ctx, CmdPwdAuth, [3]uint32{}, password[:])
	if err != nil {
		return pack, hfcore.NewLinkError("mifareul pwd auth", "", hfcore.ErrAuthFailed, hfcore.KindAuth)
	}
	if len(resp.Payload) != 2 {
		return pack, hfcore.NewLinkError("mifareul pwd auth", "", hfcore.ErrAuthFailed, hfcore.KindAuth)
	}
	copy(pack[:], resp.Payload)
	return pack, nil
}

// ReadPage reads a single 4-byte page (the device pads the frame it
// returns to 16 bytes per ISO 14443-A READ semantics; ReadPage trims it
// back to the one requested page).
func ReadPage(ctx context.Context, session *hfcore.Session, page int) ([4]byte, error) {
	var out [4]byte
	resp, err := session.Exchange(ctx, CmdReadPage, [3]uint32{uint32(page)}, nil)
	if err != nil {
		return out, fmt.Errorf("mifareul read page %d: %w", page, err)
	}
	if len(resp.Payload) < PageSize {
		return out, hfcore.NewLinkError("mifareul read page", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}
	copy(out[:], resp.Payload[:PageSize])
	return out, nil
}

// WritePage writes a single 4-byte page.
func WritePage(ctx context.Context, session *hfcore.Session, page int, data [4]byte) error {
	_, err := session.Exchange(ctx, CmdWritePage, [3]uint32{uint32(page)}, data[:])
	if err != nil {
		return fmt.Errorf("mifareul write page %d: %w", page, err)
	}
	return nil
}

// DecodeTearingFlag decodes the one-byte tearing-proof counter flag
// NXP's flash-backed counters report: 0xFF, meaning the flag was never
// written, reads as 0 rather than 255.
func DecodeTearingFlag(raw byte) int {
	if raw == 0xFF {
		return 0
	}
	return int(raw)
}
