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

// Package smartcard bridges the reader's contact smartcard slot to a
// PC/SC-exposed card via github.com/ebfe/scard: ATR decode, T=0 APDU
// exchange with the 6CXX wrong-Le retry convention, and the slot
// coprocessor's own firmware-upload sub-protocol.
package smartcard

import (
	"context"
	"fmt"

	"github.com/ebfe/scard"

	"github.com/rfresearch/go-hfcore/parity"
)

// Bridge is an open connection to a contact smartcard through a PC/SC
// reader.
type Bridge struct {
	ctx  *scard.Context
	card *scard.Card
}

// Open establishes a PC/SC context and connects to readerName with the
// default T=0/T=1 protocol negotiation.
func Open(readerName string) (*Bridge, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("smartcard: establish context: %w", err)
	}
	card, err := ctx.Connect(readerName, scard.ShareShared, scard.ProtocolAny)
	if err != nil {
		_ = ctx.Release()
		return nil, fmt.Errorf("smartcard: connect to %s: %w", readerName, err)
	}
	return &Bridge{ctx: ctx, card: card}, nil
}

// Close disconnects the card and releases the PC/SC context.
func (b *Bridge) Close() error {
	if err := b.card.Disconnect(scard.LeaveCard); err != nil {
		return fmt.Errorf("smartcard: disconnect: %w", err)
	}
	return b.ctx.Release()
}

// ATR returns the card's Answer To Reset as reported by the PC/SC
// resource manager at connect time.
func (b *Bridge) ATR() ([]byte, error) {
	status, err := b.card.Status()
	if err != nil {
		return nil, fmt.Errorf("smartcard: status: %w", err)
	}
	return status.Atr, nil
}

// Readers lists the PC/SC reader names available on this system.
func Readers() ([]string, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("smartcard: establish context: %w", err)
	}
	defer func() { _ = ctx.Release() }()

	readers, err := ctx.ListReaders()
	if err != nil {
		return nil, fmt.Errorf("smartcard: list readers: %w", err)
	}
	return readers, nil
}

// ATR is the parsed Answer To Reset's timing/convention parameters.
type ATR struct {
	Raw        []byte
	Fi         int
	Di         int
	Convention byte // 0x3B = direct, 0x3F = inverse
}

// fiTable maps TA1's high nibble to the clock rate conversion factor Fi
// (ISO/IEC 7816-3 Table 7).
var fiTable = [...]int{372, 372, 558, 744, 1116, 1488, 1860, 0, 0, 512, 768, 1024, 1536, 2048, 0, 0}

// diTable maps TA1's low nibble to the baud rate adjustment factor Di.
var diTable = [...]int{0, 1, 2, 4, 8, 16, 32, 64, 12, 20, 0, 0, 0, 0, 0, 0}

// ParseATR decodes an ATR's convention byte and, when a TA1 interface
// byte is present, its Fi/Di clock-rate parameters.
func ParseATR(raw []byte) (*ATR, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("smartcard: ATR too short (%d bytes)", len(raw))
	}
	atr := &ATR{Raw: append([]byte(nil), raw...), Convention: raw[0], Fi: 372, Di: 1}

	t0 := raw[1]
	hasTA1 := t0&0x10 != 0
	if hasTA1 && len(raw) >= 3 {
		ta1 := raw[2]
		atr.Fi = fiTable[ta1>>4]
		atr.Di = diTable[ta1&0x0F]
	}
	return atr, nil
}

// TransmitAPDU sends apdu to the card and retries on a 6Cxx "wrong Le"
// status by resending with the corrected length, the conventional T=0
// recovery the protocol expects from the host.
func (b *Bridge) TransmitAPDU(ctx context.Context, apdu []byte) ([]byte, error) {
	resp, err := b.card.Transmit(apdu)
	if err != nil {
		return nil, fmt.Errorf("smartcard: transmit: %w", err)
	}
	if len(resp) >= 2 && resp[len(resp)-2] == 0x6C {
		correctLe := resp[len(resp)-1]
		retry := append(append([]byte(nil), apdu[:len(apdu)-1]...), correctLe)
		resp, err = b.card.Transmit(retry)
		if err != nil {
			return nil, fmt.Errorf("smartcard: transmit retry: %w", err)
		}
	}
	return resp, nil
}

// firmwareUploadChunkSize is the per-chunk payload size the slot
// coprocessor's upload sub-protocol accepts.
const firmwareUploadChunkSize = 250

// firmwareUpload opcodes, addressed to the coprocessor rather than the
// inserted card: they never reach the card's own APDU interpreter.
const (
	cmdFirmwareActivate   = 0xFF
	cmdFirmwareChunk      = 0xFE
	cmdFirmwareDeactivate = 0xFD
)

// FirmwareUpload pushes firmware image to the smartcard slot's own
// coprocessor in fixed-size chunks, each guarded by a CRC-16/CCITT
// checksum, bracketed by an activate/deactivate pair.
func (b *Bridge) FirmwareUpload(ctx context.Context, image []byte) error {
	if err := b.sendControl(ctx, cmdFirmwareActivate, nil); err != nil {
		return fmt.Errorf("smartcard: firmware activate: %w", err)
	}

	for offset := 0; offset < len(image); offset += firmwareUploadChunkSize {
		end := offset + firmwareUploadChunkSize
		if end > len(image) {
			end = len(image)
		}
		chunk := image[offset:end]
		if err := b.sendControl(ctx, cmdFirmwareChunk, chunk); err != nil {
			_ = b.sendControl(ctx, cmdFirmwareDeactivate, nil)
			return fmt.Errorf("smartcard: firmware chunk at offset %d: %w", offset, err)
		}
	}

	if err := b.sendControl(ctx, cmdFirmwareDeactivate, nil); err != nil {
		return fmt.Errorf("smartcard: firmware deactivate: %w", err)
	}
	return nil
}

// sendControl frames a coprocessor control message as a pseudo-APDU
// (CLA=0xFF "transparent exchange" wrapping the coprocessor opcode and
// a CRC-16/CCITT trailer over the payload) and transmits it.
func (b *Bridge) sendControl(ctx context.Context, opcode byte, payload []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	frame := make([]byte, 0, 5+len(payload)+2)
	frame = append(frame, 0xFF, opcode, 0x00, 0x00, byte(len(payload)))
	frame = append(frame, payload...)
	crc := parity.CRC16CCITT(payload)
	frame = append(frame, byte(crc>>8), byte(crc))

	resp, err := b.card.Transmit(frame)
	if err != nil {
		return err
	}
	if len(resp) < 2 || resp[len(resp)-2] != 0x90 || resp[len(resp)-1] != 0x00 {
		return fmt.Errorf("coprocessor rejected control frame, response %x", resp)
	}
	return nil
}
