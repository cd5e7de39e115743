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

// Package i2c provides an I2C hfcore.Link implementation for RF front-ends
// that expose an I2C slave interface, mirroring the PN532's I2C framing
// (ready-byte poll, ACK frame, length+LCS+CRC framed payload) but carrying
// the Link's opcode/args/payload envelope instead of a single command byte.
package i2c

import (
	"bytes"
	"context"
	"fmt"
	"time"

	hfcore "github.com/rfresearch/go-hfcore"
	"github.com/rfresearch/go-hfcore/internal/frame"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	deviceWriteAddr = 0x48
	deviceReadAddr  = 0x49

	devReady = 0x01

	maxClockFreq = 400 * physic.KiloHertz
)

// Link implements hfcore.Link over I2C.
type Link struct {
	dev     *i2c.Dev
	busName string
	timeout time.Duration
}

// New opens busName and returns a Link talking to the front-end's I2C
// slave address.
func New(busName string) (*Link, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initialize periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open I2C bus %s: %w", busName, err)
	}

	dev := &i2c.Dev{Addr: deviceWriteAddr, Bus: bus}
	_ = bus.SetSpeed(maxClockFreq)

	return &Link{
		dev:     dev,
		busName: busName,
		timeout: 500 * time.Millisecond,
	}, nil
}

// Send implements hfcore.Link.
func (l *Link) Send(ctx context.Context, opcode hfcore.Opcode, args [3]uint32, payload []byte) (hfcore.Response, error) {
	select {
	case <-ctx.Done():
		return hfcore.Response{}, ctx.Err()
	default:
	}

	if err := l.sendFrame(opcode, args, payload); err != nil {
		return hfcore.Response{}, err
	}
	if err := l.waitAck(); err != nil {
		return hfcore.Response{}, err
	}

	time.Sleep(6 * time.Millisecond)

	return l.receiveFrame()
}

// Wait implements hfcore.Link by polling receiveFrame until opcode matches
// or timeout elapses.
func (l *Link) Wait(ctx context.Context, opcode hfcore.Opcode, timeout time.Duration) (hfcore.Response, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return hfcore.Response{}, ctx.Err()
		default:
		}

		resp, err := l.receiveFrame()
		if err == nil && resp.Opcode == opcode {
			return resp, nil
		}
		time.Sleep(time.Millisecond)
	}
	return hfcore.Response{}, hfcore.NewLinkError("Wait", l.busName, hfcore.ErrTimeout, hfcore.KindTransient)
}

// UploadChunked implements hfcore.Link, splitting data into frame-sized
// chunks each framed and CRC-16/A checked individually.
func (l *Link) UploadChunked(ctx context.Context, data []byte, fastPath bool) error {
	const chunkSize = 480
	for off := 0; off < len(data); off += chunkSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := off + chunkSize
		if end > len(data) {
			end = len(data)
		}
		if err := l.sendFrame(hfcore.CmdHFDownloadLog, [3]uint32{uint32(off), uint32(end - off)}, data[off:end]); err != nil {
			return fmt.Errorf("upload chunk at %d: %w", off, err)
		}
		if !fastPath {
			if err := l.waitAck(); err != nil {
				return fmt.Errorf("upload chunk ack at %d: %w", off, err)
			}
		}
	}
	return nil
}

// DownloadTrace implements hfcore.Link by issuing the trace-download
// opcode and draining frames until the device reports fewer than a full
// frame of payload.
func (l *Link) DownloadTrace(ctx context.Context, maxLen int) ([]byte, error) {
	if _, err := l.Send(ctx, hfcore.CmdHFAcquireLog, [3]uint32{uint32(maxLen)}, nil); err != nil {
		return nil, fmt.Errorf("request trace download: %w", err)
	}

	var out []byte
	for len(out) < maxLen {
		resp, err := l.Wait(ctx, hfcore.CmdHFDownloadLog, l.timeout)
		if err != nil {
			break
		}
		out = append(out, resp.Payload...)
		if len(resp.Payload) == 0 {
			break
		}
	}
	return out, nil
}

// BreakLoop implements hfcore.Link.
func (l *Link) BreakLoop(ctx context.Context) error {
	_, err := l.Send(ctx, hfcore.CmdBreakLoop, [3]uint32{}, nil)
	return err
}

// Close implements hfcore.Link. periph.io handles device cleanup itself.
func (*Link) Close() error {
	return nil
}

// HasCapability implements hfcore.LinkCapabilityChecker.
func (*Link) HasCapability(capability hfcore.LinkCapability) bool {
	return capability == hfcore.CapabilityFastUpload
}

func (l *Link) checkReady() error {
	ready := frame.GetSmallBuffer(1)
	defer frame.PutBuffer(ready)

	if err := l.dev.Tx(nil, ready); err != nil {
		return fmt.Errorf("I2C ready check failed: %w", err)
	}
	if ready[0] != devReady {
		return hfcore.NewLinkError("checkReady", l.busName, hfcore.ErrTimeout, hfcore.KindTransient)
	}
	return nil
}

// sendFrame builds and transmits a preamble+len+lcs+TFI+opcode+args+payload
// frame with a trailing CRC-16/A.
func (l *Link) sendFrame(opcode hfcore.Opcode, args [3]uint32, payload []byte) error {
	body := make([]byte, 0, 2+12+len(payload))
	body = append(body, byte(opcode), byte(opcode>>8))
	for _, a := range args {
		body = append(body, byte(a), byte(a>>8), byte(a>>16), byte(a>>24))
	}
	body = append(body, payload...)

	dataLen := len(body)
	if dataLen > 255+12 {
		return hfcore.NewLinkError("sendFrame", l.busName, hfcore.ErrInvalidParameter, KindTooLarge)
	}

	lo, hi := frame.CalculateDataChecksum(frame.HostToDevice, body)
	totalFrameSize := 3 + 2 + 1 + dataLen + 2 + 1

	frm := frame.GetBuffer(totalFrameSize)
	defer frame.PutBuffer(frm)

	frm[0] = frame.Preamble
	frm[1] = frame.StartCode1
	frm[2] = frame.StartCode2
	frm[3] = byte(dataLen + 1)
	frm[4] = frame.CalculateLengthChecksum(byte(dataLen + 1))
	frm[5] = frame.HostToDevice
	copy(frm[6:6+dataLen], body)
	frm[6+dataLen] = lo
	frm[7+dataLen] = hi
	frm[8+dataLen] = frame.Postamble

	if err := l.dev.Tx(frm[:totalFrameSize], nil); err != nil {
		return fmt.Errorf("send I2C frame: %w", err)
	}
	return nil
}

func (l *Link) waitAck() error {
	deadline := time.Now().Add(l.timeout)
	ackBuf := frame.GetSmallBuffer(6)
	defer frame.PutBuffer(ackBuf)

	for time.Now().Before(deadline) {
		if err := l.checkReady(); err != nil {
			time.Sleep(time.Millisecond)
			continue
		}
		if err := l.dev.Tx(nil, ackBuf); err != nil {
			return fmt.Errorf("I2C ACK read failed: %w", err)
		}
		if bytes.Equal(ackBuf, frame.AckFrame) {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
	return hfcore.NewLinkError("waitAck", l.busName, hfcore.ErrTimeout, hfcore.KindTransient)
}

func (l *Link) sendNack() error {
	if err := l.dev.Tx(frame.NackFrame, nil); err != nil {
		return fmt.Errorf("send NACK: %w", err)
	}
	return nil
}

func (l *Link) sendAck() error {
	if err := l.dev.Tx(frame.AckFrame, nil); err != nil {
		return fmt.Errorf("send ACK: %w", err)
	}
	return nil
}

func (l *Link) receiveFrame() (hfcore.Response, error) {
	deadline := time.Now().Add(l.timeout)
	const maxTries = 3

	for tries := 0; tries < maxTries; tries++ {
		if time.Now().After(deadline) {
			return hfcore.Response{}, hfcore.NewLinkError("receiveFrame", l.busName, hfcore.ErrTimeout, hfcore.KindTransient)
		}

		resp, shouldRetry, err := l.receiveFrameAttempt()
		if err != nil {
			return hfcore.Response{}, err
		}
		if !shouldRetry {
			return resp, nil
		}
		if err := l.sendNack(); err != nil {
			return hfcore.Response{}, err
		}
	}

	return hfcore.Response{}, hfcore.NewLinkError("receiveFrame", l.busName, hfcore.ErrCRCFailed, hfcore.KindTransient)
}

func (l *Link) receiveFrameAttempt() (resp hfcore.Response, shouldRetry bool, err error) {
	if readyErr := l.checkReady(); readyErr != nil {
		time.Sleep(time.Millisecond)
		return hfcore.Response{}, true, nil
	}

	buf, err := l.readFrameData()
	if err != nil {
		return hfcore.Response{}, false, err
	}
	defer frame.PutBuffer(buf)

	off, shouldRetry := frame.FindFrameStart(buf, len(buf), frame.StartCode2)
	if off < 0 {
		if shouldRetry {
			return hfcore.Response{}, true, nil
		}
		return hfcore.Response{}, false, hfcore.NewLinkError("receiveFrame", l.busName, hfcore.ErrCRCFailed, hfcore.KindTransient)
	}
	off += 2

	frameLen, shouldRetry, err := frame.ValidateFrameLength(buf, off-1, len(buf), "receiveFrame", l.busName)
	if err != nil || shouldRetry {
		return hfcore.Response{}, shouldRetry, err
	}

	if off+2+frameLen+1 > len(buf) {
		return hfcore.Response{}, false, hfcore.NewLinkError("receiveFrame", l.busName, hfcore.ErrCRCFailed, hfcore.KindTransient)
	}
	start, end := off+2, off+2+frameLen+1
	if frame.ValidateFrameChecksum(buf, start, end) {
		return hfcore.Response{}, true, nil
	}

	data, shouldRetry, err := frame.ExtractFrameData(buf, off, frameLen, frame.DeviceToHost)
	if err != nil {
		return hfcore.Response{}, false, err
	}
	if shouldRetry {
		return hfcore.Response{}, true, nil
	}

	if err := l.sendAck(); err != nil {
		return hfcore.Response{}, false, err
	}

	return decodeResponse(data), false, nil
}

func (l *Link) readFrameData() ([]byte, error) {
	buf := frame.GetBuffer(255 + 7 + 12)
	if err := l.dev.Tx(nil, buf); err != nil {
		frame.PutBuffer(buf)
		return nil, fmt.Errorf("I2C frame data read failed: %w", err)
	}
	return buf, nil
}

func decodeResponse(data []byte) hfcore.Response {
	var resp hfcore.Response
	if len(data) < 2 {
		return resp
	}
	resp.Opcode = hfcore.Opcode(uint16(data[0]) | uint16(data[1])<<8)
	data = data[2:]
	for i := 0; i < 3 && len(data) >= 4; i++ {
		resp.Args[i] = uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
		data = data[4:]
	}
	resp.Payload = append([]byte(nil), data...)
	return resp
}

// KindTooLarge is reported when a caller attempts to frame more data than
// a single Link frame can carry; callers should use UploadChunked instead.
const KindTooLarge = hfcore.KindInput

var _ hfcore.Link = (*Link)(nil)
var _ hfcore.LinkCapabilityChecker = (*Link)(nil)
