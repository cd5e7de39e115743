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

// Package uart provides a serial-port hfcore.Link implementation for RF
// front-ends that expose a USB-CDC or TTL UART interface. It shares the
// preamble/length/CRC-16-A frame shape of transport/i2c but reads/writes a
// byte stream instead of polling an I2C ready register.
package uart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	hfcore "github.com/rfresearch/go-hfcore"
	"github.com/rfresearch/go-hfcore/internal/frame"
	"go.bug.st/serial"
)

const defaultBaud = 115200

// Link implements hfcore.Link over a serial port.
type Link struct {
	port     serial.Port
	portName string
	timeout  time.Duration
}

// New opens portName at the default baud rate for the RF front-end.
func New(portName string) (*Link, error) {
	return NewWithMode(portName, &serial.Mode{BaudRate: defaultBaud})
}

// NewWithMode opens portName with an explicit serial.Mode.
func NewWithMode(portName string, mode *serial.Mode) (*Link, error) {
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(100 * time.Millisecond); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", portName, err)
	}

	return &Link{
		port:     port,
		portName: portName,
		timeout:  500 * time.Millisecond,
	}, nil
}

// Send implements hfcore.Link.
func (l *Link) Send(ctx context.Context, opcode hfcore.Opcode, args [3]uint32, payload []byte) (hfcore.Response, error) {
	select {
	case <-ctx.Done():
		return hfcore.Response{}, ctx.Err()
	default:
	}

	if err := l.writeFrame(opcode, args, payload); err != nil {
		return hfcore.Response{}, err
	}
	if err := l.waitAck(); err != nil {
		return hfcore.Response{}, err
	}

	return l.readFrame()
}

// Wait implements hfcore.Link by reading frames until opcode matches or
// timeout elapses.
func (l *Link) Wait(ctx context.Context, opcode hfcore.Opcode, timeout time.Duration) (hfcore.Response, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return hfcore.Response{}, ctx.Err()
		default:
		}

		resp, err := l.readFrame()
		if err == nil && resp.Opcode == opcode {
			return resp, nil
		}
	}
	return hfcore.Response{}, hfcore.NewLinkError("Wait", l.portName, hfcore.ErrTimeout, hfcore.KindTransient)
}

// UploadChunked implements hfcore.Link.
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
		if err := l.writeFrame(hfcore.CmdHFDownloadLog, [3]uint32{uint32(off), uint32(end - off)}, data[off:end]); err != nil {
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

// DownloadTrace implements hfcore.Link.
func (l *Link) DownloadTrace(ctx context.Context, maxLen int) ([]byte, error) {
	if _, err := l.Send(ctx, hfcore.CmdHFAcquireLog, [3]uint32{uint32(maxLen)}, nil); err != nil {
		return nil, fmt.Errorf("request trace download: %w", err)
	}

	var out []byte
	for len(out) < maxLen {
		resp, err := l.Wait(ctx, hfcore.CmdHFDownloadLog, l.timeout)
		if err != nil || len(resp.Payload) == 0 {
			break
		}
		out = append(out, resp.Payload...)
	}
	return out, nil
}

// BreakLoop implements hfcore.Link.
func (l *Link) BreakLoop(ctx context.Context) error {
	_, err := l.Send(ctx, hfcore.CmdBreakLoop, [3]uint32{}, nil)
	return err
}

// Close implements hfcore.Link.
func (l *Link) Close() error {
	if l.port == nil {
		return nil
	}
	if err := l.port.Close(); err != nil {
		return fmt.Errorf("close serial port %s: %w", l.portName, err)
	}
	return nil
}

// HasCapability implements hfcore.LinkCapabilityChecker.
func (*Link) HasCapability(capability hfcore.LinkCapability) bool {
	return capability == hfcore.CapabilityFastUpload
}

func (l *Link) writeFrame(opcode hfcore.Opcode, args [3]uint32, payload []byte) error {
	body := make([]byte, 0, 2+12+len(payload))
	body = append(body, byte(opcode), byte(opcode>>8))
	for _, a := range args {
		body = append(body, byte(a), byte(a>>8), byte(a>>16), byte(a>>24))
	}
	body = append(body, payload...)

	dataLen := len(body)
	if dataLen > 255+12 {
		return hfcore.NewLinkError("writeFrame", l.portName, hfcore.ErrInvalidParameter, hfcore.KindInput)
	}

	lo, hi := frame.CalculateDataChecksum(frame.HostToDevice, body)

	out := make([]byte, 0, dataLen+9)
	out = append(out, frame.Preamble, frame.StartCode1, frame.StartCode2)
	out = append(out, byte(dataLen+1), frame.CalculateLengthChecksum(byte(dataLen+1)))
	out = append(out, frame.HostToDevice)
	out = append(out, body...)
	out = append(out, lo, hi, frame.Postamble)

	if _, err := l.port.Write(out); err != nil {
		return fmt.Errorf("write serial frame: %w", err)
	}
	return nil
}

func (l *Link) waitAck() error {
	buf := make([]byte, 0, 6)
	deadline := time.Now().Add(l.timeout)
	tmp := make([]byte, 6)

	for time.Now().Before(deadline) {
		n, err := l.port.Read(tmp)
		if err != nil && err != io.EOF {
			return fmt.Errorf("read ACK: %w", err)
		}
		buf = append(buf, tmp[:n]...)
		if idx := bytes.Index(buf, frame.AckFrame); idx >= 0 {
			return nil
		}
		if len(buf) > 64 {
			buf = buf[len(buf)-6:]
		}
	}
	return hfcore.NewLinkError("waitAck", l.portName, hfcore.ErrTimeout, hfcore.KindTransient)
}

func (l *Link) readFrame() (hfcore.Response, error) {
	buf := make([]byte, 0, 512)
	tmp := make([]byte, 256)
	deadline := time.Now().Add(l.timeout)

	for time.Now().Before(deadline) {
		n, err := l.port.Read(tmp)
		if err != nil && err != io.EOF {
			return hfcore.Response{}, fmt.Errorf("read frame: %w", err)
		}
		buf = append(buf, tmp[:n]...)

		off, needMore := frame.FindFrameStart(buf, len(buf), frame.StartCode2)
		if off < 0 {
			if !needMore {
				continue
			}
			continue
		}
		off += 2

		frameLen, shouldRetry, err := frame.ValidateFrameLength(buf, off-1, len(buf), "readFrame", l.portName)
		if err != nil {
			return hfcore.Response{}, err
		}
		if shouldRetry {
			return hfcore.Response{}, hfcore.NewLinkError("readFrame", l.portName, hfcore.ErrCRCFailed, hfcore.KindTransient)
		}
		if off+2+frameLen+1 > len(buf) {
			continue
		}

		start, end := off+2, off+2+frameLen+1
		if frame.ValidateFrameChecksum(buf, start, end) {
			return hfcore.Response{}, hfcore.NewLinkError("readFrame", l.portName, hfcore.ErrCRCFailed, hfcore.KindTransient)
		}

		data, shouldRetry, err := frame.ExtractFrameData(buf, off, frameLen, frame.DeviceToHost)
		if err != nil {
			return hfcore.Response{}, err
		}
		if shouldRetry {
			return hfcore.Response{}, hfcore.NewLinkError("readFrame", l.portName, hfcore.ErrProtocolMismatch, hfcore.KindProtocol)
		}

		return decodeResponse(data), nil
	}

	return hfcore.Response{}, hfcore.NewLinkError("readFrame", l.portName, hfcore.ErrTimeout, hfcore.KindTransient)
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

var _ hfcore.Link = (*Link)(nil)
var _ hfcore.LinkCapabilityChecker = (*Link)(nil)
