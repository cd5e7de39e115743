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

package hfcore

import (
	"context"
	"fmt"
	"time"
)

// Opcode identifies a command exchanged with the device. The host sends
// CMD_HF_* opcodes; the device replies with the same opcode carrying a
// status and payload.
type Opcode uint16

// Family-agnostic opcodes used directly by Session. Per-family packages
// define their own opcode ranges (see each package's commands.go).
const (
	CmdPing          Opcode = 0x0109
	CmdVersion       Opcode = 0x0107
	CmdBreakLoop     Opcode = 0x0118
	CmdHFFieldOff    Opcode = 0x0200
	CmdHFAcquireLog  Opcode = 0x0201
	CmdHFDownloadLog Opcode = 0x0202
)

// Response is a single reply frame received over a Link.
type Response struct {
	Args    [3]uint32
	Payload []byte
	Opcode  Opcode
	Status  uint32
}

// Link is the bidirectional packet channel to the RF front-end device.
// It is exposed to the core exactly as spec'd: request/response correlated
// by opcode, chunked bulk transfers, and a streamed trace-buffer download.
// Concrete implementations (transport/uart, transport/i2c) and the physical
// front-end itself are external collaborators; the core only ever talks
// through this interface.
type Link interface {
	// Send transmits a command and returns the device's reply to it:
	// transport/uart and transport/i2c wait for the device's ACK and then
	// read one response frame. Session.Exchange relies on this.
	Send(ctx context.Context, opcode Opcode, args [3]uint32, payload []byte) (Response, error)

	// Wait blocks until a response to opcode arrives or timeout elapses.
	Wait(ctx context.Context, opcode Opcode, timeout time.Duration) (Response, error)

	// UploadChunked uploads data in fixed-size chunks, each guarded by a
	// CRC-16/A, for writes that exceed a single packet's payload. When
	// fastPath is set, the device is expected to suppress per-chunk ACKs
	// (the block_after_ACK fast path).
	UploadChunked(ctx context.Context, data []byte, fastPath bool) error

	// DownloadTrace streams up to maxLen bytes from the device's trace
	// buffer (BIG_BUF) back to the host.
	DownloadTrace(ctx context.Context, maxLen int) ([]byte, error)

	// BreakLoop asks the device to abort a long-running loop (dictionary
	// check, AFI brute force, hardnested capture) in response to Ctrl-C.
	BreakLoop(ctx context.Context) error

	// Close releases the underlying transport.
	Close() error
}

// LinkCapability names an optional behavior a Link implementation may
// support beyond the baseline interface.
type LinkCapability string

const (
	// CapabilityFastUpload indicates the Link can suppress per-chunk ACKs.
	CapabilityFastUpload LinkCapability = "fast_upload"
	// CapabilityFieldControl indicates the Link can toggle the RF field
	// independently of a select/halt sequence.
	CapabilityFieldControl LinkCapability = "field_control"
)

// LinkCapabilityChecker is implemented by Links that support optional
// capabilities beyond the baseline interface.
type LinkCapabilityChecker interface {
	HasCapability(capability LinkCapability) bool
}

// LinkWithRetry wraps a Link with the package's retry policy.
type LinkWithRetry struct {
	link   Link
	config *RetryConfig
}

// NewLinkWithRetry wraps link with retry logic governed by config (or
// DefaultRetryConfig if config is nil).
func NewLinkWithRetry(link Link, config *RetryConfig) *LinkWithRetry {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &LinkWithRetry{link: link, config: config}
}

// Send implements Link, retrying transient failures per config.
func (l *LinkWithRetry) Send(ctx context.Context, opcode Opcode, args [3]uint32, payload []byte) (Response, error) {
	var resp Response
	err := RetryWithConfig(ctx, l.config, func() error {
		var err error
		resp, err = l.link.Send(ctx, opcode, args, payload)
		if err != nil {
			return NewLinkError("Send", "", err, classifyLinkErr(err))
		}
		return nil
	})
	return resp, err
}

// Wait implements Link, retrying transient failures per config.
func (l *LinkWithRetry) Wait(ctx context.Context, opcode Opcode, timeout time.Duration) (Response, error) {
	var resp Response
	err := RetryWithConfig(ctx, l.config, func() error {
		var err error
		resp, err = l.link.Wait(ctx, opcode, timeout)
		if err != nil {
			return NewLinkError("Wait", "", err, classifyLinkErr(err))
		}
		return nil
	})
	return resp, err
}

// UploadChunked implements Link without retrying — a partially-uploaded
// buffer must not be silently resent.
func (l *LinkWithRetry) UploadChunked(ctx context.Context, data []byte, fastPath bool) error {
	if err := l.link.UploadChunked(ctx, data, fastPath); err != nil {
		return fmt.Errorf("upload chunked: %w", err)
	}
	return nil
}

// DownloadTrace implements Link.
func (l *LinkWithRetry) DownloadTrace(ctx context.Context, maxLen int) ([]byte, error) {
	data, err := l.link.DownloadTrace(ctx, maxLen)
	if err != nil {
		return nil, fmt.Errorf("download trace: %w", err)
	}
	return data, nil
}

// BreakLoop implements Link.
func (l *LinkWithRetry) BreakLoop(ctx context.Context) error {
	return l.link.BreakLoop(ctx)
}

// Close implements Link.
func (l *LinkWithRetry) Close() error {
	if err := l.link.Close(); err != nil {
		return fmt.Errorf("failed to close underlying link: %w", err)
	}
	return nil
}

// HasCapability forwards capability checks to the underlying Link.
func (l *LinkWithRetry) HasCapability(capability LinkCapability) bool {
	if checker, ok := l.link.(LinkCapabilityChecker); ok {
		return checker.HasCapability(capability)
	}
	return false
}

// SetRetryConfig updates the retry configuration used for Send/Wait.
func (l *LinkWithRetry) SetRetryConfig(config *RetryConfig) {
	l.config = config
}

func classifyLinkErr(err error) ErrorKind {
	if err == nil {
		return KindTransient
	}
	return Kind(err)
}
