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

const (
	defaultTimeout      = 500 * time.Millisecond
	defaultAPDUFrameLen = 250
)

// Session owns the Link, the current CardHandle typestate, the trace buffer
// handle, the negotiated APDU frame length and the debug level — the
// "explicit Session value" that the original C implementation scatters as
// module-scope globals (g_debugMode, the active tag struct, BigBuf state).
//
// Session is not safe for concurrent use: only one RF field and one card
// handle exist at a time, matching the single-threaded cooperative model
// the front-end firmware itself assumes.
type Session struct {
	link Link

	timeout      time.Duration
	retryConfig  *RetryConfig
	apduFrameLen int
	debugLevel   DebugLevel
	config       *Config

	fieldOffOnClose bool
	fieldActive     bool

	current *CardHandle
}

// New wraps link in a Session configured by opts.
func New(link Link, opts ...Option) (*Session, error) {
	if link == nil {
		return nil, NewLinkError("New", "", ErrInvalidParameter, KindInput)
	}

	s := &Session{
		link:            link,
		timeout:         defaultTimeout,
		retryConfig:     DefaultRetryConfig(),
		apduFrameLen:    defaultAPDUFrameLen,
		debugLevel:      DebugOff,
		config:          DefaultConfig(),
		fieldOffOnClose: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.link = NewLinkWithRetry(link, s.retryConfig)
	return s, nil
}

// Link returns the retry-wrapped Link underlying this session, for
// per-family packages that need to issue raw opcodes the Session does not
// itself model.
func (s *Session) Link() Link {
	return s.link
}

// Config returns the session's configuration.
func (s *Session) Config() *Config {
	return s.config
}

// Current returns the CardHandle last installed on the session, or nil if
// none is installed or the field was dropped since. The per-family Select
// functions do not install a handle.
func (s *Session) Current() *CardHandle {
	return s.current
}

// Timeout returns the session's default per-operation timeout.
func (s *Session) Timeout() time.Duration {
	return s.timeout
}

// APDUFrameLength returns the negotiated T=CL I-block payload size.
func (s *Session) APDUFrameLength() int {
	return s.apduFrameLen
}

// FieldOff drops the RF field. Safe to call when the field is already off.
func (s *Session) FieldOff(ctx context.Context) error {
	s.debugf(DebugBasic, "field off")
	if _, err := s.link.Send(ctx, CmdHFFieldOff, [3]uint32{}, nil); err != nil {
		return fmt.Errorf("field off: %w", err)
	}
	s.fieldActive = false
	s.current = nil
	return nil
}

// setCurrent installs handle as the active CardHandle, replacing whatever
// was selected before.
func (s *Session) setCurrent(handle *CardHandle) {
	s.current = handle
	s.fieldActive = true
}

// Exchange sends opcode with args/payload and waits for its matching
// response within the session's default timeout. Per-family packages use
// this as their primitive for everything that isn't chunked upload or
// trace download.
func (s *Session) Exchange(ctx context.Context, opcode Opcode, args [3]uint32, payload []byte) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.debugf(DebugFull, "-> opcode=%04x args=%v payload=% x", opcode, args, payload)
	resp, err := s.link.Send(ctx, opcode, args, payload)
	if err != nil {
		return Response{}, fmt.Errorf("exchange opcode %04x: %w", opcode, err)
	}
	s.debugf(DebugFull, "<- opcode=%04x status=%d payload=% x", resp.Opcode, resp.Status, resp.Payload)
	return resp, nil
}

// DownloadTrace streams the device's trace buffer back to the host for the
// trace annotation engine (package trace).
func (s *Session) DownloadTrace(ctx context.Context, maxLen int) ([]byte, error) {
	data, err := s.link.DownloadTrace(ctx, maxLen)
	if err != nil {
		return nil, fmt.Errorf("download trace: %w", err)
	}
	return data, nil
}

// BreakLoop asks the device to abort a long-running attack/dump loop.
func (s *Session) BreakLoop(ctx context.Context) error {
	return s.link.BreakLoop(ctx)
}

// Close drops the field (unless disabled via WithFieldOnAutoOff) and closes
// the underlying Link.
func (s *Session) Close() error {
	if s.fieldOffOnClose && s.fieldActive {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_ = s.FieldOff(ctx)
	}
	if err := s.link.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}
