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

import "time"

// Option configures a Session at construction time.
type Option func(*Session)

// WithTimeout sets the default per-operation timeout used when a caller
// does not supply its own context deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.timeout = timeout
	}
}

// WithRetryConfig overrides the retry policy applied to Link calls.
func WithRetryConfig(config *RetryConfig) Option {
	return func(s *Session) {
		s.retryConfig = config
	}
}

// WithAPDUFrameLength sets the maximum T=CL I-block payload size negotiated
// for APDU chaining (spec §6's T=CL transport). Proxmark3-class front-ends
// default to 250 bytes.
func WithAPDUFrameLength(length int) Option {
	return func(s *Session) {
		if length > 0 {
			s.apduFrameLen = length
		}
	}
}

// WithDebugLevel sets the debug verbosity used by the session's internal
// debugf/debugln logging.
func WithDebugLevel(level DebugLevel) Option {
	return func(s *Session) {
		s.debugLevel = level
	}
}

// WithConfig attaches a loaded Config to the session, supplying default
// dictionary paths, hardnested table directory and per-family timeouts.
func WithConfig(cfg *Config) Option {
	return func(s *Session) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithFieldOnAutoOff controls whether Close() drops the RF field before
// releasing the Link. Defaults to true.
func WithFieldOnAutoOff(enabled bool) Option {
	return func(s *Session) {
		s.fieldOffOnClose = enabled
	}
}
