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

/*
Package hfcore is the protocol-and-cryptanalysis core of a multi-protocol
13.56 MHz contactless-card tooling stack. It drives an external RF front-end
("device") through the Link interface to select, read, write, emulate and
sniff cards conforming to ISO/IEC 14443-A/B, ISO/IEC 15693, ISO/IEC 18092
(FeliCa), ISO/IEC 7816-4 (T=CL), and a handful of proprietary memory-card
protocols (MIFARE Classic/Ultralight/DESFire/Plus, LEGIC Prime, iCLASS,
Topaz, LTO-CM, Thinfilm).

This package owns the session/typestate, error taxonomy and retry machinery
shared by every per-family protocol package. The physical transport (UART,
I2C, SPI to the RF front-end) and the interactive CLI are deliberately kept
out of this package; see the transport/ and cmd/ directories for reference
implementations of each.

Basic usage:

	link, err := uart.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}
	defer link.Close()

	session, err := hfcore.New(link, hfcore.WithTimeout(2*time.Second))
	if err != nil {
	    log.Fatal(err)
	}
	defer session.Close()

	card, err := iso14a.Select(context.Background(), session)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Printf("UID: %X, ATQA: %04X, SAK: %02X\n", card.UID, card.ATQA, card.SAK)

Thread safety: Session is not thread-safe, matching the single-threaded
cooperative scheduling model described for the core (one RF field, one
card handle, no intra-operation parallelism). Protect a Session with your
own synchronization if you need concurrent access from multiple goroutines.
*/
package hfcore
