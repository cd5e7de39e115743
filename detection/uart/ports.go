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

package uart

import (
	"context"
	"fmt"

	"go.bug.st/serial/enumerator"
)

// getSerialPorts enumerates serial ports on every platform go.bug.st/serial
// supports, rather than re-deriving VID/PID and manufacturer strings from
// OS-specific device trees (ioreg, SetupAPI) ourselves. The RF front-end
// filtering in shouldIncludePort/isLikelyFrontEnd runs on top of this,
// unchanged across platforms.
func getSerialPorts(ctx context.Context) ([]serialPort, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}

	ports := make([]serialPort, 0, len(details))
	for _, d := range details {
		port := serialPort{
			Path: d.Name,
			Name: d.Name,
		}
		if d.IsUSB {
			port.VIDPID = fmt.Sprintf("%s:%s", normalizeHexID(d.VID), normalizeHexID(d.PID))
			port.SerialNumber = d.SerialNumber
			port.Product = d.Product
		}
		ports = append(ports, port)
	}

	return ports, nil
}

// normalizeHexID upper-cases a VID/PID string as reported by the platform's
// USB stack (go.bug.st/serial/enumerator returns them without a fixed case).
func normalizeHexID(id string) string {
	out := make([]byte, len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c >= 'a' && c <= 'f' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
