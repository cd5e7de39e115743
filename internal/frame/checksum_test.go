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

package frame

import "testing"

func TestCalculateLengthChecksum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		length byte
		want   byte
	}{
		{name: "length 2", length: 0x02, want: 0xFE},
		{name: "length 1", length: 0x01, want: 0xFF},
		{name: "length 255", length: 0xFF, want: 0x01},
		{name: "length 0", length: 0x00, want: 0x00},
		{name: "length 16", length: 0x10, want: 0xF0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CalculateLengthChecksum(tt.length); got != tt.want {
				t.Errorf("CalculateLengthChecksum() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestLengthChecksumProperty verifies the mathematical property that
// length + LCS should always equal 0 (mod 256).
func TestLengthChecksumProperty(t *testing.T) {
	t.Parallel()
	for i := 0; i < 256; i++ {
		length := byte(i)
		lcs := CalculateLengthChecksum(length)
		sum := length + lcs
		if sum != 0 {
			t.Errorf("property violation: length=%d + LCS=%d = %d, expected 0", length, lcs, sum)
		}
	}
}

func TestDataChecksumRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		tfi  byte
		data []byte
	}{
		{name: "empty data", tfi: HostToDevice, data: []byte{}},
		{name: "single byte", tfi: HostToDevice, data: []byte{0x02}},
		{name: "command with args", tfi: HostToDevice, data: []byte{0x02, 0x01, 0x03}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lo, hi := CalculateDataChecksum(tt.tfi, tt.data)
			if !ValidateDataChecksum(tt.tfi, tt.data, lo, hi) {
				t.Fatalf("ValidateDataChecksum() rejected its own CalculateDataChecksum output")
			}
			if ValidateDataChecksum(tt.tfi, tt.data, lo^0xFF, hi) {
				t.Fatalf("ValidateDataChecksum() accepted a corrupted checksum")
			}
		})
	}
}
