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

// Package trace walks a packed device trace buffer, merges Topaz-style
// fragmented reader frames, checks per-protocol CRC and parity, and
// produces an annotated row per logical frame.
package trace

import (
	"fmt"

	"github.com/rfresearch/go-hfcore/parity"
	"github.com/rfresearch/go-hfcore/topaz"
)

// Protocol selects which CRC/parity rules and annotator a trace applies.
type Protocol int

const (
	ProtocolISO14A Protocol = iota
	ProtocolISO14B
	ProtocolISO15693
	ProtocolICLASS
	ProtocolTopaz
	ProtocolLegic
	ProtocolFeliCa
	ProtocolRaw
)

// RecordHeader is one packed trace record's fixed header. IsResponse is
// kept as a separate bool rather than stealing a bit of DataLen: Go has
// no packed-bitfield struct literal, and stealing a bit would silently
// cap DataLen at 0x7FFF for no benefit.
type RecordHeader struct {
	Timestamp              uint32
	DurationCarrierPeriods uint32
	DataLen                uint16
	IsResponse             bool
}

// recordHeaderSize is the fixed header size preceding each record's
// data+parity bytes in the packed trace buffer.
const recordHeaderSize = 4 + 4 + 2 + 1

// Record is one parsed trace record plus its raw data and parity bytes.
type Record struct {
	Header      RecordHeader
	Data        []byte
	ParityBytes []byte
}

// ParseRecords walks a packed trace buffer into individual records.
// Parity bytes follow the data bytes, one per 8 data bytes (ceil).
func ParseRecords(buf []byte) ([]Record, error) {
	var records []Record
	off := 0
	for off+recordHeaderSize <= len(buf) {
		h := RecordHeader{
			Timestamp:              be32(buf[off : off+4]),
			DurationCarrierPeriods: be32(buf[off+4 : off+8]),
			DataLen:                uint16(buf[off+8])<<8 | uint16(buf[off+9]),
			IsResponse:             buf[off+10] != 0,
		}
		off += recordHeaderSize

		dataLen := int(h.DataLen)
		if off+dataLen > len(buf) {
			return records, fmt.Errorf("trace: truncated record at offset %d", off)
		}
		data := buf[off : off+dataLen]
		off += dataLen

		parityLen := (dataLen + 7) / 8
		if off+parityLen > len(buf) {
			return records, fmt.Errorf("trace: truncated parity at offset %d", off)
		}
		parityBytes := buf[off : off+parityLen]
		off += parityLen

		records = append(records, Record{Header: h, Data: data, ParityBytes: parityBytes})
	}
	return records, nil
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// MergeTopazReaderFrames greedily folds consecutive single-byte Topaz
// reader records (≤16 bytes total) into one logical frame, accumulating
// duration, matching the device trace's per-bit-time framing for a
// protocol with no multi-byte reader commands below RALL.
func MergeTopazReaderFrames(records []Record) []Record {
	var out []Record
	i := 0
	for i < len(records) {
		r := records[i]
		if r.Header.IsResponse || len(r.Data) != 1 {
			out = append(out, r)
			i++
			continue
		}
		merged := r
		mergedData := append([]byte(nil), r.Data...)
		j := i + 1
		for j < len(records) && !records[j].Header.IsResponse && len(records[j].Data) == 1 && len(mergedData) < 16 {
			mergedData = append(mergedData, records[j].Data...)
			merged.Header.DurationCarrierPeriods += records[j].Header.DurationCarrierPeriods
			j++
		}
		merged.Data = topaz.MergeShortFrames(byteSlicesOf(mergedData))
		out = append(out, merged)
		i = j
	}
	return out
}

func byteSlicesOf(data []byte) [][]byte {
	frames := make([][]byte, len(data))
	for i, b := range data {
		frames[i] = []byte{b}
	}
	return frames
}

// CRCStatus is the pass/fail/N-A classification of a record's trailing
// CRC, per §8 of the annotation algorithm.
type CRCStatus int

const (
	CRCNotApplicable CRCStatus = iota
	CRCPass
	CRCFail
)

// CheckCRC classifies a record's CRC for the given protocol.
func CheckCRC(proto Protocol, data []byte) CRCStatus {
	switch proto {
	case ProtocolISO14A:
		if len(data) < 3 {
			return CRCNotApplicable
		}
		if parity.CheckCRC16A(data) {
			return CRCPass
		}
		return CRCFail
	case ProtocolISO14B:
		if len(data) < 3 {
			return CRCNotApplicable
		}
		if parity.CheckCRC16B(data) {
			return CRCPass
		}
		return CRCFail
	default:
		return CRCNotApplicable
	}
}

// CheckParity marks which data bytes in a record mismatch their
// transmitted parity bit, returning a same-length bool slice (true =
// mismatch, annotated with a trailing '!' in the hex column).
func CheckParity(data []byte, parityBits []byte) []bool {
	mismatches := make([]bool, len(data))
	for i, b := range data {
		byteIdx := i / 8
		bitIdx := uint(i % 8)
		if byteIdx >= len(parityBits) {
			mismatches[i] = true
			continue
		}
		want := (parityBits[byteIdx] >> bitIdx) & 1
		mismatches[i] = parity.OddByteParity[b] != want
	}
	return mismatches
}

// ResidualBits reports the annotated residual bit count for a short
// ISO 14443-A frame (duration below the nominal 1088-carrier-period byte
// time), or 0 if the frame is a full byte frame.
func ResidualBits(proto Protocol, durationCarrierPeriods uint32) int {
	if proto != ProtocolISO14A || durationCarrierPeriods >= 1088 {
		return 0
	}
	bits := int((uint64(durationCarrierPeriods) * 8) / 1088)
	if bits < 1 {
		bits = 1
	}
	if bits > 7 {
		bits = 7
	}
	return bits
}

// DurationUnit converts a raw carrier-period duration into the display
// unit convention: carrier periods by default, x32 for iCLASS/15693
// (which clock at 1/32 the 14443 rate), or microseconds (/13.56) when
// requested.
func DurationUnit(proto Protocol, carrierPeriods uint32, microseconds bool) float64 {
	v := float64(carrierPeriods)
	switch proto {
	case ProtocolICLASS, ProtocolISO15693:
		v *= 32
	}
	if microseconds {
		v /= 13.56
	}
	return v
}
