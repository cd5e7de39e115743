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

import (
	hfcore "github.com/rfresearch/go-hfcore"
)

// ValidateFrameLength validates the frame length field and its length
// checksum. Returns the validated frame length and whether a retry is
// needed (NACK should be sent). Shared by transport/uart and transport/i2c.
func ValidateFrameLength(
	buf []byte, off, totalLen int, operation, link string,
) (frameLen int, shouldRetry bool, err error) {
	off++

	if off+1 >= totalLen {
		return 0, false, hfcore.NewLinkError(operation, link, hfcore.ErrCRCFailed, hfcore.KindTransient)
	}

	frameLen = int(buf[off])
	lengthChecksum := buf[off+1]

	if ((frameLen + int(lengthChecksum)) & 0xFF) != 0 {
		return 0, true, nil
	}

	return frameLen, false, nil
}

// ValidateFrameChecksum validates the frame's CRC-16/A trailer over
// buf[start:end-2] against the two bytes at buf[end-2:end]. Returns true
// if the checksum is invalid (requiring NACK), false if valid.
func ValidateFrameChecksum(buf []byte, start, end int) bool {
	if end > len(buf) || end-start < 2 {
		return true
	}
	payload := buf[start : end-2]
	lo, hi := buf[end-2], buf[end-1]
	return !ValidateDataChecksum(DeviceToHost, payload, lo, hi)
}

// FindFrameStart locates the start of a frame in buf. Returns the offset
// where the frame starts, or -1 if not found; shouldRetry indicates more
// data should be read.
func FindFrameStart(buf []byte, totalLen int, startMarker byte) (offset int, shouldRetry bool) {
	for i := 0; i < totalLen-1; i++ {
		if buf[i] == Preamble && buf[i+1] == startMarker {
			return i, false
		}
	}

	if totalLen > 0 && buf[totalLen-1] == Preamble {
		return -1, true
	}

	return -1, false
}

// ExtractFrameData extracts and validates the TFI-tagged payload of a
// frame, requiring the frame's direction byte to equal wantTFI.
func ExtractFrameData(buf []byte, off, frameLen int, wantTFI byte) (data []byte, shouldRetry bool, err error) {
	if off+frameLen+2 > len(buf) {
		return nil, false, hfcore.NewLinkError("extractFrameData", "", hfcore.ErrCRCFailed, hfcore.KindTransient)
	}

	body := buf[off : off+frameLen]
	if len(body) == 0 || body[0] != wantTFI {
		return nil, true, nil
	}

	return append([]byte(nil), body[1:]...), false, nil
}
