// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package iso14b

import "github.com/rfresearch/go-hfcore/parity"

// Frame appends a CRC-16/B trailer, the trailer ISO 14443-B uses for every
// frame beyond the bare REQB/WUPB wakeup byte.
func Frame(payload []byte) []byte {
	return parity.AppendCRC16B(payload)
}

// VerifyCRC checks a received frame's trailing CRC-16/B and returns the
// payload with the trailer stripped.
func VerifyCRC(frame []byte) ([]byte, bool) {
	if !parity.CheckCRC16B(frame) {
		return nil, false
	}
	return frame[:len(frame)-2], true
}

// ATQB is the parsed Answer To ReQuest B.
type ATQB struct {
	PUPI            [4]byte
	ApplicationData [4]byte
	ProtocolInfo    [3]byte
}

// ParseATQB decodes an 11-byte ATQB payload (excluding the 0x50 response
// byte and CRC, which the device strips before returning it).
func ParseATQB(payload []byte) (ATQB, bool) {
	if len(payload) != 11 {
		return ATQB{}, false
	}
	var a ATQB
	copy(a.PUPI[:], payload[0:4])
	copy(a.ApplicationData[:], payload[4:8])
	copy(a.ProtocolInfo[:], payload[8:11])
	return a, true
}

// MaxFrameSize decodes the ATQB protocol info's max-frame-size nibble into
// a byte count, per the ISO 14443-3 Table for FSCI values 0-8.
func MaxFrameSize(protocolInfo [3]byte) int {
	fsci := (protocolInfo[0] >> 4) & 0x0F
	sizes := [...]int{16, 24, 32, 40, 48, 64, 96, 128, 256}
	if int(fsci) >= len(sizes) {
		return 256
	}
	return sizes[fsci]
}
