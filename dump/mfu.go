// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package dump

import "fmt"

// MFULayout identifies which of the three historical MIFARE Ultralight
// dump layouts a raw .bin blob uses.
type MFULayout int

const (
	MFULayoutUnknown MFULayout = iota
	MFULayoutNew               // current: version/signature/counter prefix before page 0
	MFULayoutOld               // older prefix, no version block
	MFULayoutPlain             // flat page dump, no prefix at all
)

const ultralightPageSize = 4

// DetectMFULayout classifies a raw MFU dump by testing the BCC0 (block
// check character) invariant on the page at offset 12 (new layout), then
// at offset 4 (old layout); a dump passing neither is taken as plain.
func DetectMFULayout(data []byte) MFULayout {
	if len(data) >= 16 && validBCC0(data[12:16]) {
		return MFULayoutNew
	}
	if len(data) >= 8 && validBCC0(data[4:8]) {
		return MFULayoutOld
	}
	return MFULayoutPlain
}

// validBCC0 checks the UID/BCC0 page invariant: BCC0 = 0x88 (cascade tag)
// ^ uid[0] ^ uid[1] ^ uid[2].
func validBCC0(page4 []byte) bool {
	if len(page4) != 4 {
		return false
	}
	bcc := 0x88 ^ page4[0] ^ page4[1] ^ page4[2]
	return bcc == page4[3]
}

// NormalizeMFU converts an old-layout or plain-layout MFU dump into the
// current layout: re-laying fields for old→new, or zero-padding the
// version/signature/counter prefix and computing the page count for
// plain→new.
func NormalizeMFU(data []byte, layout MFULayout) ([]byte, error) {
	switch layout {
	case MFULayoutNew:
		return data, nil
	case MFULayoutOld:
		// Old layout already carries a UID/BCC/internal/lock prefix
		// matching the new layout's first 16 bytes; only the trailing
		// version/signature/counter block differs in the new format,
		// so re-laying means appending the missing metadata block.
		out := make([]byte, 0, len(data)+48)
		out = append(out, data[:16]...)
		out = append(out, make([]byte, 48)...) // version/signature/counters, unknown
		out = append(out, data[16:]...)
		return out, nil
	case MFULayoutPlain:
		pageCount := len(data) / ultralightPageSize
		out := make([]byte, 0, 64+len(data))
		out = append(out, make([]byte, 64)...)
		out = append(out, data...)
		out[63] = byte(pageCount)
		return out, nil
	default:
		return nil, fmt.Errorf("dump: unknown MFU layout %d", layout)
	}
}
