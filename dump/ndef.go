// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package dump

import (
	"fmt"

	"github.com/hsanjuan/go-ndef"
)

// ndefTLVTag and ndefTerminatorTLV are the Type-Length-Value tags
// MIFARE Ultralight/NTAG and ISO 15693 NDEF-application tags wrap an NDEF
// message in, per NFC Forum Type 2/Type 5 Tag Operation.
const (
	ndefTLVTag        = 0x03
	ndefTerminatorTLV = 0xFE
)

// DecodeNDEFText decodes an embedded NDEF message (as found in
// Ultralight/NTAG user memory or an ISO 15693 tag's NDEF application
// block) and returns the payload of its first text record.
func DecodeNDEFText(raw []byte) (string, error) {
	msg, err := ndef.Unmarshal(raw)
	if err != nil {
		return "", fmt.Errorf("dump: unmarshal NDEF message: %w", err)
	}
	if len(msg.Records) == 0 {
		return "", fmt.Errorf("dump: NDEF message has no records")
	}
	return string(msg.Records[0].Payload), nil
}

// EncodeNDEFText builds a single-record Text NDEF message suitable for
// writing back to an Ultralight/NTAG's user memory.
func EncodeNDEFText(text, lang string) ([]byte, error) {
	msg := ndef.NewTextMessage(text, lang)
	out, err := msg.Marshal()
	if err != nil {
		return nil, fmt.Errorf("dump: marshal NDEF text message: %w", err)
	}
	return out, nil
}

// userMemory concatenates f's blocks from startBlock onward in index order,
// the way a Type 2/Type 5 tag's linear user memory reads once pages are
// selected out of the dump's per-block addressing.
func (f *File) userMemory(startBlock int) []byte {
	var mem []byte
	for _, idx := range f.SortedBlockIndices() {
		if idx < startBlock {
			continue
		}
		mem = append(mem, f.Blocks[idx]...)
	}
	return mem
}

// NDEFText locates the NDEF Message TLV in f's user memory (starting at
// startBlock, 4 for MIFARE Ultralight/NTAG) and decodes its first text
// record. It is the dump-file counterpart of a `hf mfu ndefread`/
// `hf 15 ndefread` pass over pages already captured in a dump.
func (f *File) NDEFText(startBlock int) (string, error) {
	mem := f.userMemory(startBlock)
	for i := 0; i < len(mem); {
		tag := mem[i]
		if tag == 0x00 {
			i++
			continue
		}
		if tag == ndefTerminatorTLV {
			break
		}
		if i+1 >= len(mem) {
			break
		}
		length := int(mem[i+1])
		start := i + 2
		if start+length > len(mem) {
			break
		}
		if tag == ndefTLVTag {
			return DecodeNDEFText(mem[start : start+length])
		}
		i = start + length
	}
	return "", fmt.Errorf("dump: no NDEF message TLV found from block %d", startBlock)
}

// SetNDEFText encodes text as a single-record NDEF text message, wraps it in
// an NDEF Message TLV terminated per NFC Forum Type 2 Tag Operation, and
// writes it into f.Blocks as pageSize-wide pages starting at startBlock,
// replacing whatever was there.
func (f *File) SetNDEFText(startBlock, pageSize int, text, lang string) error {
	payload, err := EncodeNDEFText(text, lang)
	if err != nil {
		return err
	}
	if len(payload) > 0xFE {
		return fmt.Errorf("dump: NDEF message of %d bytes exceeds 1-byte TLV length", len(payload))
	}

	tlv := make([]byte, 0, len(payload)+3)
	tlv = append(tlv, ndefTLVTag, byte(len(payload)))
	tlv = append(tlv, payload...)
	tlv = append(tlv, ndefTerminatorTLV)

	if f.Blocks == nil {
		f.Blocks = make(map[int][]byte)
	}
	for off, page := 0, startBlock; off < len(tlv); off, page = off+pageSize, page+1 {
		end := off + pageSize
		data := make([]byte, pageSize)
		if end > len(tlv) {
			copy(data, tlv[off:])
		} else {
			copy(data, tlv[off:end])
		}
		f.Blocks[page] = data
	}
	return nil
}
