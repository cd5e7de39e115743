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

// Package dump models the on-disk dump file formats (binary, hex-text
// .eml/.mct, typed JSON) a reader session saves a card's memory to, and
// converts between them.
package dump

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// FileType tags which card family a dump's JSON schema describes.
type FileType string

const (
	FileTypeMifareClassic    FileType = "mfc"
	FileTypeMifareUltralight FileType = "mfu"
	FileTypeISO15693         FileType = "iso15693"
	FileTypeICLASS           FileType = "iclass"
	FileTypeRaw              FileType = "raw"
)

// CardMeta carries the optional device/card identification block a JSON
// dump's "Card" object holds. DeviceName and CapabilityBitmap round-trip
// the fields fileutils.c writes but this package never interprets.
type CardMeta struct {
	UID              string `json:"UID,omitempty"`
	ATQA             string `json:"ATQA,omitempty"`
	SAK              string `json:"SAK,omitempty"`
	DeviceName       string `json:"DeviceName,omitempty"`
	CapabilityBitmap string `json:"CapabilityBitmap,omitempty"`
}

// AccessConditions is one sector's parsed trailer access-condition block.
type AccessConditions struct {
	KeyA string            `json:"KeyA,omitempty"`
	KeyB string            `json:"KeyB,omitempty"`
	Raw  string            `json:"AccessConditions,omitempty"`
	Text map[string]string `json:"AccessConditionsText,omitempty"`
}

// File is the in-memory representation of a dump, independent of which
// on-disk format it was read from or will be written to.
type File struct {
	FileType   FileType
	Card       CardMeta
	Blocks     map[int][]byte
	SectorKeys map[int]AccessConditions
}

// jsonEnvelope mirrors the on-disk JSON schema's field order and naming.
type jsonEnvelope struct {
	Created    string                      `json:"Created"`
	FileType   FileType                    `json:"FileType"`
	Card       CardMeta                    `json:"Card"`
	Blocks     map[string]string           `json:"blocks"`
	SectorKeys map[string]AccessConditions `json:"SectorKeys,omitempty"`
}

// MarshalJSON encodes f using the on-disk "Created":"proxmark3"-style
// envelope, with blocks addressed by decimal-string index and bytes
// hex-encoded, matching pm3_save_dump's JSON writer.
func (f *File) MarshalJSON() ([]byte, error) {
	env := jsonEnvelope{
		Created:    "go-hfcore",
		FileType:   f.FileType,
		Card:       f.Card,
		Blocks:     make(map[string]string, len(f.Blocks)),
		SectorKeys: make(map[string]AccessConditions, len(f.SectorKeys)),
	}
	for idx, data := range f.Blocks {
		env.Blocks[strconv.Itoa(idx)] = hexEncode(data)
	}
	for sector, ac := range f.SectorKeys {
		env.SectorKeys[strconv.Itoa(sector)] = ac
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalJSON decodes the on-disk JSON envelope into f.
func (f *File) UnmarshalJSON(data []byte) error {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("dump: unmarshal json envelope: %w", err)
	}
	f.FileType = env.FileType
	f.Card = env.Card
	f.Blocks = make(map[int][]byte, len(env.Blocks))
	for idxStr, hexStr := range env.Blocks {
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return fmt.Errorf("dump: block index %q: %w", idxStr, err)
		}
		raw, err := hexDecode(hexStr)
		if err != nil {
			return fmt.Errorf("dump: block %d data: %w", idx, err)
		}
		f.Blocks[idx] = raw
	}
	f.SectorKeys = make(map[int]AccessConditions, len(env.SectorKeys))
	for sectorStr, ac := range env.SectorKeys {
		sector, err := strconv.Atoi(sectorStr)
		if err != nil {
			return fmt.Errorf("dump: sector index %q: %w", sectorStr, err)
		}
		f.SectorKeys[sector] = ac
	}
	return nil
}

// SortedBlockIndices returns every block index in f, ascending.
func (f *File) SortedBlockIndices() []int {
	indices := make([]int, 0, len(f.Blocks))
	for idx := range f.Blocks {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}
