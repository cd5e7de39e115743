// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package iso15693

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// Handle is an inventoried ISO 15693 vicinity card, addressed by its
// 8-byte UID for every subsequent command.
type Handle struct {
	session *hfcore.Session
	UID     [8]byte
	DSFID   byte
}

// Inventory runs the anticollision inventory round and returns one handle
// per responding UID. AFI narrows the round to cards in that application
// family; pass 0 with useAFI=false to scan unconditionally.
func Inventory(ctx context.Context, session *hfcore.Session, afi byte, useAFI bool) ([]*Handle, error) {
	var flags byte = FlagInventory | FlagDataRateHigh
	if useAFI {
		flags |= FlagAFI
	}
	resp, err := session.Exchange(ctx, CmdInventory, [3]uint32{uint32(flags), uint32(afi)}, nil)
	if err != nil {
		return nil, fmt.Errorf("iso15693 inventory: %w", err)
	}
	if len(resp.Payload)%9 != 0 {
		return nil, hfcore.NewLinkError("iso15693 inventory", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}

	handles := make([]*Handle, 0, len(resp.Payload)/9)
	for off := 0; off < len(resp.Payload); off += 9 {
		h := &Handle{session: session, DSFID: resp.Payload[off]}
		copy(h.UID[:], resp.Payload[off+1:off+9])
		handles = append(handles, h)
	}
	return handles, nil
}

// ReadBlock reads one data block addressed by h's UID.
func (h *Handle) ReadBlock(ctx context.Context, block int) ([]byte, error) {
	resp, err := h.session.Exchange(ctx, CmdReadBlock, [3]uint32{uint32(block)}, h.UID[:])
	if err != nil {
		return nil, fmt.Errorf("iso15693 read block %d: %w", block, err)
	}
	return resp.Payload, nil
}

// WriteBlock writes one data block addressed by h's UID.
func (h *Handle) WriteBlock(ctx context.Context, block int, data []byte) error {
	payload := append(append([]byte(nil), h.UID[:]...), data...)
	_, err := h.session.Exchange(ctx, CmdWriteBlock, [3]uint32{uint32(block)}, payload)
	if err != nil {
		return fmt.Errorf("iso15693 write block %d: %w", block, err)
	}
	return nil
}

// SystemInfo is the parsed GET_SYSTEM_INFO reply.
type SystemInfo struct {
	Flags       SystemInfoFlags
	UID         [8]byte
	DSFID       byte
	AFI         byte
	BlockCount  int
	BlockSize   int
	ICReference byte
}

// GetSystemInfo retrieves the card's block layout and optional fields.
func (h *Handle) GetSystemInfo(ctx context.Context) (*SystemInfo, error) {
	resp, err := h.session.Exchange(ctx, CmdGetSysInfo, [3]uint32{}, h.UID[:])
	if err != nil {
		return nil, fmt.Errorf("iso15693 get system info: %w", err)
	}
	if len(resp.Payload) < 9 {
		return nil, hfcore.NewLinkError("iso15693 get system info", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}

	info := &SystemInfo{Flags: SystemInfoFlags(resp.Payload[0])}
	copy(info.UID[:], resp.Payload[1:9])
	off := 9
	if info.Flags&SysInfoHasDSFID != 0 {
		info.DSFID = resp.Payload[off]
		off++
	}
	if info.Flags&SysInfoHasAFI != 0 {
		info.AFI = resp.Payload[off]
		off++
	}
	if info.Flags&SysInfoHasMemorySize != 0 && off+2 <= len(resp.Payload) {
		info.BlockCount = int(resp.Payload[off]) + 1
		info.BlockSize = int(resp.Payload[off+1]&0x1F) + 1
		off += 2
	}
	if info.Flags&SysInfoHasICReference != 0 && off < len(resp.Payload) {
		info.ICReference = resp.Payload[off]
	}
	return info, nil
}
