// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package iso14b

import (
	"context"
	"fmt"

	hfcore "github.com/rfresearch/go-hfcore"
)

// Handle is a selected ISO 14443-B card of a given dialect.
type Handle struct {
	session *hfcore.Session
	Variant Variant
	ATQB    ATQB
	CID     byte // ATTRIB-assigned card identifier, valid after Select
}

// Select runs REQB/WUPB and ATTRIB for the requested variant and returns
// the parsed handle. The device performs the wakeup and timing itself;
// Select only supplies the variant tag and parses the summarized reply.
func Select(ctx context.Context, session *hfcore.Session, variant Variant) (*Handle, error) {
	resp, err := session.Exchange(ctx, CmdSelect, [3]uint32{uint32(variant)}, nil)
	if err != nil {
		return nil, fmt.Errorf("iso14b select: %w", err)
	}
	atqb, ok := ParseATQB(resp.Payload)
	if !ok {
		return nil, hfcore.NewLinkError("iso14b select", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}

	h := &Handle{session: session, Variant: variant, ATQB: atqb}

	attribResp, err := session.Exchange(ctx, CmdAttrib, [3]uint32{uint32(variant)}, atqb.PUPI[:])
	if err != nil {
		return nil, fmt.Errorf("iso14b attrib: %w", err)
	}
	if len(attribResp.Payload) < 1 {
		return nil, hfcore.NewLinkError("iso14b attrib", "", hfcore.ErrInvalidTag, hfcore.KindProtocol)
	}
	h.CID = attribResp.Payload[0]

	return h, nil
}

// Halt sends HALT (standard variant) or the variant's equivalent idle
// command.
func Halt(ctx context.Context, session *hfcore.Session) error {
	if _, err := session.Exchange(ctx, CmdHalt, [3]uint32{}, nil); err != nil {
		return fmt.Errorf("iso14b halt: %w", err)
	}
	return nil
}
