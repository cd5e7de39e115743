// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package iso15693

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hfcore "github.com/rfresearch/go-hfcore"
	hftesting "github.com/rfresearch/go-hfcore/internal/testing"
)

func TestInventoryParsesMultipleUIDs(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	uid1 := [8]byte{1, 2, 3, 4, 5, 6, 7, 8}
	uid2 := [8]byte{8, 7, 6, 5, 4, 3, 2, 1}
	payload := append([]byte{0xAA}, uid1[:]...)
	payload = append(payload, 0xBB)
	payload = append(payload, uid2[:]...)
	link.Queue(CmdInventory, hfcore.Response{Payload: payload}, nil)

	session, err := hfcore.New(link)
	require.NoError(t, err)

	handles, err := Inventory(context.Background(), session, 0, false)
	require.NoError(t, err)
	require.Len(t, handles, 2)

	assert.Equal(t, byte(0xAA), handles[0].DSFID)
	assert.Equal(t, uid1, handles[0].UID)
	assert.Equal(t, byte(0xBB), handles[1].DSFID)
	assert.Equal(t, uid2, handles[1].UID)
}

func TestVerifySLIX2SignatureRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	var uid [8]byte
	var sig [32]byte // all zero: r=s=0, must be rejected
	pub := point{x: secp128r1Gx, y: secp128r1Gy}
	assert.False(t, VerifySLIX2Signature(uid, sig, pub), "zero signature must not verify")
}
