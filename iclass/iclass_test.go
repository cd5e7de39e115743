// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package iclass

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	hfcore "github.com/rfresearch/go-hfcore"
	hftesting "github.com/rfresearch/go-hfcore/internal/testing"
)

func TestApplicationBlockRequiresCheck(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdSelect, hfcore.Response{Payload: make([]byte, 8)}, nil)
	session, err := hfcore.New(link)
	require.NoError(t, err)

	h, err := Select(context.Background(), session)
	require.NoError(t, err)

	_, err = h.ReadBlock(context.Background(), 6)
	require.Error(t, err, "application block should not be readable before Check")

	link.Queue(CmdReadBlock, hfcore.Response{Payload: make([]byte, BlockSize)}, nil)
	_, err = h.ReadBlock(context.Background(), BlockCSN)
	require.NoError(t, err, "CSN block should be readable pre-auth")
}
