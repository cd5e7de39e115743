// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package hfcore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hftesting "github.com/rfresearch/go-hfcore/internal/testing"
)

func TestNewRejectsNilLink(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.Error(t, err)
	assert.Equal(t, KindInput, Kind(err))
}

func TestNewAppliesOptions(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	session, err := New(link, WithTimeout(2*time.Second), WithAPDUFrameLength(64))
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, session.Timeout())
	assert.Equal(t, 64, session.APDUFrameLength())
}

func TestWithAPDUFrameLengthIgnoresNonPositive(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	session, err := New(link, WithAPDUFrameLength(0))
	require.NoError(t, err)
	assert.Equal(t, defaultAPDUFrameLen, session.APDUFrameLength())
}

func TestExchangeRoundTrips(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdVersion, Response{Payload: []byte{1, 2, 3}}, nil)

	session, err := New(link)
	require.NoError(t, err)

	resp, err := session.Exchange(context.Background(), CmdVersion, [3]uint32{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, resp.Payload)
}

func TestFieldOffClearsCurrentHandle(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdHFFieldOff, Response{}, nil)

	session, err := New(link)
	require.NoError(t, err)
	session.setCurrent(&CardHandle{})
	require.NotNil(t, session.Current())

	require.NoError(t, session.FieldOff(context.Background()))
	assert.Nil(t, session.Current())
}

func TestCloseDropsFieldWhenActive(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	link.Queue(CmdHFFieldOff, Response{}, nil)

	session, err := New(link)
	require.NoError(t, err)
	session.setCurrent(&CardHandle{})

	require.NoError(t, session.Close())
	assert.True(t, link.Closed())
}

func TestCloseSkipsFieldOffWhenDisabled(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	session, err := New(link, WithFieldOnAutoOff(false))
	require.NoError(t, err)
	session.setCurrent(&CardHandle{})

	require.NoError(t, session.Close())
	assert.Empty(t, link.Sent(), "field-off should not be sent when disabled")
	assert.True(t, link.Closed())
}

func TestWithConfigIgnoresNil(t *testing.T) {
	t.Parallel()

	link := hftesting.NewVirtualLink()
	session, err := New(link, WithConfig(nil))
	require.NoError(t, err)
	assert.NotNil(t, session.Config(), "default config should survive a nil override")
}
