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

// Command hfcore-demo exercises the library end to end: it locates an RF
// front-end over a registered transport, selects a MIFARE Classic card,
// reads sector 0 with the well-known default key, saves the result as a
// dump file, and prints an iCLASS key-lookup template if the device's
// trace buffer holds a sniffed iCLASS authentication.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	hfcore "github.com/rfresearch/go-hfcore"
	"github.com/rfresearch/go-hfcore/detection"
	_ "github.com/rfresearch/go-hfcore/detection/i2c"
	_ "github.com/rfresearch/go-hfcore/detection/uart"
	"github.com/rfresearch/go-hfcore/dump"
	"github.com/rfresearch/go-hfcore/mifare"
	"github.com/rfresearch/go-hfcore/trace"
	"github.com/rfresearch/go-hfcore/transport/i2c"
	"github.com/rfresearch/go-hfcore/transport/uart"
)

// defaultKey is the well-known MIFARE Classic factory key most dictionary
// attacks try first.
var defaultKey = [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

type config struct {
	device  string
	timeout time.Duration
	dumpOut string
	debug   bool
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.device, "device", "", "front-end device path (uart port or i2c bus); empty auto-detects")
	flag.DurationVar(&cfg.timeout, "timeout", 10*time.Second, "overall operation timeout")
	flag.StringVar(&cfg.dumpOut, "dump", "", "path to save a JSON dump of the card (optional)")
	flag.BoolVar(&cfg.debug, "debug", false, "enable full Session debug logging")
	flag.Parse()
	return cfg
}

func openLink(cfg config) (hfcore.Link, error) {
	if cfg.device != "" {
		return openLinkForPath(cfg.device)
	}

	devices, err := detection.Scan(context.Background(), detection.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("detect front-end: %w", err)
	}

	var best *detection.DeviceInfo
	for i := range devices {
		if best == nil || devices[i].Confidence > best.Confidence {
			best = &devices[i]
		}
	}

	fmt.Printf("using detected %s device at %s (confidence %d)\n", best.Transport, best.Path, best.Confidence)
	return openLinkForDevice(*best)
}

func openLinkForPath(path string) (hfcore.Link, error) {
	if strings.Contains(strings.ToLower(path), "i2c") {
		return i2c.New(path)
	}
	return uart.New(path)
}

func openLinkForDevice(device detection.DeviceInfo) (hfcore.Link, error) {
	switch device.Transport {
	case "i2c":
		return i2c.New(device.Path)
	case "uart":
		return uart.New(device.Path)
	default:
		return nil, fmt.Errorf("unsupported transport %q", device.Transport)
	}
}

func readSector0(ctx context.Context, session *hfcore.Session) (*mifare.Handle, [][]byte, error) {
	h, err := mifare.Select(ctx, session)
	if err != nil {
		return nil, nil, fmt.Errorf("select card: %w", err)
	}

	if err := h.Authenticate(ctx, 0, mifare.KeyA, defaultKey); err != nil {
		return h, nil, fmt.Errorf("authenticate sector 0: %w", err)
	}

	blocks := make([][]byte, 0, 4)
	for block := 0; block < 4; block++ {
		data, err := h.ReadBlock(ctx, block)
		if err != nil {
			return h, blocks, fmt.Errorf("read block %d: %w", block, err)
		}
		blocks = append(blocks, data)
	}
	return h, blocks, nil
}

func saveDump(path string, uid []byte, blocks [][]byte) error {
	f := &dump.File{
		FileType: dump.FileTypeMifareClassic,
		Card:     dump.CardMeta{UID: fmt.Sprintf("%X", uid)},
		Blocks:   make(map[int][]byte, len(blocks)),
	}
	for i, data := range blocks {
		f.Blocks[i] = data
	}
	data, err := f.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write dump %s: %w", path, err)
	}
	return nil
}

func reportICLASSLookup(ctx context.Context, session *hfcore.Session) {
	raw, err := session.DownloadTrace(ctx, 1<<16)
	if err != nil || len(raw) == 0 {
		return
	}
	records, err := trace.ParseRecords(raw)
	if err != nil {
		return
	}
	if tmpl, ok := trace.ExtractICLASSLookupTemplate(records); ok {
		fmt.Printf("iCLASS authentication found in trace, dictionary lookup: %s\n", tmpl.Command)
	}
}

func run(cfg config) error {
	link, err := openLink(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = link.Close() }()

	opts := []hfcore.Option{hfcore.WithTimeout(cfg.timeout)}
	if cfg.debug {
		opts = append(opts, hfcore.WithDebugLevel(hfcore.DebugFull))
	}
	session, err := hfcore.New(link, opts...)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer func() { _ = session.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()

	h, blocks, err := readSector0(ctx, session)
	if err != nil {
		return err
	}
	fmt.Printf("UID: %X, SAK: %02X, blocks read: %d\n", h.UID(), h.SAK(), len(blocks))

	if cfg.dumpOut != "" {
		if err := saveDump(cfg.dumpOut, h.UID(), blocks); err != nil {
			return err
		}
		fmt.Printf("dump saved to %s\n", cfg.dumpOut)
	}

	reportICLASSLookup(ctx, session)
	return nil
}

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		if errors.Is(err, detection.ErrNoDevicesFound) {
			fmt.Fprintln(os.Stderr, "no RF front-end detected; pass -device explicitly")
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
