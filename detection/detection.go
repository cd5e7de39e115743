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

// Package detection discovers candidate RF front-end devices attached to
// the host over any registered transport (transport/uart, transport/i2c).
// Per spec §1 the physical transport is kept out of the core; this package
// is a reference device-path enumerator, not something Session depends on.
package detection

import (
	"context"
	"errors"
	"sync"
)

// Mode controls how aggressively Detect probes candidate devices.
type Mode int

const (
	// Passive only inspects static metadata (VID:PID, bus address),
	// never opening the device.
	Passive Mode = iota
	// Safe opens likely devices and sends a single non-destructive probe
	// command (e.g. CmdVersion).
	Safe
	// Full probes every candidate device, including unlikely ones.
	Full
)

// Confidence reflects how sure a Detector is that a candidate is really an
// RF front-end.
type Confidence int

const (
	// None indicates the candidate should not be reported.
	None Confidence = iota
	Low
	Medium
	High
)

// Options configures a detection pass.
type Options struct {
	Mode        Mode
	Blocklist   []string
	IgnorePaths []string
}

// DefaultOptions returns an Options value set for a Safe mode scan with no
// blocklist or ignore paths configured.
func DefaultOptions() *Options {
	return &Options{Mode: Safe}
}

// DeviceInfo describes one candidate device found during detection.
type DeviceInfo struct {
	Transport  string
	Path       string
	Name       string
	Confidence Confidence
	Metadata   map[string]string
}

// Detector is implemented by each transport's device enumerator.
type Detector interface {
	Transport() string
	Detect(ctx context.Context, opts *Options) ([]DeviceInfo, error)
}

var (
	ErrNoDevicesFound      = errors.New("detection: no devices found")
	ErrUnsupportedPlatform = errors.New("detection: unsupported platform")
	ErrDetectionTimeout    = errors.New("detection: timed out")
)

var (
	registryMu sync.Mutex
	registry   []Detector
)

// RegisterDetector adds d to the set of detectors consulted by Scan. Called
// from each transport detector package's init().
func RegisterDetector(d Detector) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, d)
}

// Scan runs every registered Detector and merges their results. A
// transport returning ErrNoDevicesFound or ErrUnsupportedPlatform does not
// fail the overall scan; it is simply omitted from the result.
func Scan(ctx context.Context, opts *Options) ([]DeviceInfo, error) {
	if opts == nil {
		opts = &Options{Mode: Safe}
	}

	registryMu.Lock()
	detectors := append([]Detector(nil), registry...)
	registryMu.Unlock()

	var all []DeviceInfo
	for _, d := range detectors {
		devices, err := d.Detect(ctx, opts)
		if err != nil {
			if errors.Is(err, ErrNoDevicesFound) || errors.Is(err, ErrUnsupportedPlatform) {
				continue
			}
			return all, err
		}
		all = append(all, devices...)
	}

	if len(all) == 0 {
		return nil, ErrNoDevicesFound
	}
	return all, nil
}
