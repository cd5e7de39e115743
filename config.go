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

package hfcore

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the session-level equivalent of a CLI preferences file: default
// dictionary paths, the hardnested precomputed-table directory, retry
// tuning and per-family timeouts. It is deliberately separate from any
// CLI flag parsing, which lives outside this module.
type Config struct {
	// DictionaryPaths lists directories searched for MIFARE Classic/
	// Ultralight key dictionaries, in order.
	DictionaryPaths []string `yaml:"dictionary_paths"`

	// HardnestedTableDir is the directory containing precomputed
	// partial-sum tables consumed by package hardnested.
	HardnestedTableDir string `yaml:"hardnested_table_dir"`

	// Retry overrides the default RetryConfig when non-nil fields are set.
	Retry RetryConfig `yaml:"retry"`

	// FamilyTimeouts maps a protocol family name (e.g. "iso14a", "iso15693")
	// to its default per-operation timeout.
	FamilyTimeouts map[string]time.Duration `yaml:"family_timeouts"`
}

// DefaultConfig returns a Config with conservative built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DictionaryPaths:    []string{"dictionaries"},
		HardnestedTableDir: "hardnested_tables",
		Retry:              *DefaultRetryConfig(),
		FamilyTimeouts: map[string]time.Duration{
			"iso14a":   500 * time.Millisecond,
			"iso14b":   500 * time.Millisecond,
			"iso15693": 500 * time.Millisecond,
			"iclass":   500 * time.Millisecond,
			"legic":    500 * time.Millisecond,
			"felica":   500 * time.Millisecond,
		},
	}
}

// LoadConfig reads and parses a YAML config file, applying DefaultConfig
// values for anything left unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// TimeoutFor returns the configured timeout for family, or fallback if the
// family has no explicit entry.
func (c *Config) TimeoutFor(family string, fallback time.Duration) time.Duration {
	if c == nil {
		return fallback
	}
	if t, ok := c.FamilyTimeouts[family]; ok && t > 0 {
		return t
	}
	return fallback
}
