// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package hfcore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NotEmpty(t, cfg.DictionaryPaths)
	assert.NotEmpty(t, cfg.HardnestedTableDir)
	assert.Equal(t, 500*time.Millisecond, cfg.FamilyTimeouts["iso14a"])
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "hfcore.yaml")
	contents := "dictionary_paths:\n  - /opt/keys\nfamily_timeouts:\n  iso15693: 750ms\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/opt/keys"}, cfg.DictionaryPaths)
	assert.Equal(t, 750*time.Millisecond, cfg.FamilyTimeouts["iso15693"])
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTimeoutForFallsBackToDefault(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.TimeoutFor("iso14a", time.Second))
	assert.Equal(t, time.Second, cfg.TimeoutFor("unknown-family", time.Second))

	var nilCfg *Config
	assert.Equal(t, time.Second, nilCfg.TimeoutFor("iso14a", time.Second))
}
