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
)

// DebugLevel gates the session's internal logging. There is no external
// logging framework here: the CLI adaptor owns rendering, this package only
// ever writes to stderr when asked to.
type DebugLevel int

const (
	// DebugOff disables all internal logging.
	DebugOff DebugLevel = iota
	// DebugBasic logs high-level operation boundaries (select, auth, read).
	DebugBasic
	// DebugFull additionally logs raw frame bytes exchanged with the Link.
	DebugFull
)

func (s *Session) debugf(level DebugLevel, format string, args ...interface{}) {
	if s.debugLevel < level {
		return
	}
	fmt.Fprintf(os.Stderr, "[hfcore] "+format+"\n", args...)
}

func (s *Session) debugln(level DebugLevel, args ...interface{}) {
	if s.debugLevel < level {
		return
	}
	fmt.Fprintln(os.Stderr, append([]interface{}{"[hfcore]"}, args...)...)
}
