// Vestaboard Server
// Copyright (c) 2025 The Vestaboard Server Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Vestaboard Server.
//
// Vestaboard Server is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Vestaboard Server is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Vestaboard Server.  If not, see <http://www.gnu.org/licenses/>.

package patterns

import (
	"regexp"
	"strings"

	"github.com/lokesh/vestaboard-server/pkg/board"
)

// calendarMatcher classifies every non-blank row as either a date header
// ("TOMORROW", "JAN 15") or an event row (color block, time, title). The
// calendar payload varies in row count, so blank rows are always fine; a
// single row fitting neither shape fails the match.
type calendarMatcher struct{}

var (
	dateHeaderRe = regexp.MustCompile(`^(TOMORROW|[A-Z][A-Z][A-Z] ?[0-9][0-9]?)$`)
	eventRowRe   = regexp.MustCompile(`^[🟥🟧🟨🟩🟦🟪⬜⬛] ?[0-9][0-9]?:[0-9][0-9][AP]M.+$`)
)

func (calendarMatcher) Matches(grid board.Grid) bool {
	for _, row := range board.Decode(grid) {
		trimmed := strings.TrimSpace(row)
		if trimmed == "" {
			continue
		}
		if !dateHeaderRe.MatchString(trimmed) && !eventRowRe.MatchString(trimmed) {
			return false
		}
	}
	return true
}

func (calendarMatcher) Describe() string {
	return "Calendar pattern: date headers and event rows with times"
}
