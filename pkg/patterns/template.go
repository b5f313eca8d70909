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

	"github.com/lokesh/vestaboard-server/pkg/board"
)

// Cell constraint vocabulary used in templates. A cell is one of:
//
//	""            wildcard, matches any symbol
//	"0-9"         a single digit
//	"a-z"         a single letter
//	"block"       one of the recognized color block codes
//	"time"        a time-like window starting at this cell ("9:05", " 9:05"
//	              or "11:05")
//	anything else a literal symbol, matched case-insensitively
//
// Matching is a per-cell AND across every non-wildcard constraint. Rows that
// are entirely wildcard are trivially satisfied; the first failing row fails
// the whole match.
type template [board.Rows][]string

var timeWindowRe = regexp.MustCompile(`^([0-9 ][0-9]|[0-9]):[0-9][0-9]`)

func (t template) matches(grid board.Grid) bool {
	rows := board.Decode(grid)
	for r := 0; r < board.Rows; r++ {
		if len(t[r]) == 0 {
			continue
		}
		row := []rune(rows[r])
		for c, constraint := range t[r] {
			if c >= board.Cols || constraint == "" {
				continue
			}
			if !cellMatches(constraint, grid, row, r, c) {
				return false
			}
		}
	}
	return true
}

func cellMatches(constraint string, grid board.Grid, row []rune, r, c int) bool {
	ch := row[c]
	switch constraint {
	case "0-9":
		return ch >= '0' && ch <= '9'
	case "a-z":
		return ch >= 'A' && ch <= 'Z'
	case "block":
		return board.IsBlockCode(grid[r][c])
	case "time":
		return timeWindowRe.MatchString(string(row[c:]))
	default:
		upper := []rune(constraint)
		return len(upper) == 1 && equalFold(ch, upper[0])
	}
}

func equalFold(a, b rune) bool {
	if a >= 'a' && a <= 'z' {
		a -= 'a' - 'A'
	}
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	return a == b
}
