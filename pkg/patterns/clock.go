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

import "github.com/lokesh/vestaboard-server/pkg/board"

// clockMatcher expects a 12-hour time at the start of row 0. The hour may be
// one digit, one digit with a leading space, or two digits, so the whole
// window is checked as a unit rather than cell by cell.
type clockMatcher struct{}

var clockTemplate = template{
	0: {"time"},
}

func (clockMatcher) Matches(grid board.Grid) bool {
	return clockTemplate.matches(grid)
}

func (clockMatcher) Describe() string {
	return "Clock pattern: H:MM in 12-hour format"
}
