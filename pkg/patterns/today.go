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

// todayMatcher pins down the date header on row 0 ("AUGUST 31"): a month
// name followed by a day number. The rows below mix holidays, birthdays and
// daypart summaries, all of which are too free-form to template.
type todayMatcher struct{}

var todayHeaderRe = regexp.MustCompile(`^[A-Z]+ [0-9][0-9]?$`)

func (todayMatcher) Matches(grid board.Grid) bool {
	rows := board.Decode(grid)
	return todayHeaderRe.MatchString(strings.TrimSpace(rows[0]))
}

func (todayMatcher) Describe() string {
	return "Today pattern: MONTH D header with daily summary rows"
}
