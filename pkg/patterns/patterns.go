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

// Package patterns decides whether the board's live content still belongs to
// a given mode. Before a scheduled update overwrites the board, the scheduler
// runs the active mode's matcher against the live grid; a mismatch means a
// human took over the board and automation must back off.
package patterns

import (
	"github.com/lokesh/vestaboard-server/pkg/board"
	"github.com/lokesh/vestaboard-server/pkg/modes"
)

// Matcher reports whether a live grid conforms to one mode's expected shape.
type Matcher interface {
	Matches(board.Grid) bool
	Describe() string
}

// For returns the matcher for a mode, or nil for Manual, which has no
// expected shape and never matches.
func For(mode modes.Mode) Matcher {
	switch mode {
	case modes.ModeClock:
		return clockMatcher{}
	case modes.ModeFiveDayWeather:
		return fiveDayWeatherMatcher{}
	case modes.ModeOneDayWeather:
		return oneDayWeatherMatcher{}
	case modes.ModeCalendar:
		return calendarMatcher{}
	case modes.ModeToday:
		return todayMatcher{}
	case modes.ModeManual:
		return nil
	default:
		return nil
	}
}
