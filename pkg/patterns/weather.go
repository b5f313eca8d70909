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

// fiveDayWeatherMatcher expects the first two rows to open with a day
// abbreviation, a space and a temperature, like "SAT 72<block> Sunny". Only
// the day letters and the trailing temperature digit are pinned: the
// temperature column is right-aligned and a 1- or 3-digit value moves both
// its leading cell and the condition block, so pinning more would reject the
// renderer's own output. Further rows are left loose since a short forecast
// can leave them blank.
type fiveDayWeatherMatcher struct{}

var fiveDayWeatherTemplate = template{
	0: {"a-z", "a-z", "a-z", "", "", "0-9"},
	1: {"a-z", "a-z", "a-z", "", "", "0-9"},
}

func (fiveDayWeatherMatcher) Matches(grid board.Grid) bool {
	return fiveDayWeatherTemplate.matches(grid)
}

func (fiveDayWeatherMatcher) Describe() string {
	return "Five day weather pattern: DAY NN<block> description per row"
}

// oneDayWeatherMatcher expects a "DAY MON D" header on row 0. The sampled
// temperatures and hour labels below it shift with the forecast, so only the
// header shape is pinned down.
type oneDayWeatherMatcher struct{}

var oneDayWeatherTemplate = template{
	0: {"a-z", "a-z", "a-z", "", "a-z", "a-z", "a-z", "", "0-9"},
}

func (oneDayWeatherMatcher) Matches(grid board.Grid) bool {
	return oneDayWeatherTemplate.matches(grid)
}

func (oneDayWeatherMatcher) Describe() string {
	return "Hourly weather pattern: DAY MON D header with temperatures and condition blocks"
}
