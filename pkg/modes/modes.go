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

// Package modes defines the display modes the board can run in. Exactly one
// mode is active at a time; Manual means no automated updates.
package modes

import (
	"errors"
	"strings"
)

type Mode string

const (
	ModeManual         Mode = "manual"
	ModeClock          Mode = "clock"
	ModeFiveDayWeather Mode = "5day-weather"
	ModeOneDayWeather  Mode = "1day-weather"
	ModeCalendar       Mode = "calendar"
	ModeToday          Mode = "today"
)

var ErrInvalidMode = errors.New("invalid mode")

// All returns every recognized mode, Manual included.
func All() []Mode {
	return []Mode{
		ModeManual,
		ModeClock,
		ModeFiveDayWeather,
		ModeOneDayWeather,
		ModeCalendar,
		ModeToday,
	}
}

// Parse converts a user-supplied mode name into a Mode. Matching is
// case-insensitive.
func Parse(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range All() {
		if m == known {
			return known, nil
		}
	}
	return "", ErrInvalidMode
}

func (m Mode) IsValid() bool {
	_, err := Parse(string(m))
	return err == nil
}

func (m Mode) String() string {
	return string(m)
}
