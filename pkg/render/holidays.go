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

package render

import "time"

// The holiday table is a deliberately small fixed-rule set, not a calendar
// library: exact month/day entries plus weekday-of-month arithmetic for the
// floating ones.

type fixedHoliday struct {
	name  string
	month time.Month
	day   int
}

type floatingHoliday struct {
	name    string
	month   time.Month
	weekday time.Weekday
	// nth occurrence within the month, -1 for the last one
	nth int
}

var fixedHolidays = []fixedHoliday{
	{"New Year's Day", time.January, 1},
	{"Valentine's Day", time.February, 14},
	{"St Patrick's Day", time.March, 17},
	{"Juneteenth", time.June, 19},
	{"Independence Day", time.July, 4},
	{"Halloween", time.October, 31},
	{"Veterans Day", time.November, 11},
	{"Christmas Eve", time.December, 24},
	{"Christmas", time.December, 25},
	{"New Year's Eve", time.December, 31},
}

var floatingHolidays = []floatingHoliday{
	{"MLK Day", time.January, time.Monday, 3},
	{"Presidents Day", time.February, time.Monday, 3},
	{"Mother's Day", time.May, time.Sunday, 2},
	{"Memorial Day", time.May, time.Monday, -1},
	{"Father's Day", time.June, time.Sunday, 3},
	{"Labor Day", time.September, time.Monday, 1},
	{"Thanksgiving", time.November, time.Thursday, 4},
}

// Holiday returns the holiday name for a date, or "" when it is an ordinary
// day.
func Holiday(t time.Time) string {
	for _, h := range fixedHolidays {
		if t.Month() == h.month && t.Day() == h.day {
			return h.name
		}
	}
	for _, h := range floatingHolidays {
		if t.Month() != h.month {
			continue
		}
		if t.Day() == nthWeekday(t.Year(), h.month, h.weekday, h.nth, t.Location()) {
			return h.name
		}
	}
	return ""
}

// nthWeekday returns the day of month for the nth given weekday, or the last
// one when nth is -1.
func nthWeekday(year int, month time.Month, weekday time.Weekday, nth int, loc *time.Location) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	if nth == -1 {
		day := 1 + offset
		for day+7 <= daysIn(year, month, loc) {
			day += 7
		}
		return day
	}
	return 1 + offset + (nth-1)*7
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
