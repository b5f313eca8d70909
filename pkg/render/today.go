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

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/lokesh/vestaboard-server/pkg/board"
	"github.com/lokesh/vestaboard-server/pkg/sources"
)

// dayparts are the fixed 4-hour windows summarized on rows 4-6.
var dayparts = []struct {
	startHour int
	endHour   int
}{
	{8, 12},  // morning
	{12, 16}, // midday
	{16, 20}, // evening
}

// TodayRenderer condenses the whole day onto one board: the date, any
// holiday or birthdays, and a weather summary per daypart.
type TodayRenderer struct {
	weather  WeatherSource
	calendar CalendarSource
	clock    clockwork.Clock
	loc      *time.Location
}

func (t *TodayRenderer) Render(ctx context.Context) (string, error) {
	now := t.clock.Now().In(t.loc)

	hours, err := t.weather.HourlyForecast(ctx)
	if err != nil {
		return "", fmt.Errorf("today render failed: %w", err)
	}

	// birthdays and holidays are decoration, a calendar outage should not
	// blank the whole board
	var allDay []string
	if t.calendar != nil {
		allDay, err = t.calendar.AllDayEvents(ctx, now)
		if err != nil {
			log.Warn().Err(err).Msg("failed to fetch all-day events, skipping birthdays")
			allDay = nil
		}
	}

	rows := make([]string, 0, board.Rows)
	rows = append(rows, strings.ToUpper(now.Format("January 2")))

	holiday := Holiday(now)
	birthdays := birthdayLine(allDay)
	switch {
	case holiday != "" && birthdays != "":
		rows = append(rows, truncateTo(holiday, board.Cols), truncateTo(birthdays, board.Cols))
	case holiday != "":
		rows = append(rows, truncateTo(holiday, board.Cols), "")
	case birthdays != "":
		rows = append(rows, truncateTo(birthdays, board.Cols), "")
	default:
		rows = append(rows, "", "")
	}

	for _, part := range dayparts {
		rows = append(rows, daypartLine(hours, now, part.startHour, part.endHour))
	}

	return strings.TrimRight(strings.Join(rows, "\n"), " \n"), nil
}

// daypartLine summarizes one 4-hour window: temperature range, one block per
// hour, and the most frequent condition in the window.
func daypartLine(hours []sources.HourlyPeriod, now time.Time, startHour, endHour int) string {
	minTemp, maxTemp := 0, 0
	var blocks strings.Builder
	counts := make(map[string]int)
	var order []string

	n := 0
	for _, h := range hours {
		if !sameDay(h.Start, now) || h.Start.Hour() < startHour || h.Start.Hour() >= endHour {
			continue
		}
		if n == 0 || h.Temperature < minTemp {
			minTemp = h.Temperature
		}
		if n == 0 || h.Temperature > maxTemp {
			maxTemp = h.Temperature
		}
		blocks.WriteRune(conditionBlock(h.Temperature, h.ShortForecast, false))

		word := conditionWord(h.ShortForecast)
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
		n++
	}
	if n == 0 {
		return ""
	}

	best := order[0]
	for _, w := range order {
		if counts[w] > counts[best] {
			best = w
		}
	}

	prefix := fmt.Sprintf("%d-%d° %s ", minTemp, maxTemp, blocks.String())
	budget := board.Cols - len([]rune(prefix))
	if budget < 0 {
		budget = 0
	}
	return strings.TrimRight(prefix+truncateTo(best, budget), " ")
}

// conditionWord is the leading word of a normalized condition, e.g. "Rain"
// from "Slight Chance Rain Showers".
func conditionWord(forecast string) string {
	normalized := strings.TrimSpace(formatCondition(forecast, conditionWidth))
	if i := strings.IndexByte(normalized, ' '); i > 0 {
		return normalized[:i]
	}
	return normalized
}

// birthdayLine extracts people's names from all-day events mentioning a
// birthday and joins them to fit the board width, preferring "First L" and
// falling back to first names only.
func birthdayLine(allDayTitles []string) string {
	var names []string
	for _, title := range allDayTitles {
		if !strings.Contains(strings.ToLower(title), "birthday") {
			continue
		}
		if name := birthdayName(title); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}

	abbreviated := make([]string, len(names))
	firstOnly := make([]string, len(names))
	for i, name := range names {
		parts := strings.Fields(name)
		firstOnly[i] = parts[0]
		if len(parts) > 1 {
			abbreviated[i] = parts[0] + " " + string([]rune(parts[len(parts)-1])[0])
		} else {
			abbreviated[i] = parts[0]
		}
	}

	line := strings.Join(abbreviated, " & ")
	if len([]rune(line)) <= board.Cols {
		return line
	}
	return truncateTo(strings.Join(firstOnly, " & "), board.Cols)
}

// birthdayName strips the birthday phrasing from an event title, leaving the
// person's name: "Ada Lovelace's Birthday" -> "Ada Lovelace".
func birthdayName(title string) string {
	name := title
	for _, phrase := range []string{"'s Birthday", "'s birthday", "Birthday", "birthday"} {
		name = strings.ReplaceAll(name, phrase, "")
	}
	return strings.Trim(strings.TrimSpace(name), "-:")
}

func truncateTo(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
