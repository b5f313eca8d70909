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
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/lokesh/vestaboard-server/pkg/board"
)

// conditionWidth is the column budget for a forecast description after the
// day, temperature and color block.
const conditionWidth = 14

// conditionBlock picks the color block for a forecast entry. Rain-family
// conditions force blue no matter the temperature; a clear sky at night shows
// black; everything else follows the temperature ladder.
func conditionBlock(temp int, forecast string, night bool) rune {
	f := strings.ToLower(forecast)
	switch {
	case strings.Contains(f, "rain") || strings.Contains(f, "shower") ||
		strings.Contains(f, "drizzle") || strings.Contains(f, "storm") ||
		strings.Contains(f, "thunder") || strings.Contains(f, "sprinkle"):
		return board.BlockBlue
	case night && (strings.Contains(f, "clear") || strings.Contains(f, "sunny")):
		return board.BlockBlack
	case temp < 40:
		return board.BlockViolet
	case temp < 55:
		return board.BlockGreen
	case temp < 70:
		return board.BlockYellow
	case temp < 85:
		return board.BlockOrange
	default:
		return board.BlockRed
	}
}

// conditionRewrites shortens NWS forecast wording so it survives the column
// budget. Applied in order; within a rule longer phrases are listed first so
// they win over their substrings.
var conditionRewrites = []struct {
	to   string
	from []string
}{
	{"&", []string{"And"}},
	{"", []string{"Increasing", "Decreasing", "Becoming", "Areas Of", "Freezing", "Gradual", "Patchy"}},
	{"Heavy", []string{"Widespread"}},
	{"Light", []string{
		"Slight Chance Very Light", "Slight Chance Light", "Intermittent Light",
		"Periods Of Light", "Chance Very Light", "Slight Chance", "Chance Light",
		"Slight Light", "Intermittent", "Very Light", "Scattered", "Isolated",
		"Chance", "Lt ",
	}},
	{"Rain", []string{"Rain Showers", "Rain Fog", "Showers", "Spray"}},
	{"Snow", []string{"Snow Showers", "Wintry Mix", "Flurries"}},
	{"Storm", []string{"Thunderstorms", "T-storms"}},
}

// formatCondition normalizes a short forecast and fits it to width columns,
// dropping trailing words that do not fit and padding the remainder.
func formatCondition(desc string, width int) string {
	for _, rule := range conditionRewrites {
		for _, phrase := range rule.from {
			desc = strings.ReplaceAll(desc, phrase, rule.to)
		}
	}

	var words []string
	for _, w := range strings.FieldsFunc(desc, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r == '&')
	}) {
		words = append(words, w)
	}

	out := ""
	for _, w := range words {
		candidate := w
		if out != "" {
			candidate = out + " " + w
		}
		if len(candidate) > width {
			break
		}
		out = candidate
	}
	return padRight(out, width)
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// FiveDayWeatherRenderer shows one line per upcoming daytime forecast period:
// day abbreviation, temperature, condition block and shortened description.
type FiveDayWeatherRenderer struct {
	weather WeatherSource
	sun     SunSource
	clock   clockwork.Clock
	loc     *time.Location
}

func (f *FiveDayWeatherRenderer) Render(ctx context.Context) (string, error) {
	periods, err := f.weather.MultiDayForecast(ctx)
	if err != nil {
		return "", fmt.Errorf("five day weather render failed: %w", err)
	}

	now := f.clock.Now().In(f.loc)
	night := f.isNight(ctx, now)

	lines := make([]string, 0, board.Rows)
	for i, p := range periods {
		if i == board.Rows {
			break
		}
		// the black-at-night override only makes sense for today's entry
		entryNight := night && sameDay(p.Start, now)
		line := fmt.Sprintf("%s %2d%c %s",
			strings.ToUpper(p.Start.Format("Mon")),
			p.Temperature,
			conditionBlock(p.Temperature, p.ShortForecast, entryNight),
			formatCondition(p.ShortForecast, conditionWidth),
		)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (f *FiveDayWeatherRenderer) isNight(ctx context.Context, now time.Time) bool {
	st, err := f.sun.SunTimes(ctx, now)
	if err != nil {
		log.Warn().Err(err).Msg("failed to fetch sun times, skipping night override")
		return false
	}
	return now.Before(st.Sunrise) || now.After(st.Sunset)
}

// OneDayWeatherRenderer shows today hour by hour: a date header, temperatures
// sampled at every 4th hour, one condition block per hour and compressed hour
// labels aligned under the sampled temperatures.
type OneDayWeatherRenderer struct {
	weather WeatherSource
	sun     SunSource
	clock   clockwork.Clock
	loc     *time.Location
}

func (o *OneDayWeatherRenderer) Render(ctx context.Context) (string, error) {
	hours, err := o.weather.HourlyForecast(ctx)
	if err != nil {
		return "", fmt.Errorf("hourly weather render failed: %w", err)
	}
	if len(hours) == 0 {
		return "", fmt.Errorf("hourly forecast returned no periods")
	}
	if len(hours) > board.Cols {
		hours = hours[:board.Cols]
	}

	now := o.clock.Now().In(o.loc)
	st, sunErr := o.sun.SunTimes(ctx, now)
	if sunErr != nil {
		log.Warn().Err(sunErr).Msg("failed to fetch sun times, skipping night override")
	}

	temps := blankRow()
	labels := blankRow()
	for s := 0; s*4 < len(hours); s++ {
		h := hours[s*4]
		writeAt(temps, s*4, strconv.Itoa(h.Temperature))
		writeAt(labels, s*4, hourLabel(h.Start))
	}

	var blocks strings.Builder
	for _, h := range hours {
		night := sunErr == nil && (h.Start.Before(st.Sunrise) || h.Start.After(st.Sunset))
		blocks.WriteRune(conditionBlock(h.Temperature, h.ShortForecast, night))
	}

	header := strings.ToUpper(now.Format("Mon Jan 2"))
	rows := []string{
		header,
		strings.TrimRight(string(temps), " "),
		blocks.String(),
		strings.TrimRight(string(labels), " "),
	}
	return strings.Join(rows, "\n"), nil
}

// hourLabel compresses an hour into a board-friendly label like "9a" or "3p".
func hourLabel(t time.Time) string {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	suffix := "a"
	if t.Hour() >= 12 {
		suffix = "p"
	}
	return strconv.Itoa(h) + suffix
}

func blankRow() []rune {
	row := make([]rune, board.Cols)
	for i := range row {
		row[i] = ' '
	}
	return row
}

func writeAt(row []rune, col int, s string) {
	for _, r := range s {
		if col >= len(row) {
			return
		}
		row[col] = r
		col++
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
