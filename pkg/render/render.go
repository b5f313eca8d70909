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

// Package render produces each mode's text payload from live data. Renderers
// are pure apart from their data sources: given the same clock reading and
// source records they always produce the same payload, and nothing is cached
// between calls.
package render

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lokesh/vestaboard-server/pkg/modes"
	"github.com/lokesh/vestaboard-server/pkg/sources"
)

// Renderer produces a board payload: newline-delimited text, at most 6 lines
// of 22 columns.
type Renderer interface {
	Render(ctx context.Context) (string, error)
}

// WeatherSource supplies forecast data.
type WeatherSource interface {
	MultiDayForecast(ctx context.Context) ([]sources.ForecastPeriod, error)
	HourlyForecast(ctx context.Context) ([]sources.HourlyPeriod, error)
}

// SunSource supplies daylight boundaries for the night-time color override.
type SunSource interface {
	SunTimes(ctx context.Context, date time.Time) (sources.SunTimes, error)
}

// CalendarSource supplies upcoming events, pre-filtered to exclude declined
// and multi-day entries.
type CalendarSource interface {
	UpcomingEvents(ctx context.Context, max int) ([]sources.Event, error)
	AllDayEvents(ctx context.Context, date time.Time) ([]string, error)
}

// NewSet builds the renderer for every non-manual mode.
func NewSet(
	weather WeatherSource,
	sun SunSource,
	calendar CalendarSource,
	loc *time.Location,
	clock clockwork.Clock,
) map[modes.Mode]Renderer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return map[modes.Mode]Renderer{
		modes.ModeClock:          &ClockRenderer{clock: clock, loc: loc},
		modes.ModeFiveDayWeather: &FiveDayWeatherRenderer{weather: weather, sun: sun, clock: clock, loc: loc},
		modes.ModeOneDayWeather:  &OneDayWeatherRenderer{weather: weather, sun: sun, clock: clock, loc: loc},
		modes.ModeCalendar:       &CalendarRenderer{calendar: calendar, clock: clock, loc: loc},
		modes.ModeToday:          &TodayRenderer{weather: weather, calendar: calendar, clock: clock, loc: loc},
	}
}
