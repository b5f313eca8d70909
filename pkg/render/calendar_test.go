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
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokesh/vestaboard-server/pkg/sources"
)

type stubCalendar struct {
	events []sources.Event
	allDay []string
	err    error
}

func (s *stubCalendar) UpcomingEvents(_ context.Context, _ int) ([]sources.Event, error) {
	return s.events, s.err
}

func (s *stubCalendar) AllDayEvents(_ context.Context, _ time.Time) ([]string, error) {
	return s.allDay, s.err
}

func TestCalendarRenderer(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	now := time.Date(2026, time.January, 5, 8, 0, 0, 0, loc)
	at := func(dayOffset, hour, minute int) time.Time {
		return time.Date(2026, time.January, 5+dayOffset, hour, minute, 0, 0, loc)
	}
	event := func(dayOffset, hour, minute int, title string) sources.Event {
		start := at(dayOffset, hour, minute)
		return sources.Event{Start: start, End: start.Add(time.Hour), Title: title}
	}

	cal := &stubCalendar{events: []sources.Event{
		event(0, 9, 30, "Standup"),
		event(0, 14, 0, "Design Review"),
		event(1, 10, 0, "Dentist"),
		event(3, 18, 30, "Dinner"),
	}}
	r := &CalendarRenderer{calendar: cal, clock: clockwork.NewFakeClockAt(now), loc: loc}

	out, err := r.Render(context.Background())
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	// today's events come first with no header and a green block
	assert.Equal(t, "🟩9:30am Standup", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "🟩2:00pm Design Review", strings.TrimRight(lines[1], " "))
	// later days get one header each and yellow blocks
	assert.Equal(t, "Tomorrow", lines[2])
	assert.Equal(t, "🟨10:00am Dentist", strings.TrimRight(lines[3], " "))
	assert.Equal(t, "Jan 8", lines[4])
	assert.Equal(t, "🟨6:30pm Dinner", strings.TrimRight(lines[5], " "))
}

func TestCalendarRendererSkipsFinishedEvents(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	now := time.Date(2026, time.January, 5, 12, 0, 0, 0, loc)
	morning := time.Date(2026, time.January, 5, 8, 0, 0, 0, loc)

	cal := &stubCalendar{events: []sources.Event{
		{Start: morning, End: morning.Add(time.Hour), Title: "Over"},
		{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Title: "Upcoming"},
	}}
	r := &CalendarRenderer{calendar: cal, clock: clockwork.NewFakeClockAt(now), loc: loc}

	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, out, "Over")
	assert.Contains(t, out, "Upcoming")
}

func TestCalendarRendererCapsDisplayedEvents(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	now := time.Date(2026, time.January, 5, 8, 0, 0, 0, loc)

	var events []sources.Event
	for i := 0; i < 8; i++ {
		start := now.Add(time.Duration(i+1) * time.Hour)
		events = append(events, sources.Event{Start: start, End: start.Add(time.Hour), Title: "Busy"})
	}
	r := &CalendarRenderer{
		calendar: &stubCalendar{events: events},
		clock:    clockwork.NewFakeClockAt(now),
		loc:      loc,
	}

	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Len(t, strings.Split(out, "\n"), maxDisplayEvents)
}

func TestCalendarRendererNoEvents(t *testing.T) {
	t.Parallel()

	r := &CalendarRenderer{
		calendar: &stubCalendar{},
		clock:    clockwork.NewFakeClockAt(time.Now()),
		loc:      time.UTC,
	}
	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out, "no events leaves the board blank")
}

func TestCalendarRendererErrors(t *testing.T) {
	t.Parallel()

	r := &CalendarRenderer{
		calendar: &stubCalendar{err: errors.New("google down")},
		clock:    clockwork.NewFakeClockAt(time.Now()),
		loc:      time.UTC,
	}
	_, err := r.Render(context.Background())
	require.Error(t, err)

	r = &CalendarRenderer{clock: clockwork.NewFakeClockAt(time.Now()), loc: time.UTC}
	_, err = r.Render(context.Background())
	require.Error(t, err, "unconfigured calendar source")
}

func TestFormatTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short titles pad to the column budget", "Standup", "Standup       "},
		{"long titles truncate with ellipsis", "Quarterly Planning Session", "Quarterly Pla…"},
		{"emoji are stripped", "🎉 Party", "Party         "},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatTitle(tt.in))
		})
	}
}
