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
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jonboulle/clockwork"

	"github.com/lokesh/vestaboard-server/pkg/board"
)

const (
	maxDisplayEvents = 5
	titleWidth       = 14
)

// CalendarRenderer lists upcoming events grouped by day. Today's events get
// no header and a green block; later days get a "Tomorrow" or "Mon 2" header
// once each and yellow blocks.
type CalendarRenderer struct {
	calendar CalendarSource
	clock    clockwork.Clock
	loc      *time.Location
}

func (c *CalendarRenderer) Render(ctx context.Context) (string, error) {
	if c.calendar == nil {
		return "", errors.New("calendar source is not configured")
	}
	events, err := c.calendar.UpcomingEvents(ctx, maxDisplayEvents*2)
	if err != nil {
		return "", fmt.Errorf("calendar render failed: %w", err)
	}

	now := c.clock.Now().In(c.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)

	var lines []string
	var lastDay time.Time
	shown := 0
	for _, ev := range events {
		if !ev.End.After(now) {
			continue // already over
		}
		if shown == maxDisplayEvents {
			break
		}
		start := ev.Start.In(c.loc)
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, c.loc)

		if !day.Equal(lastDay) {
			lastDay = day
			switch {
			case day.Equal(today):
				// today gets no header
			case day.Equal(today.AddDate(0, 0, 1)):
				lines = append(lines, "Tomorrow")
			default:
				lines = append(lines, start.Format("Jan 2"))
			}
		}

		blk := board.BlockYellow
		if day.Equal(today) {
			blk = board.BlockGreen
		}
		lines = append(lines, fmt.Sprintf("%c%s %s",
			blk, start.Format("3:04pm"), formatTitle(ev.Title)))
		shown++
	}

	if shown == 0 {
		return "", nil
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \n"), nil
}

// formatTitle strips emoji from an event title and fits it to the title
// column budget.
func formatTitle(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if unicode.IsControl(r) || r >= 0x1F000 || (r >= 0x2600 && r <= 0x27BF) || r == 0xFE0F {
			continue
		}
		sb.WriteRune(r)
	}
	clean := []rune(strings.TrimSpace(sb.String()))
	if len(clean) > titleWidth {
		return string(clean[:titleWidth-1]) + "…"
	}
	return padRight(string(clean), titleWidth)
}
