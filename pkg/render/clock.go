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
	"time"

	"github.com/jonboulle/clockwork"
)

// ClockRenderer shows the current local time as "H:MM AM". Single-digit
// hours get a leading space instead of a zero so the colon stays at a fixed
// column on the board.
type ClockRenderer struct {
	clock clockwork.Clock
	loc   *time.Location
}

func (c *ClockRenderer) Render(_ context.Context) (string, error) {
	now := c.clock.Now().In(c.loc)
	out := now.Format("3:04 PM")
	hour := now.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	if hour < 10 {
		out = " " + out
	}
	return out, nil
}
