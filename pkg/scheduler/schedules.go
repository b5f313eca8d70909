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

package scheduler

import "github.com/lokesh/vestaboard-server/pkg/modes"

// Schedule is one mode's recurring trigger: a standard 5-field cron spec
// evaluated in the configured timezone.
type Schedule struct {
	Spec        string `json:"spec"`
	Description string `json:"description"`
}

// Schedules holds the fixed cadence for every automated mode. Manual has no
// schedule.
var Schedules = map[modes.Mode]Schedule{
	modes.ModeClock: {
		Spec:        "* * * * *",
		Description: "Updates every minute",
	},
	modes.ModeFiveDayWeather: {
		Spec:        "0 6,12,18 * * *",
		Description: "Updates at 6am, noon and 6pm every day",
	},
	modes.ModeOneDayWeather: {
		Spec:        "0 6,9,12,15,18 * * *",
		Description: "Updates at 6am, 9am, noon, 3pm and 6pm every day",
	},
	modes.ModeToday: {
		Spec:        "0 6,9,12,15,18 * * *",
		Description: "Updates at 6am, 9am, noon, 3pm and 6pm every day",
	},
	modes.ModeCalendar: {
		Spec:        "0 * * * *",
		Description: "Updates every hour",
	},
}
