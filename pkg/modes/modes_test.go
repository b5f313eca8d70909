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

package modes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokesh/vestaboard-server/pkg/modes"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    modes.Mode
		wantErr bool
	}{
		{"exact", "clock", modes.ModeClock, false},
		{"uppercase", "CLOCK", modes.ModeClock, false},
		{"surrounding whitespace", "  today \n", modes.ModeToday, false},
		{"five day weather", "5day-weather", modes.ModeFiveDayWeather, false},
		{"one day weather", "1Day-Weather", modes.ModeOneDayWeather, false},
		{"manual", "manual", modes.ModeManual, false},
		{"unknown", "disco", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := modes.Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, modes.ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllModesAreValid(t *testing.T) {
	t.Parallel()

	all := modes.All()
	assert.Len(t, all, 6)
	for _, mode := range all {
		assert.True(t, mode.IsValid(), "mode %s", mode)
	}
	assert.False(t, modes.Mode("bogus").IsValid())
}
