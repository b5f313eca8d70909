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

package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/lokesh/vestaboard-server/pkg/modes"
	"github.com/lokesh/vestaboard-server/pkg/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestCurrentModeDefaultsToManual(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	mode, err := s.CurrentMode()
	require.NoError(t, err)
	assert.Equal(t, modes.ModeManual, mode)
}

func TestSaveAndLoadMode(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.SaveCurrentMode(modes.ModeFiveDayWeather))

	mode, err := s.CurrentMode()
	require.NoError(t, err)
	assert.Equal(t, modes.ModeFiveDayWeather, mode)
}

func TestModeSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	s, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveCurrentMode(modes.ModeClock))
	require.NoError(t, s.Close())

	s, err = store.Open(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, s.Close())
	}()

	mode, err := s.CurrentMode()
	require.NoError(t, err)
	assert.Equal(t, modes.ModeClock, mode)
}

func TestDebugFlag(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	debug, err := s.DebugFlag()
	require.NoError(t, err)
	assert.False(t, debug, "defaults to off")

	require.NoError(t, s.SaveDebugFlag(true))
	debug, err = s.DebugFlag()
	require.NoError(t, err)
	assert.True(t, debug)

	require.NoError(t, s.SaveDebugFlag(false))
	debug, err = s.DebugFlag()
	require.NoError(t, err)
	assert.False(t, debug)
}

func TestGoogleToken(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	tok, err := s.GoogleToken()
	require.NoError(t, err)
	assert.Nil(t, tok, "no token stored yet")

	want := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
	require.NoError(t, s.SaveGoogleToken(want))

	got, err := s.GoogleToken()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.AccessToken, got.AccessToken)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)
	assert.True(t, want.Expiry.Equal(got.Expiry))
}
