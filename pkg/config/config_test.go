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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokesh/vestaboard-server/pkg/config"
)

func TestNewConfigCreatesFileWithDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := config.NewConfig(dir, config.BaseDefaults)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, config.CfgFile))
	require.NoError(t, err, "first run writes the config file")

	assert.Equal(t, ":3000", cfg.Listen())
	assert.False(t, cfg.DebugLogging())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", loc.String())
}

func TestNewConfigLoadsExistingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	contents := `
timezone = "UTC"
listen = ":8080"
config_schema = 1
debug_logging = true

[board]
api_key = "secret-key"

[weather]
forecast_url = "https://example.com/forecast"
hourly_forecast_url = "https://example.com/hourly"
latitude = 40.7
longitude = -74.0

[calendar]
client_id = "cid"
client_secret = "cs"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.CfgFile), []byte(contents), 0o600))

	cfg, err := config.NewConfig(dir, config.BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen())
	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, "secret-key", cfg.Board().APIKey)
	assert.Equal(t, "https://example.com/forecast", cfg.Weather().ForecastURL)
	assert.InDelta(t, 40.7, cfg.Weather().Latitude, 0.001)
	assert.Equal(t, "cid", cfg.Calendar().ClientID)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := config.NewConfig(dir, config.BaseDefaults)
	require.NoError(t, err)

	reloaded, err := config.NewConfig(dir, config.Values{})
	require.NoError(t, err)
	assert.Equal(t, cfg.Listen(), reloaded.Listen())
	assert.Equal(t, cfg.Weather(), reloaded.Weather())
}

func TestInvalidTimezone(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	vals := config.BaseDefaults
	vals.Timezone = "Mars/Olympus_Mons"
	cfg, err := config.NewConfig(dir, vals)
	require.NoError(t, err)

	_, err = cfg.Location()
	require.Error(t, err)
}

func TestMalformedFileFailsLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.CfgFile), []byte("{not toml"), 0o600))

	_, err := config.NewConfig(dir, config.BaseDefaults)
	require.Error(t, err)
}
