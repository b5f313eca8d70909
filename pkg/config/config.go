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

// Package config loads and saves the server's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	SchemaVersion = 1
	CfgEnv        = "VESTABOARD_CFG"
	CfgFile       = "config.toml"
	LogFile       = "vestaboard.log"
	StoreFile     = "vestaboard.db"
)

type Values struct {
	Timezone     string   `toml:"timezone"`
	Listen       string   `toml:"listen"`
	Board        Board    `toml:"board"`
	Weather      Weather  `toml:"weather"`
	Calendar     Calendar `toml:"calendar,omitempty"`
	ConfigSchema int      `toml:"config_schema"`
	DebugLogging bool     `toml:"debug_logging"`
}

type Board struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url,omitempty"`
}

type Weather struct {
	ForecastURL       string  `toml:"forecast_url"`
	HourlyForecastURL string  `toml:"hourly_forecast_url"`
	SunTimesURL       string  `toml:"sun_times_url,omitempty"`
	Latitude          float64 `toml:"latitude"`
	Longitude         float64 `toml:"longitude"`
}

type Calendar struct {
	ClientID     string `toml:"client_id,omitempty"`
	ClientSecret string `toml:"client_secret,omitempty"`
}

// BaseDefaults covers a board in the San Francisco bay area, matching the
// NWS gridpoint the project was originally built against.
var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Timezone:     "America/Los_Angeles",
	Listen:       ":3000",
	Weather: Weather{
		ForecastURL:       "https://api.weather.gov/gridpoints/MTR/84,105/forecast",
		HourlyForecastURL: "https://api.weather.gov/gridpoints/MTR/84,105/forecast/hourly",
		Latitude:          37.77,
		Longitude:         -122.43,
	},
}

type Instance struct {
	cfgPath string
	mu      sync.RWMutex
	vals    Values
}

// NewConfig loads the config file from configDir, creating it with defaults
// on first run.
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfg := &Instance{
		cfgPath: filepath.Join(configDir, CfgFile),
		vals:    defaults,
	}

	if err := cfg.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("error creating config: %w", err)
		}
	}
	return cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var newVals Values
	if err := toml.Unmarshal(data, &newVals); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("error marshalling config: %w", err)
	}
	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) Listen() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Listen
}

// Location resolves the configured timezone. An invalid timezone is a fatal
// misconfiguration since every schedule and render depends on it.
func (c *Instance) Location() (*time.Location, error) {
	c.mu.RLock()
	tz := c.vals.Timezone
	c.mu.RUnlock()

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

func (c *Instance) Board() Board {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Board
}

func (c *Instance) Weather() Weather {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Weather
}

func (c *Instance) Calendar() Calendar {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Calendar
}
