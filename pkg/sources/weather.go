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

// Package sources contains HTTP clients for the external data the renderers
// consume: the National Weather Service forecast, sunrise/sunset times and
// Google Calendar events. Each client returns already-shaped records; layout
// decisions belong to the renderers.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// ForecastPeriod is one daytime entry from the multi-day forecast.
type ForecastPeriod struct {
	Start         time.Time
	Temperature   int
	ShortForecast string
}

// HourlyPeriod is one entry from the hourly forecast.
type HourlyPeriod struct {
	Start         time.Time
	Temperature   int
	ShortForecast string
}

// WeatherClient fetches forecasts from the NWS gridpoint API.
type WeatherClient struct {
	client      *http.Client
	clock       clockwork.Clock
	loc         *time.Location
	forecastURL string
	hourlyURL   string
}

func NewWeatherClient(forecastURL, hourlyURL string, loc *time.Location, clock clockwork.Clock) *WeatherClient {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &WeatherClient{
		client:      &http.Client{Timeout: 30 * time.Second},
		clock:       clock,
		loc:         loc,
		forecastURL: forecastURL,
		hourlyURL:   hourlyURL,
	}
}

// nwsForecast mirrors the slice of the NWS response the board cares about.
type nwsForecast struct {
	Properties struct {
		Periods []struct {
			StartTime     time.Time `json:"startTime"`
			ShortForecast string    `json:"shortForecast"`
			Temperature   int       `json:"temperature"`
			IsDaytime     bool      `json:"isDaytime"`
		} `json:"periods"`
	} `json:"properties"`
}

// MultiDayForecast returns up to 6 upcoming daytime periods. After 6pm local
// time today's period is dropped so the board leads with tomorrow.
func (w *WeatherClient) MultiDayForecast(ctx context.Context) ([]ForecastPeriod, error) {
	parsed, err := w.fetch(ctx, w.forecastURL)
	if err != nil {
		return nil, err
	}

	now := w.clock.Now().In(w.loc)
	pastSixPM := now.Hour() >= 18
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, w.loc).AddDate(0, 0, 1)

	periods := make([]ForecastPeriod, 0, 6)
	for _, p := range parsed.Properties.Periods {
		if !p.IsDaytime {
			continue
		}
		start := p.StartTime.In(w.loc)
		if pastSixPM && start.Before(tomorrow) {
			continue
		}
		periods = append(periods, ForecastPeriod{
			Start:         start,
			Temperature:   p.Temperature,
			ShortForecast: p.ShortForecast,
		})
		if len(periods) == 6 {
			break
		}
	}
	return periods, nil
}

// HourlyForecast returns hourly periods from the current hour onward.
func (w *WeatherClient) HourlyForecast(ctx context.Context) ([]HourlyPeriod, error) {
	parsed, err := w.fetch(ctx, w.hourlyURL)
	if err != nil {
		return nil, err
	}

	cutoff := w.clock.Now().In(w.loc).Truncate(time.Hour)
	periods := make([]HourlyPeriod, 0, len(parsed.Properties.Periods))
	for _, p := range parsed.Properties.Periods {
		start := p.StartTime.In(w.loc)
		if start.Before(cutoff) {
			continue
		}
		periods = append(periods, HourlyPeriod{
			Start:         start,
			Temperature:   p.Temperature,
			ShortForecast: p.ShortForecast,
		})
	}
	return periods, nil
}

func (w *WeatherClient) fetch(ctx context.Context, url string) (*nwsForecast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create forecast request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json")
	req.Header.Set("User-Agent", "vestaboard-server")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing forecast response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast response: %w", err)
	}

	var parsed nwsForecast
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}
	return &parsed, nil
}
