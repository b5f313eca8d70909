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

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultSunTimesURL is the free sunrise-sunset.org JSON API.
const DefaultSunTimesURL = "https://api.sunrise-sunset.org/json"

// SunTimes bounds daylight for one date. Times are in UTC from the API and
// converted by the caller's location as needed.
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
}

// SunClient fetches sunrise/sunset times for a fixed coordinate.
type SunClient struct {
	client  *http.Client
	baseURL string
	lat     float64
	lng     float64
}

func NewSunClient(baseURL string, lat, lng float64) *SunClient {
	if baseURL == "" {
		baseURL = DefaultSunTimesURL
	}
	return &SunClient{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		lat:     lat,
		lng:     lng,
	}
}

// SunTimes returns sunrise and sunset for the given date.
func (s *SunClient) SunTimes(ctx context.Context, date time.Time) (SunTimes, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", s.lat))
	q.Set("lng", fmt.Sprintf("%f", s.lng))
	q.Set("date", date.Format("2006-01-02"))
	q.Set("formatted", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return SunTimes{}, fmt.Errorf("failed to create sun times request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return SunTimes{}, fmt.Errorf("failed to fetch sun times: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing sun times response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return SunTimes{}, fmt.Errorf("sun times request returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Results struct {
			Sunrise time.Time `json:"sunrise"`
			Sunset  time.Time `json:"sunset"`
		} `json:"results"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return SunTimes{}, fmt.Errorf("failed to parse sun times response: %w", err)
	}
	if parsed.Status != "OK" {
		return SunTimes{}, fmt.Errorf("sun times request failed: %s", parsed.Status)
	}

	return SunTimes{Sunrise: parsed.Results.Sunrise, Sunset: parsed.Results.Sunset}, nil
}
