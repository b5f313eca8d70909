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
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultCalendarAPIURL is the Google Calendar v3 REST endpoint.
const DefaultCalendarAPIURL = "https://www.googleapis.com/calendar/v3"

// Event is a calendar event shaped for the renderers. Times are in the
// event's own timezone as reported by the API.
type Event struct {
	Start      time.Time
	End        time.Time
	Title      string
	CalendarID string
	AllDay     bool
}

// TokenStore persists the Google OAuth token between restarts.
type TokenStore interface {
	GoogleToken() (*oauth2.Token, error)
	SaveGoogleToken(*oauth2.Token) error
}

// CalendarClient fetches events across every calendar on the account. The
// browser-based OAuth consent flow is out of scope; the client only consumes
// a previously stored token and keeps it refreshed.
type CalendarClient struct {
	tokens  TokenStore
	clock   clockwork.Clock
	loc     *time.Location
	baseURL string
	oauth   oauth2.Config

	mu   sync.Mutex
	http *http.Client
}

func NewCalendarClient(
	clientID, clientSecret, baseURL string,
	tokens TokenStore,
	loc *time.Location,
	clock clockwork.Clock,
) *CalendarClient {
	if baseURL == "" {
		baseURL = DefaultCalendarAPIURL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CalendarClient{
		tokens:  tokens,
		clock:   clock,
		loc:     loc,
		baseURL: baseURL,
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/calendar.readonly"},
		},
	}
}

// httpClient builds an oauth2-backed client the first time it is needed so a
// missing token fails the fetch, not construction.
func (c *CalendarClient) httpClient(ctx context.Context) (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.http != nil {
		return c.http, nil
	}

	tok, err := c.tokens.GoogleToken()
	if err != nil {
		return nil, fmt.Errorf("failed to load google token: %w", err)
	}
	if tok == nil {
		return nil, fmt.Errorf("no google token stored, authorize the calendar first")
	}

	src := &persistingTokenSource{
		base:   c.oauth.TokenSource(ctx, tok),
		store:  c.tokens,
		latest: tok,
	}
	c.http = oauth2.NewClient(ctx, src)
	return c.http, nil
}

// persistingTokenSource writes refreshed tokens back to the store so a
// restart does not need a fresh consent flow.
type persistingTokenSource struct {
	base   oauth2.TokenSource
	store  TokenStore
	mu     sync.Mutex
	latest *oauth2.Token
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.base.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh google token: %w", err)
	}

	p.mu.Lock()
	changed := p.latest == nil || tok.AccessToken != p.latest.AccessToken
	p.latest = tok
	p.mu.Unlock()

	if changed {
		if err := p.store.SaveGoogleToken(tok); err != nil {
			log.Warn().Err(err).Msg("failed to persist refreshed google token")
		}
	}
	return tok, nil
}

type calendarListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Summary string `json:"summary"`
	} `json:"items"`
}

type eventTime struct {
	DateTime time.Time `json:"dateTime"`
	Date     string    `json:"date"`
}

type attendee struct {
	ResponseStatus string `json:"responseStatus"`
	Self           bool   `json:"self"`
}

type eventsResponse struct {
	Items []struct {
		Summary   string     `json:"summary"`
		Start     eventTime  `json:"start"`
		End       eventTime  `json:"end"`
		Attendees []attendee `json:"attendees"`
	} `json:"items"`
}

// UpcomingEvents returns up to max timed events across all calendars within
// the next 7 days, sorted by start time. All-day, multi-day and declined
// events are excluded.
func (c *CalendarClient) UpcomingEvents(ctx context.Context, max int) ([]Event, error) {
	client, err := c.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now().In(c.loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
	endOfWeek := startOfDay.AddDate(0, 0, 7)

	calendars, err := c.listCalendars(ctx, client)
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, calID := range calendars {
		items, err := c.listEvents(ctx, client, calID, startOfDay, endOfWeek)
		if err != nil {
			// one broken calendar should not empty the whole board
			log.Warn().Err(err).Str("calendar", calID).Msg("failed to fetch events for calendar")
			continue
		}
		for _, item := range items.Items {
			if item.Start.DateTime.IsZero() || item.End.DateTime.IsZero() {
				continue // all-day
			}
			start := item.Start.DateTime.In(c.loc)
			end := item.End.DateTime.In(c.loc)
			if start.Day() != end.Day() {
				continue // multi-day
			}
			if declined(item.Attendees) {
				continue
			}
			events = append(events, Event{
				Start:      start,
				End:        end,
				Title:      item.Summary,
				CalendarID: calID,
			})
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	if max > 0 && len(events) > max {
		events = events[:max]
	}
	return events, nil
}

// AllDayEvents returns the titles of all-day events falling on the given
// date, across all calendars. Used for holiday and birthday detection.
func (c *CalendarClient) AllDayEvents(ctx context.Context, date time.Time) ([]string, error) {
	client, err := c.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	date = date.In(c.loc)
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	calendars, err := c.listCalendars(ctx, client)
	if err != nil {
		return nil, err
	}

	var titles []string
	for _, calID := range calendars {
		items, err := c.listEvents(ctx, client, calID, dayStart, dayEnd)
		if err != nil {
			log.Warn().Err(err).Str("calendar", calID).Msg("failed to fetch all-day events for calendar")
			continue
		}
		for _, item := range items.Items {
			if item.Start.Date == "" {
				continue // timed event
			}
			titles = append(titles, item.Summary)
		}
	}
	return titles, nil
}

func (c *CalendarClient) listCalendars(ctx context.Context, client *http.Client) ([]string, error) {
	var parsed calendarListResponse
	if err := c.getJSON(ctx, client, c.baseURL+"/users/me/calendarList", &parsed); err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	ids := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

func (c *CalendarClient) listEvents(
	ctx context.Context,
	client *http.Client,
	calendarID string,
	timeMin, timeMax time.Time,
) (*eventsResponse, error) {
	q := url.Values{}
	q.Set("timeMin", timeMin.Format(time.RFC3339))
	q.Set("timeMax", timeMax.Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.baseURL, url.PathEscape(calendarID), q.Encode())
	var parsed eventsResponse
	if err := c.getJSON(ctx, client, endpoint, &parsed); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return &parsed, nil
}

func (*CalendarClient) getJSON(ctx context.Context, client *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing calendar response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func declined(attendees []attendee) bool {
	for _, a := range attendees {
		if a.Self && a.ResponseStatus == "declined" {
			return true
		}
	}
	return false
}
