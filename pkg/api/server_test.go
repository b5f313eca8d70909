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

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokesh/vestaboard-server/pkg/api"
	"github.com/lokesh/vestaboard-server/pkg/board"
	"github.com/lokesh/vestaboard-server/pkg/modes"
	"github.com/lokesh/vestaboard-server/pkg/scheduler"
)

type fakeController struct {
	active  modes.Mode
	setErr  error
	lastSet modes.Mode
}

func (f *fakeController) ActiveMode() modes.Mode {
	if f.active == "" {
		return modes.ModeManual
	}
	return f.active
}

func (f *fakeController) SetMode(_ context.Context, mode modes.Mode) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.lastSet = mode
	f.active = mode
	return nil
}

func (f *fakeController) ScheduleInfo(mode modes.Mode) (scheduler.Schedule, error) {
	sched, ok := scheduler.Schedules[mode]
	if !ok {
		return scheduler.Schedule{}, modes.ErrInvalidMode
	}
	return sched, nil
}

type fakeBoardGateway struct {
	live    board.Grid
	readErr error
	debug   bool
}

func (f *fakeBoardGateway) Read(_ context.Context) (board.Grid, error) {
	return f.live, f.readErr
}

func (f *fakeBoardGateway) Debug() bool { return f.debug }

func (f *fakeBoardGateway) SetDebug(on bool) bool {
	f.debug = on
	return f.debug
}

type fakeFlagStore struct {
	saved   []bool
	saveErr error
}

func (f *fakeFlagStore) SaveDebugFlag(enabled bool) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, enabled)
	return nil
}

func newTestHandler(ctrl *fakeController, gw *fakeBoardGateway, flags *fakeFlagStore) http.Handler {
	return api.NewServer(ctrl, gw, flags).Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestStatusEndpoint(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(
		&fakeController{active: modes.ModeClock},
		&fakeBoardGateway{debug: true},
		&fakeFlagStore{},
	)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "clock", body["currentMode"])
	assert.Equal(t, true, body["debugMode"])
	assert.NotEmpty(t, body["bootId"])
}

func TestGetMode(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(&fakeController{active: modes.ModeToday}, &fakeBoardGateway{}, &fakeFlagStore{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/mode", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "today", body["currentMode"])
}

func TestSetMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		setErr     error
		wantStatus int
		wantMode   modes.Mode
	}{
		{
			name:       "valid mode",
			body:       `{"mode":"clock"}`,
			wantStatus: http.StatusOK,
			wantMode:   modes.ModeClock,
		},
		{
			name:       "case insensitive",
			body:       `{"mode":"CALENDAR"}`,
			wantStatus: http.StatusOK,
			wantMode:   modes.ModeCalendar,
		},
		{
			name:       "unknown mode",
			body:       `{"mode":"disco"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{mode`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "scheduler rejects the mode",
			body:       `{"mode":"clock"}`,
			setErr:     errors.New("render failed"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := &fakeController{setErr: tt.setErr}
			handler := newTestHandler(ctrl, &fakeBoardGateway{}, &fakeFlagStore{})

			rec, _ := doJSON(t, handler, http.MethodPost, "/api/mode", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantMode, ctrl.lastSet)
			}
		})
	}
}

func TestSetModeInvalidModeFromScheduler(t *testing.T) {
	t.Parallel()

	ctrl := &fakeController{setErr: modes.ErrInvalidMode}
	handler := newTestHandler(ctrl, &fakeBoardGateway{}, &fakeFlagStore{})

	rec, body := doJSON(t, handler, http.MethodPost, "/api/mode", `{"mode":"clock"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid mode", body["error"])
}

func TestDebugToggle(t *testing.T) {
	t.Parallel()

	gw := &fakeBoardGateway{}
	flags := &fakeFlagStore{}
	handler := newTestHandler(&fakeController{}, gw, flags)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/debug/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["debugMode"])
	assert.True(t, gw.debug)
	assert.Equal(t, []bool{true}, flags.saved)

	rec, body = doJSON(t, handler, http.MethodPost, "/api/debug/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["debugMode"])
	assert.Equal(t, []bool{true, false}, flags.saved)
}

func TestSchedulesEndpoint(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(&fakeController{}, &fakeBoardGateway{}, &fakeFlagStore{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/schedules", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body, len(modes.All())-1, "every automated mode, manual excluded")
	clock, ok := body["clock"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "* * * * *", clock["spec"])
}

func TestBoardEndpoint(t *testing.T) {
	t.Parallel()

	gw := &fakeBoardGateway{live: board.Encode("HELLO")}
	handler := newTestHandler(&fakeController{}, gw, &fakeFlagStore{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/board", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rows, ok := body["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, board.Rows)
	assert.Equal(t, "HELLO", strings.TrimSpace(rows[0].(string)))

	layout, ok := body["layout"].([]any)
	require.True(t, ok)
	assert.Len(t, layout, board.Rows)
}

func TestBoardEndpointReadFailure(t *testing.T) {
	t.Parallel()

	gw := &fakeBoardGateway{readErr: errors.New("board offline")}
	handler := newTestHandler(&fakeController{}, gw, &fakeFlagStore{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/board", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "failed to read board", body["error"])
}
