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

// Package api exposes the control surface: thin JSON endpoints for reading
// and switching the mode, toggling debug output and inspecting the board.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lokesh/vestaboard-server/pkg/board"
	"github.com/lokesh/vestaboard-server/pkg/modes"
	"github.com/lokesh/vestaboard-server/pkg/scheduler"
)

// ModeController is the slice of the scheduler the API needs.
type ModeController interface {
	ActiveMode() modes.Mode
	SetMode(ctx context.Context, mode modes.Mode) error
	ScheduleInfo(mode modes.Mode) (scheduler.Schedule, error)
}

// BoardGateway reads the live board and owns the debug flag.
type BoardGateway interface {
	Read(ctx context.Context) (board.Grid, error)
	Debug() bool
	SetDebug(on bool) bool
}

// FlagStore persists the debug flag across restarts.
type FlagStore interface {
	SaveDebugFlag(enabled bool) error
}

type Server struct {
	controller ModeController
	gateway    BoardGateway
	flags      FlagStore
	bootID     string
}

func NewServer(controller ModeController, gateway BoardGateway, flags FlagStore) *Server {
	return &Server{
		controller: controller,
		gateway:    gateway,
		flags:      flags,
		bootID:     uuid.New().String(),
	}
}

// Handler builds the router. Mounted by the caller on its http.Server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/api/status", s.handleStatus)
	r.Get("/api/mode", s.handleGetMode)
	r.Post("/api/mode", s.handleSetMode)
	r.Get("/api/schedules", s.handleSchedules)
	r.Post("/api/debug/toggle", s.handleDebugToggle)
	r.Get("/api/board", s.handleBoard)

	return r
}

type statusResponse struct {
	CurrentMode string `json:"currentMode"`
	BootID      string `json:"bootId"`
	DebugMode   bool   `json:"debugMode"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, statusResponse{
		CurrentMode: s.controller.ActiveMode().String(),
		DebugMode:   s.gateway.Debug(),
		BootID:      s.bootID,
	})
}

func (s *Server) handleGetMode(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"currentMode": s.controller.ActiveMode().String(),
	})
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode, err := modes.Parse(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid mode")
		return
	}

	if err := s.controller.SetMode(r.Context(), mode); err != nil {
		if errors.Is(err, modes.ErrInvalidMode) {
			respondError(w, http.StatusBadRequest, "invalid mode")
			return
		}
		log.Error().Err(err).Str("mode", mode.String()).Msg("set mode failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"currentMode": mode.String()})
}

func (s *Server) handleSchedules(w http.ResponseWriter, _ *http.Request) {
	out := make(map[string]scheduler.Schedule)
	for _, mode := range modes.All() {
		sched, err := s.controller.ScheduleInfo(mode)
		if err != nil {
			continue // manual has no schedule
		}
		out[mode.String()] = sched
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleDebugToggle(w http.ResponseWriter, _ *http.Request) {
	enabled := s.gateway.SetDebug(!s.gateway.Debug())
	if err := s.flags.SaveDebugFlag(enabled); err != nil {
		log.Error().Err(err).Msg("failed to persist debug flag")
	}
	respondJSON(w, http.StatusOK, map[string]bool{"debugMode": enabled})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	grid, err := s.gateway.Read(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("board read failed")
		respondError(w, http.StatusBadGateway, "failed to read board")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"layout": grid,
		"rows":   board.Decode(grid),
	})
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}
