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

// Package scheduler owns the mode state machine. It maps the active mode to
// a recurring cron job, renders fresh content on each tick, and reconciles
// against the board's live content before overwriting: if the board no
// longer matches the active mode's pattern, a human has taken over and the
// scheduler demotes itself to manual instead of clobbering their message.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/lokesh/vestaboard-server/pkg/board"
	"github.com/lokesh/vestaboard-server/pkg/modes"
	"github.com/lokesh/vestaboard-server/pkg/patterns"
)

// tickTimeout bounds one render-read-match-write cycle.
const tickTimeout = 60 * time.Second

// Gateway reads and writes the physical board.
type Gateway interface {
	Read(ctx context.Context) (board.Grid, error)
	Write(ctx context.Context, grid board.Grid) error
}

// ModeStore persists the active mode across restarts.
type ModeStore interface {
	CurrentMode() (modes.Mode, error)
	SaveCurrentMode(modes.Mode) error
}

// Renderer produces a mode's board payload.
type Renderer interface {
	Render(ctx context.Context) (string, error)
}

// Scheduler is the single writer to the board. All collaborators are
// injected; there is no package-level state.
type Scheduler struct {
	gateway    Gateway
	store      ModeStore
	renderers  map[modes.Mode]Renderer
	matcherFor func(modes.Mode) patterns.Matcher
	cron       *cron.Cron

	mu     sync.Mutex
	active modes.Mode
	jobs   map[modes.Mode]cron.EntryID
	// generation increments on every mode change. A tick captures the
	// generation at entry and re-checks it before writing, so a switch that
	// lands mid-tick makes the stale tick discard its result instead of
	// racing the new mode.
	generation uint64
}

// New creates a stopped Scheduler. Cron specs are evaluated in loc.
func New(
	gateway Gateway,
	store ModeStore,
	renderers map[modes.Mode]Renderer,
	loc *time.Location,
) *Scheduler {
	return &Scheduler{
		gateway:    gateway,
		store:      store,
		renderers:  renderers,
		matcherFor: patterns.For,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(&log.Logger))),
		),
		active: modes.ModeManual,
		jobs:   make(map[modes.Mode]cron.EntryID),
	}
}

// Start runs the cron loop and resumes the persisted mode, refreshing the
// board immediately if that mode is automated.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron.Start()

	mode, err := s.store.CurrentMode()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read persisted mode, starting in manual")
		return nil
	}
	if mode == modes.ModeManual {
		return nil
	}

	log.Info().Str("mode", mode.String()).Msg("resuming persisted mode")
	if err := s.SetMode(ctx, mode); err != nil {
		return fmt.Errorf("failed to resume mode %s: %w", mode, err)
	}
	return nil
}

// Stop cancels all jobs and waits for any in-flight tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.cancelJobsLocked()
	s.mu.Unlock()
	<-s.cron.Stop().Done()
}

// ActiveMode returns the mode currently driving the board.
func (s *Scheduler) ActiveMode() modes.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// InstalledJobs lists the modes with a recurring job installed. At most one
// entry exists at any time.
func (s *Scheduler) InstalledJobs() []modes.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	installed := make([]modes.Mode, 0, len(s.jobs))
	for mode := range s.jobs {
		installed = append(installed, mode)
	}
	return installed
}

// ScheduleInfo returns the fixed cadence for a mode.
func (s *Scheduler) ScheduleInfo(mode modes.Mode) (Schedule, error) {
	sched, ok := Schedules[mode]
	if !ok {
		return Schedule{}, fmt.Errorf("%w: no schedule for %q", modes.ErrInvalidMode, mode)
	}
	return sched, nil
}

// SetMode switches the active mode: every installed job is cancelled, the
// new mode is persisted, and for automated modes the board is refreshed
// immediately — without a reconciliation check, an explicit switch always
// wins — before the recurring job is installed.
func (s *Scheduler) SetMode(ctx context.Context, mode modes.Mode) error {
	if _, err := modes.Parse(mode.String()); err != nil {
		return fmt.Errorf("%w: %q", modes.ErrInvalidMode, mode)
	}

	var renderer Renderer
	if mode != modes.ModeManual {
		var ok bool
		renderer, ok = s.renderers[mode]
		if !ok {
			return fmt.Errorf("%w: no renderer for %q", modes.ErrInvalidMode, mode)
		}
	}

	s.mu.Lock()
	s.cancelJobsLocked()
	s.active = mode
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	// board behavior is primary: a broken store should not stop automation,
	// it only costs resuming the right mode after a restart
	if err := s.store.SaveCurrentMode(mode); err != nil {
		log.Error().Err(err).Str("mode", mode.String()).Msg("failed to persist mode")
	}

	log.Info().Str("mode", mode.String()).Msg("mode set")
	if mode == modes.ModeManual {
		return nil
	}

	payload, err := renderer.Render(ctx)
	if err != nil {
		return fmt.Errorf("immediate render for %s failed: %w", mode, err)
	}
	if err := s.gateway.Write(ctx, board.Encode(payload)); err != nil {
		return fmt.Errorf("immediate board update for %s failed: %w", mode, err)
	}

	return s.installJob(mode, gen)
}

func (s *Scheduler) installJob(mode modes.Mode, gen uint64) error {
	sched, ok := Schedules[mode]
	if !ok {
		return fmt.Errorf("%w: no schedule for %q", modes.ErrInvalidMode, mode)
	}

	id, err := s.cron.AddFunc(sched.Spec, func() {
		s.tick(mode, gen)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s job: %w", mode, err)
	}

	s.mu.Lock()
	if s.generation == gen {
		s.jobs[mode] = id
		s.mu.Unlock()
		return nil
	}
	// mode changed again while the job was being added
	s.mu.Unlock()
	s.cron.Remove(id)
	return nil
}

// tick is one scheduled reconciliation cycle: render fresh content, read the
// live board, check it still matches this mode's pattern, and only then
// overwrite. A render or read failure skips the cycle and leaves the job
// installed; a pattern mismatch demotes to manual.
func (s *Scheduler) tick(mode modes.Mode, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	if !s.currentGeneration(gen) {
		return
	}

	renderer := s.renderers[mode]
	payload, err := renderer.Render(ctx)
	if err != nil {
		log.Error().Err(err).Str("mode", mode.String()).Msg("render failed, board not updated")
		return
	}

	live, err := s.gateway.Read(ctx)
	if err != nil {
		// cannot tell whether the board was manually edited; skip this
		// cycle rather than guess
		log.Error().Err(err).Str("mode", mode.String()).Msg("board read failed, tick aborted")
		return
	}

	matcher := s.matcherFor(mode)
	if matcher == nil || !matcher.Matches(live) {
		s.demote(mode, gen)
		return
	}

	if !s.currentGeneration(gen) {
		log.Debug().Str("mode", mode.String()).Msg("mode changed mid-tick, result discarded")
		return
	}

	if err := s.gateway.Write(ctx, board.Encode(payload)); err != nil {
		log.Error().Err(err).Str("mode", mode.String()).Msg("board write failed")
		return
	}
	log.Debug().Str("mode", mode.String()).Msg("board updated")
}

// demote switches to manual after a reconciliation failure. The demotion is
// persisted immediately so a restart does not resurrect the automated mode
// over a manual edit.
func (s *Scheduler) demote(mode modes.Mode, gen uint64) {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return
	}
	s.cancelJobsLocked()
	s.active = modes.ModeManual
	s.generation++
	s.mu.Unlock()

	log.Info().Str("mode", mode.String()).
		Msg("board content no longer matches mode pattern, demoting to manual")

	if err := s.store.SaveCurrentMode(modes.ModeManual); err != nil {
		log.Error().Err(err).Msg("failed to persist demotion to manual")
	}
}

func (s *Scheduler) currentGeneration(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == gen
}

func (s *Scheduler) cancelJobsLocked() {
	for _, id := range s.jobs {
		s.cron.Remove(id)
	}
	s.jobs = make(map[modes.Mode]cron.EntryID)
}
