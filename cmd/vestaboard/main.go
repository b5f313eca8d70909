/*
Vestaboard Server
Copyright (c) 2025 The Vestaboard Server Contributors.

This file is part of Vestaboard Server.

Vestaboard Server is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Vestaboard Server is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Vestaboard Server.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/lokesh/vestaboard-server/pkg/api"
	"github.com/lokesh/vestaboard-server/pkg/board"
	"github.com/lokesh/vestaboard-server/pkg/config"
	"github.com/lokesh/vestaboard-server/pkg/helpers"
	"github.com/lokesh/vestaboard-server/pkg/modes"
	"github.com/lokesh/vestaboard-server/pkg/render"
	"github.com/lokesh/vestaboard-server/pkg/scheduler"
	"github.com/lokesh/vestaboard-server/pkg/sources"
	"github.com/lokesh/vestaboard-server/pkg/store"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	verbose := flag.Bool("verbose", false, "also log to stderr")
	flag.Parse()

	dataDir := os.Getenv(config.CfgEnv)
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to resolve config dir: %w", err)
		}
		dataDir = filepath.Join(base, "vestaboard")
	}

	var logWriters []io.Writer
	if *verbose {
		logWriters = append(logWriters, os.Stderr)
	}
	if err := helpers.InitLogging(dataDir, logWriters); err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}

	cfg, err := config.NewConfig(dataDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	db, err := store.Open(filepath.Join(dataDir, config.StoreFile))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close store")
		}
	}()

	boardCfg := cfg.Board()
	if boardCfg.APIKey == "" {
		return errors.New("board api key is not configured")
	}
	gateway := board.NewGateway(boardCfg.APIKey, boardCfg.BaseURL)
	if debug, flagErr := db.DebugFlag(); flagErr != nil {
		log.Error().Err(flagErr).Msg("failed to read debug flag")
	} else {
		gateway.SetDebug(debug)
	}

	clock := clockwork.NewRealClock()
	weatherCfg := cfg.Weather()
	weather := sources.NewWeatherClient(
		weatherCfg.ForecastURL, weatherCfg.HourlyForecastURL, loc, clock)
	sun := sources.NewSunClient(
		weatherCfg.SunTimesURL, weatherCfg.Latitude, weatherCfg.Longitude)

	var calendar render.CalendarSource
	calCfg := cfg.Calendar()
	if calCfg.ClientID != "" {
		calendar = sources.NewCalendarClient(
			calCfg.ClientID, calCfg.ClientSecret, "", db, loc, clock)
	} else {
		log.Info().Msg("google calendar is not configured, calendar modes disabled")
	}

	renderers := render.NewSet(weather, sun, calendar, loc, clock)
	schedRenderers := make(map[modes.Mode]scheduler.Renderer, len(renderers))
	for mode, renderer := range renderers {
		schedRenderers[mode] = renderer
	}
	sched := scheduler.New(gateway, db, schedRenderers, loc)

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              cfg.Listen(),
		Handler:           api.NewServer(sched, gateway, db).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("api listening")
		if serveErr := srv.ListenAndServe(); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("api server failed: %w", serveErr)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	log.Info().Str("dataDir", dataDir).Msg("vestaboard server started")
	return g.Wait()
}
