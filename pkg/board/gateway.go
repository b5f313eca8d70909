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

package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the Vestaboard read-write API endpoint.
	DefaultBaseURL = "https://rw.vestaboard.com"

	apiKeyHeader   = "X-Vestaboard-Read-Write-Key"
	requestTimeout = 30 * time.Second
)

var ErrMalformedLayout = errors.New("malformed board layout in API response")

// defaultTransport pools connections to the board API.
var defaultTransport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ResponseHeaderTimeout: 30 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	MaxIdleConns:          10,
	IdleConnTimeout:       90 * time.Second,
}

// Gateway reads and writes the physical board over the Vestaboard read-write
// API. When debug mode is on, writes are logged as an ASCII preview instead
// of being sent to the board.
type Gateway struct {
	client  *http.Client
	baseURL string
	apiKey  string
	mu      sync.RWMutex
	debug   bool
}

// NewGateway creates a Gateway for the given API key. baseURL may be empty to
// use the production endpoint.
func NewGateway(apiKey, baseURL string) *Gateway {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Gateway{
		client: &http.Client{
			Transport: defaultTransport,
			Timeout:   requestTimeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// SetDebug toggles debug mode. Returns the new value.
func (g *Gateway) SetDebug(on bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.debug = on
	return g.debug
}

func (g *Gateway) Debug() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.debug
}

// currentMessage mirrors the relevant slice of the read API response. The
// layout field is a string containing the JSON-encoded matrix, not the matrix
// itself.
type readResponse struct {
	CurrentMessage struct {
		Layout string `json:"layout"`
	} `json:"currentMessage"`
}

// Read fetches the board's live grid.
func (g *Gateway) Read(ctx context.Context) (Grid, error) {
	var grid Grid

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, http.NoBody)
	if err != nil {
		return grid, fmt.Errorf("failed to create board read request: %w", err)
	}
	req.Header.Set(apiKeyHeader, g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return grid, fmt.Errorf("failed to read board: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing board read response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return grid, fmt.Errorf("board read returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return grid, fmt.Errorf("failed to read board response body: %w", err)
	}

	var parsed readResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return grid, fmt.Errorf("failed to parse board response: %w", err)
	}
	if parsed.CurrentMessage.Layout == "" {
		return grid, ErrMalformedLayout
	}

	var matrix [][]int
	if err := json.Unmarshal([]byte(parsed.CurrentMessage.Layout), &matrix); err != nil {
		return grid, fmt.Errorf("%w: %w", ErrMalformedLayout, err)
	}
	if len(matrix) != Rows {
		return grid, fmt.Errorf("%w: got %d rows", ErrMalformedLayout, len(matrix))
	}
	for i, row := range matrix {
		if len(row) != Cols {
			return grid, fmt.Errorf("%w: row %d has %d cells", ErrMalformedLayout, i, len(row))
		}
		copy(grid[i][:], row)
	}

	return grid, nil
}

// Write pushes a grid to the board. In debug mode the grid is logged instead.
func (g *Gateway) Write(ctx context.Context, grid Grid) error {
	if g.Debug() {
		logBoardPreview(grid)
		return nil
	}

	payload, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("failed to marshal board layout: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create board write request: %w", err)
	}
	req.Header.Set(apiKeyHeader, g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing board write response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("board write returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// WriteText encodes a payload and pushes it to the board.
func (g *Gateway) WriteText(ctx context.Context, text string) error {
	return g.Write(ctx, Encode(text))
}

// logBoardPreview renders the grid as a boxed character preview in the log so
// debug sessions can see what would have been displayed.
func logBoardPreview(grid Grid) {
	var sb strings.Builder
	sb.WriteString("\n┌" + strings.Repeat("─", Cols) + "┐\n")
	for _, row := range Decode(grid) {
		sb.WriteString("│" + row + "│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", Cols) + "┘")
	log.Info().Msgf("debug mode, board not written:%s", sb.String())
}
