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

// Package store persists the small amount of durable state the server needs
// across restarts: the active mode, the debug flag and the Google OAuth
// token. Backed by a single-file bbolt database.
package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/oauth2"

	"github.com/lokesh/vestaboard-server/pkg/modes"
)

const (
	bucketSettings = "settings"
	bucketAuth     = "auth"

	keyCurrentMode = "current_mode"
	keyDebugMode   = "debug_mode"
	keyGoogleToken = "google_token"
)

type Store struct {
	bdb *bolt.DB
}

// Open opens (creating if needed) the database at path and ensures the
// buckets exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketSettings, bucketAuth} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			err = fmt.Errorf("%w (also failed to close: %w)", err, closeErr)
		}
		return nil, err
	}

	return &Store{bdb: db}, nil
}

func (s *Store) Close() error {
	if err := s.bdb.Close(); err != nil {
		return fmt.Errorf("failed to close bolt database: %w", err)
	}
	return nil
}

// CurrentMode returns the persisted mode, defaulting to Manual when unset.
func (s *Store) CurrentMode() (modes.Mode, error) {
	mode := modes.ModeManual
	err := s.bdb.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSettings)).Get([]byte(keyCurrentMode))
		if v == nil {
			return nil
		}
		parsed, err := modes.Parse(string(v))
		if err != nil {
			return fmt.Errorf("stored mode %q is invalid: %w", v, err)
		}
		mode = parsed
		return nil
	})
	if err != nil {
		return modes.ModeManual, err
	}
	return mode, nil
}

func (s *Store) SaveCurrentMode(mode modes.Mode) error {
	err := s.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSettings)).Put([]byte(keyCurrentMode), []byte(mode))
	})
	if err != nil {
		return fmt.Errorf("failed to save current mode: %w", err)
	}
	return nil
}

// DebugFlag returns the persisted debug flag, defaulting to false when unset.
func (s *Store) DebugFlag() (bool, error) {
	var debug bool
	err := s.bdb.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSettings)).Get([]byte(keyDebugMode))
		debug = string(v) == "true"
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to read debug flag: %w", err)
	}
	return debug, nil
}

func (s *Store) SaveDebugFlag(enabled bool) error {
	v := "false"
	if enabled {
		v = "true"
	}
	err := s.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSettings)).Put([]byte(keyDebugMode), []byte(v))
	})
	if err != nil {
		return fmt.Errorf("failed to save debug flag: %w", err)
	}
	return nil
}

// GoogleToken returns the stored OAuth token, or nil when none is stored.
func (s *Store) GoogleToken() (*oauth2.Token, error) {
	var tok *oauth2.Token
	err := s.bdb.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketAuth)).Get([]byte(keyGoogleToken))
		if v == nil {
			return nil
		}
		var parsed oauth2.Token
		if err := json.Unmarshal(v, &parsed); err != nil {
			return fmt.Errorf("failed to unmarshal google token: %w", err)
		}
		tok = &parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tok, nil
}

func (s *Store) SaveGoogleToken(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal google token: %w", err)
	}
	err = s.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketAuth)).Put([]byte(keyGoogleToken), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save google token: %w", err)
	}
	return nil
}
