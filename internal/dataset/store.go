// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/reelstats/internal/logging"
	"github.com/tomtom215/reelstats/internal/metrics"
)

// Store memoizes a Loader. The first Load reads the source; every later
// call returns the same *Table (or the same error) without touching it.
//
// main owns the Store and hands the loaded Table to the HTTP layer; there
// is no package-level dataset.
type Store struct {
	loader Loader

	once  sync.Once
	table *Table
	err   error
	ready atomic.Bool
}

// NewStore wraps loader.
func NewStore(loader Loader) *Store {
	return &Store{loader: loader}
}

// Load returns the table, reading it on first use.
func (s *Store) Load(ctx context.Context) (*Table, error) {
	s.once.Do(func() {
		log := logging.WithComponent("dataset")
		start := time.Now()

		s.table, s.err = s.loader.Load(ctx)
		elapsed := time.Since(start)

		rows := 0
		if s.table != nil {
			rows = s.table.Len()
		}
		metrics.RecordDatasetLoad(s.loader.Engine(), rows, elapsed, s.err)

		if s.err != nil {
			log.Error().Err(s.err).Str("engine", s.loader.Engine()).Msg("Dataset load failed")
			return
		}
		s.ready.Store(true)
		log.Info().
			Str("engine", s.loader.Engine()).
			Int("rows", rows).
			Dur("duration", elapsed).
			Msg("Dataset loaded")
	})
	return s.table, s.err
}

// Ready reports whether a table has been loaded successfully.
func (s *Store) Ready() bool {
	return s.ready.Load()
}
