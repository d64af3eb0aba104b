// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

// Package cache provides a bounded, thread-safe LRU cache with optional
// TTL expiry.
//
// The analytics service keys computed reports by their normalised
// selection. The dataset is immutable after load, so entries never go
// stale; the bound only caps memory across the year-range × genre space.
//
//	c := cache.NewLRU[*analytics.Report](256, 0)
//	if r, ok := c.Get(key); ok {
//	    return r
//	}
//	c.Add(key, report)
package cache
