// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

// Package dashboard renders an analytics.Report: metric cards, SVG
// charts and the HTML page. It formats numbers but derives none.
package dashboard

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/tomtom215/reelstats/internal/analytics"
)

// NotAvailable is shown wherever a statistic has no values.
const NotAvailable = "N/A"

// Card is one headline metric.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Cards returns the four metric cards in display order.
func Cards(s analytics.Summary) []Card {
	return []Card{
		{Label: "Total Movies", Value: strconv.Itoa(s.Count)},
		{Label: "Avg Rating", Value: FormatRating(s.AvgRating)},
		{Label: "Median Revenue", Value: FormatMillions(s.MedianGross)},
		{Label: "Avg Runtime", Value: FormatRuntime(s.AvgRuntime)},
	}
}

// FormatRating renders a rating with one decimal, e.g. "⭐ 8.3".
func FormatRating(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("⭐ %.1f", *v)
}

// FormatMillions renders revenue in millions, e.g. "💰 $28.3M".
func FormatMillions(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("💰 $%.1fM", *v/1e6)
}

// FormatRuntime renders whole minutes, truncated, e.g. "⏱️ 142 min".
func FormatRuntime(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("⏱️ %d min", int(*v))
}

// FormatGross renders a table cell in full dollars, e.g. "$28,341,469".
func FormatGross(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return "$" + humanize.Comma(int64(math.Round(*v)))
}

// FormatScore renders a table rating cell.
func FormatScore(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

// shortMoney renders axis labels: $950, $12K, $3.4M, $1.2B.
func shortMoney(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return "$" + trimFloat(v/1e9) + "B"
	case abs >= 1e6:
		return "$" + trimFloat(v/1e6) + "M"
	case abs >= 1e3:
		return "$" + trimFloat(v/1e3) + "K"
	default:
		return "$" + trimFloat(v)
	}
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
