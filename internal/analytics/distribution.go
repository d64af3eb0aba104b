// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package analytics

import (
	"math"
	"slices"

	"github.com/tomtom215/reelstats/internal/dataset"
)

const (
	// DefaultHistogramBins is the runtime histogram resolution.
	DefaultHistogramBins = 20

	// densityPoints is the number of samples on the density curve.
	densityPoints = 100
)

// HistogramBin counts runtimes in [Lower, Upper). The last bin also
// includes its upper edge.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// DensityPoint is one sample of the smoothed runtime density, scaled to
// histogram counts.
type DensityPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distribution is the runtime histogram with its density overlay.
type Distribution struct {
	Bins    []HistogramBin `json:"bins"`
	Density []DensityPoint `json:"density"`
}

// RuntimeDistribution bins the present runtimes of t into equal-width
// bins spanning their range, and adds a Gaussian kernel density estimate
// using Scott's bandwidth. A single distinct runtime yields one unit-wide
// bin and no density curve.
func RuntimeDistribution(t *dataset.Table, bins int) Distribution {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	vals := present(t.Runtimes())
	dist := Distribution{Bins: []HistogramBin{}, Density: []DensityPoint{}}
	if len(vals) == 0 {
		return dist
	}

	lo, hi := slices.Min(vals), slices.Max(vals)
	if lo == hi {
		dist.Bins = append(dist.Bins, HistogramBin{Lower: lo - 0.5, Upper: hi + 0.5, Count: len(vals)})
		return dist
	}

	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range vals {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	for i, c := range counts {
		dist.Bins = append(dist.Bins, HistogramBin{
			Lower: lo + float64(i)*width,
			Upper: lo + float64(i+1)*width,
			Count: c,
		})
	}

	dist.Density = kde(vals, lo, hi, float64(len(vals))*width)
	return dist
}

// kde evaluates a Gaussian kernel density estimate over [lo, hi] and
// multiplies it by scale. Returns nil when the bandwidth collapses.
func kde(vals []float64, lo, hi, scale float64) []DensityPoint {
	n := float64(len(vals))
	bw := stddev(vals) * math.Pow(n, -0.2)
	if bw == 0 || math.IsNaN(bw) {
		return []DensityPoint{}
	}

	norm := 1 / (n * bw * math.Sqrt(2*math.Pi))
	step := (hi - lo) / float64(densityPoints-1)
	points := make([]DensityPoint, densityPoints)
	for i := range points {
		x := lo + float64(i)*step
		sum := 0.0
		for _, v := range vals {
			z := (x - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		points[i] = DensityPoint{X: x, Y: sum * norm * scale}
	}
	return points
}
