// Package stats computes the descriptive statistics of a run log column.
// Aggregates over no values are NaN.
package stats

import (
	"database/sql"
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
)

// Values collects the valid entries of a column, skipping missing cells.
func Values(column []sql.NullFloat64) []float64 {
	out := make([]float64, 0, len(column))
	for _, v := range column {
		if v.Valid {
			out = append(out, v.Float64)
		}
	}
	return out
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m, err := mstats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return m
}

// Median returns the middle value, averaging the two middle values for even counts.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m, err := mstats.Median(values)
	if err != nil {
		return math.NaN()
	}
	return m
}

// Quantile returns the q-quantile (0 <= q <= 1) interpolating linearly between
// the closest ranks: h = (n-1)q, x[floor(h)] + (h-floor(h))(x[floor(h)+1]-x[floor(h)]).
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 || math.IsNaN(q) || q < 0 || q > 1 {
		return math.NaN()
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	h := float64(n-1) * q
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Round rounds v to places decimals, ties to even after scaling.
// NaN and infinities are returned unchanged.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow10(places)
	return math.RoundToEven(v*scale) / scale
}
