package report

import (
	"math"
	"strconv"

	"github.com/YoniEastwood/AuthSim-Research/internal/model"
)

// floatFormatter renders one float cell.
type floatFormatter func(float64) string

// consoleFloat uses a fixed two decimals; NaN prints as "NaN".
func consoleFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// fileFloat uses the shortest exact form with at least one decimal ("0.0", "66.67").
// NaN is written as an empty cell.
func fileFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		s += ".0"
	}
	return s
}

// cells lays out a summary row in model.SummaryHeader order.
func cells(row model.SummaryRow, f floatFormatter) []string {
	return []string{
		row.FileName,
		f(row.RuntimeMinutes),
		strconv.Itoa(row.TotalAttempts),
		strconv.Itoa(row.Successful),
		f(row.SuccessRate),
		f(row.RatePerSecond),
		f(row.LatencyMean),
		f(row.LatencyMedian),
		f(row.Latency90),
		f(row.Latency95),
		f(row.MemoryMean),
		f(row.CPULoadMean),
	}
}
