package summary

import (
	"database/sql"
	"time"

	"github.com/YoniEastwood/AuthSim-Research/internal/logparse"
	"github.com/YoniEastwood/AuthSim-Research/internal/model"
	"github.com/YoniEastwood/AuthSim-Research/internal/stats"
)

const decimals = 2

// Summarize derives the summary row of one run log from its rows.
func Summarize(fileName string, rows []model.LogRow) model.SummaryRow {
	total := len(rows)

	var duration time.Duration
	if total > 0 {
		start, end := timeSpan(rows)
		duration = end.Sub(start)
	}
	durationSeconds := duration.Seconds()
	runtimeMinutes := durationSeconds / 60

	successful := logparse.CountSuccessful(rows)

	var successRate float64
	if total > 0 {
		successRate = float64(successful) / float64(total) * 100
	}

	var rate float64
	if durationSeconds > 0 {
		rate = float64(total) / durationSeconds
	}

	latencyCol, memoryCol, cpuCol := numericColumns(rows)
	latency := stats.Values(latencyCol)
	memory := stats.Values(memoryCol)
	cpu := stats.Values(cpuCol)

	return model.SummaryRow{
		FileName:       fileName,
		RuntimeMinutes: stats.Round(runtimeMinutes, decimals),
		TotalAttempts:  total,
		Successful:     successful,
		SuccessRate:    stats.Round(successRate, decimals),
		RatePerSecond:  stats.Round(rate, decimals),
		LatencyMean:    stats.Round(stats.Mean(latency), decimals),
		LatencyMedian:  stats.Round(stats.Median(latency), decimals),
		Latency90:      stats.Round(stats.Quantile(latency, 0.90), decimals),
		Latency95:      stats.Round(stats.Quantile(latency, 0.95), decimals),
		MemoryMean:     stats.Round(stats.Mean(memory), decimals),
		CPULoadMean:    stats.Round(stats.Mean(cpu), decimals),
	}
}

// timeSpan returns the earliest and latest timestamps. rows must not be empty.
func timeSpan(rows []model.LogRow) (time.Time, time.Time) {
	start, end := rows[0].Timestamp, rows[0].Timestamp
	for i := 1; i < len(rows); i++ {
		ts := rows[i].Timestamp
		if ts.Before(start) {
			start = ts
		}
		if ts.After(end) {
			end = ts
		}
	}
	return start, end
}

func numericColumns(rows []model.LogRow) (latency, memory, cpu []sql.NullFloat64) {
	latency = make([]sql.NullFloat64, len(rows))
	memory = make([]sql.NullFloat64, len(rows))
	cpu = make([]sql.NullFloat64, len(rows))
	for i := range rows {
		latency[i] = rows[i].LatencyMS
		memory[i] = rows[i].MemoryUsageMB
		cpu[i] = rows[i].CPULoadPercentage
	}
	return latency, memory, cpu
}
