package model

import (
	"database/sql"
	"time"
)

// Required column names in a run log header.
const (
	ColumnTimestamp = "timestamp"
	ColumnResult    = "result"
	ColumnLatency   = "latencyMS"
	ColumnMemory    = "MemoryUsageMB"
	ColumnCPULoad   = "CPULoadPercentage"
)

// RequiredColumns lists the columns every run log must carry, in lookup order.
var RequiredColumns = []string{
	ColumnTimestamp,
	ColumnResult,
	ColumnLatency,
	ColumnMemory,
	ColumnCPULoad,
}

// LogRow is one attempt recorded in a run log.
// Empty cells load as invalid (missing) values.
type LogRow struct {
	Timestamp         time.Time
	Result            sql.NullString
	LatencyMS         sql.NullFloat64
	MemoryUsageMB     sql.NullFloat64
	CPULoadPercentage sql.NullFloat64
}

// SummaryRow holds the derived metrics of one run log.
// Float fields are rounded to two decimals; NaN marks an aggregate over no values.
type SummaryRow struct {
	FileName       string
	RuntimeMinutes float64
	TotalAttempts  int
	Successful     int
	SuccessRate    float64
	RatePerSecond  float64
	LatencyMean    float64
	LatencyMedian  float64
	Latency90      float64
	Latency95      float64
	MemoryMean     float64
	CPULoadMean    float64
}

// SummaryHeader is the column order of the summary table, on screen and on disk.
var SummaryHeader = []string{
	"File Name",
	"Runtime (min)",
	"Total Attempts",
	"Successful",
	"Success Rate (%)",
	"Rate (req/sec)",
	"Latency Mean",
	"Latency Median",
	"Latency 90%",
	"Latency 95%",
	"Avg Memory (MB)",
	"Avg CPU Load (%)",
}
