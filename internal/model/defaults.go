package model

// Shared defaults used by the CLI and the aggregator.
const (
	DefaultDir        = "."
	DefaultPattern    = "*.csv"
	DefaultOutputFile = "analysis_summary.csv"
	DefaultLogLevel   = "warn"

	// SuccessMarker is matched case-insensitively against the result column.
	SuccessMarker = "SUCCESS"
)
