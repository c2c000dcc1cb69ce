package logparse

import (
	"database/sql"
	"regexp"
	"strings"

	"github.com/YoniEastwood/AuthSim-Research/internal/model"
)

// SuccessRegex matches the success marker anywhere in a result value, ignoring case.
var SuccessRegex = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(model.SuccessMarker))

// IsSuccess reports whether a result cell marks a successful attempt.
// Missing results never match.
func IsSuccess(result sql.NullString) bool {
	if !result.Valid {
		return false
	}
	return SuccessRegex.MatchString(result.String)
}

// CountSuccessful returns how many rows carry a successful result.
func CountSuccessful(rows []model.LogRow) int {
	n := 0
	for i := range rows {
		if IsSuccess(rows[i].Result) {
			n++
		}
	}
	return n
}

// NormalizeResult converts a result cell to a trimmed upper-case label.
// Missing results become "UNKNOWN".
func NormalizeResult(result sql.NullString) string {
	if !result.Valid {
		return "UNKNOWN"
	}
	normalized := strings.ToUpper(strings.TrimSpace(result.String))
	if normalized == "" {
		return "UNKNOWN"
	}
	return normalized
}

// ResultCounts groups rows by their normalized result label.
func ResultCounts(rows []model.LogRow) map[string]int {
	counts := make(map[string]int)
	for i := range rows {
		counts[NormalizeResult(rows[i].Result)]++
	}
	return counts
}
