package timestamp

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrUnrecognized is returned when a value matches none of the known formats.
var ErrUnrecognized = errors.New("unrecognized timestamp format")

// Layouts without a zone are interpreted as UTC.
// A fractional second after the seconds field (dot or comma) is accepted by every layout.
var defaultLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"01/02/2006 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// Parser converts the timestamp cells of a run log into time values.
type Parser struct {
	layouts  []string
	location *time.Location
}

// NewParser returns a parser for ISO-8601 style timestamps and unix epoch numbers.
func NewParser() *Parser {
	return &Parser{
		layouts:  defaultLayouts,
		location: time.UTC,
	}
}

// ParseTimestamp parses one cell. Surrounding whitespace and quotes are ignored.
func (p *Parser) ParseTimestamp(value string) (time.Time, error) {
	s := strings.Trim(strings.TrimSpace(value), `"'`)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	for _, layout := range p.layouts {
		if ts, err := time.ParseInLocation(layout, s, p.location); err == nil {
			return ts, nil
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return parseUnixTimestamp(f), nil
	}

	return time.Time{}, errors.Wrapf(ErrUnrecognized, "%q", s)
}

// parseUnixTimestamp picks the epoch unit from the magnitude of the value.
func parseUnixTimestamp(v float64) time.Time {
	abs := math.Abs(v)
	switch {
	case abs > 1e15:
		return time.Unix(0, int64(v)).UTC()
	case abs > 1e12:
		return time.UnixMicro(int64(v)).UTC()
	case abs > 1e10:
		return time.UnixMilli(int64(v)).UTC()
	default:
		sec, frac := math.Modf(v)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC()
	}
}
