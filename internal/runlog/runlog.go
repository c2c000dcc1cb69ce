// Package runlog loads run log CSV files into typed rows.
package runlog

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/YoniEastwood/AuthSim-Research/internal/model"
	"github.com/YoniEastwood/AuthSim-Research/internal/timestamp"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

const utf8BOM = "\ufeff"

// missingValues are cell contents read as a missing value rather than data.
var missingValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// ParseError reports a cell that could not be converted.
// Line is the 1-based line number in the file, header included.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %q: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader reads run logs with a shared timestamp parser.
type Loader struct {
	parser *timestamp.Parser
}

// NewLoader returns a loader using parser for the timestamp column.
// A nil parser selects timestamp.NewParser().
func NewLoader(parser *timestamp.Parser) *Loader {
	if parser == nil {
		parser = timestamp.NewParser()
	}
	return &Loader{parser: parser}
}

// LoadFile opens path and parses it as a run log.
func (l *Loader) LoadFile(path string) ([]model.LogRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open run log")
	}
	defer f.Close()

	rows, err := l.Load(f)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Load parses a run log from r. The first record is the header.
func (l *Loader) Load(r io.Reader) ([]model.LogRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("no columns to parse from file")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	width := len(header)
	var rows []model.LogRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read record")
		}
		line, _ := reader.FieldPos(0)

		if len(record) > width {
			return nil, errors.Errorf("line %d: expected %d fields, saw %d", line, width, len(record))
		}

		row, err := l.parseRow(record, idx, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type columns struct {
	timestamp, result, latency, memory, cpu int
}

func columnIndex(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	found := make(map[string]int, len(model.RequiredColumns))
	for _, name := range model.RequiredColumns {
		i, ok := pos[name]
		if !ok {
			return columns{}, errors.Wrapf(ErrMissingColumn, "%q", name)
		}
		found[name] = i
	}

	return columns{
		timestamp: found[model.ColumnTimestamp],
		result:    found[model.ColumnResult],
		latency:   found[model.ColumnLatency],
		memory:    found[model.ColumnMemory],
		cpu:       found[model.ColumnCPULoad],
	}, nil
}

func (l *Loader) parseRow(record []string, idx columns, line int) (model.LogRow, error) {
	var row model.LogRow

	raw := cell(record, idx.timestamp)
	ts, err := l.parser.ParseTimestamp(raw)
	if err != nil {
		return row, &ParseError{Line: line, Column: model.ColumnTimestamp, Value: raw, Err: err}
	}
	row.Timestamp = ts

	if v := cell(record, idx.result); !isMissing(v) {
		row.Result = sql.NullString{String: v, Valid: true}
	}

	if row.LatencyMS, err = parseNumber(record, idx.latency, model.ColumnLatency, line); err != nil {
		return row, err
	}
	if row.MemoryUsageMB, err = parseNumber(record, idx.memory, model.ColumnMemory, line); err != nil {
		return row, err
	}
	if row.CPULoadPercentage, err = parseNumber(record, idx.cpu, model.ColumnCPULoad, line); err != nil {
		return row, err
	}
	return row, nil
}

// parseNumber treats a missing cell as an invalid value and anything non-numeric as an error.
func parseNumber(record []string, i int, column string, line int) (sql.NullFloat64, error) {
	raw := strings.TrimSpace(cell(record, i))
	if isMissing(raw) {
		return sql.NullFloat64{}, nil
	}
	if !isDecimal(raw) {
		return sql.NullFloat64{}, &ParseError{Line: line, Column: column, Value: raw, Err: errors.New("not a number")}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Out-of-range values come back as ±Inf with ErrRange; keep them.
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return sql.NullFloat64{}, &ParseError{Line: line, Column: column, Value: raw, Err: errors.New("not a number")}
		}
	}
	return sql.NullFloat64{Float64: v, Valid: true}, nil
}

// isDecimal accepts plain decimal notation only: optional sign, digits with
// an optional point, optional exponent. Inf, NaN spellings, hex floats and
// digit separators are rejected.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

// cell returns the field at i, or "" when a short record ends before it.
func cell(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func isMissing(v string) bool {
	_, ok := missingValues[v]
	return ok
}
