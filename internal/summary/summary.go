// Package summary turns a directory of run logs into a summary table.
package summary

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/YoniEastwood/AuthSim-Research/internal/logparse"
	"github.com/YoniEastwood/AuthSim-Research/internal/model"
	"github.com/YoniEastwood/AuthSim-Research/internal/report"
	"github.com/YoniEastwood/AuthSim-Research/internal/runlog"
)

// Config selects the run logs and the summary file.
type Config struct {
	Dir        string
	Pattern    string
	OutputFile string
}

// Result is the outcome of analyzing one run log: either Row or Err is set.
type Result struct {
	File string
	Row  model.SummaryRow
	Err  error
}

// OK reports whether the file was analyzed successfully.
func (r Result) OK() bool { return r.Err == nil }

// Aggregator runs the discover, analyze and report pipeline.
type Aggregator struct {
	cfg    Config
	loader *runlog.Loader
	log    logrus.FieldLogger
}

// NewAggregator returns an aggregator. Empty config fields take the model defaults.
func NewAggregator(cfg Config, loader *runlog.Loader, log logrus.FieldLogger) *Aggregator {
	if cfg.Dir == "" {
		cfg.Dir = model.DefaultDir
	}
	if cfg.Pattern == "" {
		cfg.Pattern = model.DefaultPattern
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = model.DefaultOutputFile
	}
	if loader == nil {
		loader = runlog.NewLoader(nil)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Aggregator{cfg: cfg, loader: loader, log: log}
}

// OutputPath is where the summary table is written.
func (a *Aggregator) OutputPath() string {
	return filepath.Join(a.cfg.Dir, a.cfg.OutputFile)
}

// Discover lists the run logs in lexical order.
func (a *Aggregator) Discover() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(a.cfg.Dir, a.cfg.Pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "glob %q", a.cfg.Pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// Analyze loads and summarizes one run log.
func (a *Aggregator) Analyze(path string) Result {
	name := a.displayName(path)
	start := time.Now()

	rows, err := a.loader.LoadFile(path)
	if err != nil {
		return Result{File: name, Err: err}
	}

	row := Summarize(name, rows)
	a.log.WithFields(logrus.Fields{
		"file":     name,
		"rows":     len(rows),
		"results":  logparse.ResultCounts(rows),
		"duration": time.Since(start),
	}).Debug("run log analyzed")
	return Result{File: name, Row: row}
}

// AnalyzeAll analyzes files one at a time, in order.
func (a *Aggregator) AnalyzeAll(files []string) []Result {
	results := make([]Result, 0, len(files))
	for _, f := range files {
		results = append(results, a.Analyze(f))
	}
	return results
}

// Rows returns the summary rows of the successful results, in order.
func Rows(results []Result) []model.SummaryRow {
	var rows []model.SummaryRow
	for _, r := range results {
		if r.OK() {
			rows = append(rows, r.Row)
		}
	}
	return rows
}

// Run executes the whole pipeline and writes the progress, errors and table to out.
// Per-file failures are reported to out and do not fail the run.
func (a *Aggregator) Run(out io.Writer) error {
	files, err := a.Discover()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No CSV files found in the current directory.")
		return nil
	}

	fmt.Fprintf(out, "Processing %d files...\n\n", len(files))

	results := a.AnalyzeAll(files)
	for _, r := range results {
		if !r.OK() {
			fmt.Fprintf(out, "Error analyzing %s: %v\n", r.File, r.Err)
			a.log.WithError(r.Err).WithField("file", r.File).Debug("run log skipped")
		}
	}

	rows := Rows(results)
	if len(rows) == 0 {
		return nil
	}

	if err := report.RenderTable(out, rows); err != nil {
		return err
	}
	if err := report.WriteCSVFile(a.OutputPath(), rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nResults also saved to '%s'\n", a.cfg.OutputFile)
	a.log.WithFields(logrus.Fields{
		"analyzed": len(rows),
		"failed":   len(results) - len(rows),
		"output":   a.OutputPath(),
	}).Info("summary written")
	return nil
}

func (a *Aggregator) displayName(path string) string {
	if rel, err := filepath.Rel(a.cfg.Dir, path); err == nil {
		return rel
	}
	return path
}
