package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/YoniEastwood/AuthSim-Research/internal/runlog"
	"github.com/YoniEastwood/AuthSim-Research/internal/summary"
	"github.com/YoniEastwood/AuthSim-Research/internal/timestamp"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := kingpin.New("logsummary", "Summarize per-run performance logs (*.csv) into analysis_summary.csv.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	terminated := false
	app.Terminate(func(int) { terminated = true })
	configPath := app.Flag("config", "config file (default is $HOME/.config/logsummary/config.yml)").String()
	showVersion := app.Flag("version", "print version information").Bool()

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if terminated {
		// --help already printed usage.
		return 0
	}

	if *showVersion {
		fmt.Fprintf(stdout, "logsummary - Run Log Summary\n")
		fmt.Fprintf(stdout, "  Version:    %s\n", version)
		fmt.Fprintf(stdout, "  Commit:     %s\n", commit)
		fmt.Fprintf(stdout, "  Built:      %s\n", buildTime)
		fmt.Fprintf(stdout, "  Go version: %s\n", goVersion)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	log := newLogger(cfg, stderr)
	log.WithFields(logrus.Fields{
		"dir":     cfg.Dir,
		"pattern": cfg.Pattern,
		"output":  cfg.OutputFile,
		"config":  cfg.ConfigPath,
	}).Debug("configuration loaded")

	agg := summary.NewAggregator(summary.Config{
		Dir:        cfg.Dir,
		Pattern:    cfg.Pattern,
		OutputFile: cfg.OutputFile,
	}, runlog.NewLoader(timestamp.NewParser()), log)

	if err := agg.Run(stdout); err != nil {
		log.WithError(err).Error("summary failed")
		return 1
	}
	return 0
}

func newLogger(cfg appConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	return log
}
