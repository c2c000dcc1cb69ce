package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/YoniEastwood/AuthSim-Research/internal/model"
)

const envPrefix = "LOGSUMMARY"

// appConfig is internal runtime configuration.
// Every key has a default, so running with no config reproduces the plain
// "summarize *.csv in the working directory" behaviour.
type appConfig struct {
	Dir        string `mapstructure:"dir"`
	Pattern    string `mapstructure:"pattern"`
	OutputFile string `mapstructure:"output"`
	LogLevel   string `mapstructure:"log-level"`
	ConfigPath string `mapstructure:"-"` // not from config file
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("dir", model.DefaultDir)
	v.SetDefault("pattern", model.DefaultPattern)
	v.SetDefault("output", model.DefaultOutputFile)
	v.SetDefault("log-level", model.DefaultLogLevel)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", "logsummary", "config.yml"))
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
				return cfg, errors.Wrapf(err, "read config %s", v.ConfigFileUsed())
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decode config")
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = model.DefaultDir
	}
	if strings.TrimSpace(cfg.Pattern) == "" {
		return cfg, errors.New("invalid pattern: empty")
	}
	if _, err := filepath.Match(cfg.Pattern, ""); err != nil {
		return cfg, errors.Wrapf(err, "invalid pattern %q", cfg.Pattern)
	}
	if cfg.OutputFile == "" || cfg.OutputFile != filepath.Base(cfg.OutputFile) {
		return cfg, errors.Errorf("invalid output: %q must be a plain file name", cfg.OutputFile)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, errors.Wrap(err, "invalid log-level")
	}

	// Expand ~ in dir
	if strings.HasPrefix(cfg.Dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Dir = filepath.Join(home, cfg.Dir[2:])
		}
	}

	return cfg, nil
}
