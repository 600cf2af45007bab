// Package config loads exploration settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"genexplore/pkg/dataprep"
)

// Config describes one exploration run.
type Config struct {
	DataPath     string  `env:"EXPLORE_DATA" envDefault:"data/data.csv"`
	LabelsPath   string  `env:"EXPLORE_LABELS" envDefault:"data/labels.csv"`
	LabelColumn  string  `env:"EXPLORE_LABEL_COLUMN" envDefault:"Class"`
	Threshold    float64 `env:"EXPLORE_THRESHOLD" envDefault:"0.05"`
	Scale        bool    `env:"EXPLORE_SCALE" envDefault:"false"`
	PlotPath     string  `env:"EXPLORE_PLOT" envDefault:"output/Exploration_pca.png"`
	FilteredPath string  `env:"EXPLORE_FILTERED_OUT"`
	PointsPath   string  `env:"EXPLORE_POINTS_OUT"`
	LogLevel     string  `env:"EXPLORE_LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataPath) == "" {
		return errors.New("data path is required")
	}
	if strings.TrimSpace(c.LabelsPath) == "" {
		return errors.New("labels path is required")
	}
	if err := dataprep.CheckThreshold(c.Threshold); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
