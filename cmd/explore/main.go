// Command explore filters low-variance features from a labeled dataset and
// plots the samples on their first two principal components.
//
// Example:
//
//	explore --data data/data.csv --labels data/labels.csv --threshold 0.05 --plot output/pca.png
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"genexplore/pkg/config"
	"genexplore/pkg/data"
	"genexplore/pkg/pipeline"
	"genexplore/pkg/viz"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "explore",
		Short:         "Filter low-variance features and project samples onto two principal components",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			level, _ := cfg.Level()
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if err := run(*cfg, logger); err != nil {
				logger.Error("exploration failed", "error", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.DataPath, "data", cfg.DataPath, "sample CSV, first column is the sample identifier")
	f.StringVar(&cfg.LabelsPath, "labels", cfg.LabelsPath, "label CSV, first column is the sample identifier")
	f.StringVar(&cfg.LabelColumn, "label-column", cfg.LabelColumn, "class column in the label CSV (empty selects the only column)")
	f.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "drop features whose variance is below this value")
	f.BoolVar(&cfg.Scale, "scale", cfg.Scale, "standardize features before projection")
	f.StringVar(&cfg.PlotPath, "plot", cfg.PlotPath, "scatter plot output (.png, .svg, .pdf or .html; empty disables)")
	f.StringVar(&cfg.FilteredPath, "filtered-out", cfg.FilteredPath, "write the filtered table as CSV")
	f.StringVar(&cfg.PointsPath, "points-out", cfg.PointsPath, "write the projected points as CSV")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	return cmd
}

func run(cfg config.Config, logger *slog.Logger) error {
	samples, err := data.LoadTable(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("load samples: %w", err)
	}
	labels, err := data.LoadLabels(cfg.LabelsPath, cfg.LabelColumn)
	if err != nil {
		return fmt.Errorf("load labels: %w", err)
	}
	logger.Info("loaded dataset", "samples", samples.Rows(), "features", samples.Cols(), "labels", labels.Len())

	explorer, err := pipeline.New(samples, labels, cfg.Threshold,
		pipeline.WithLogger(logger),
		pipeline.WithScaling(cfg.Scale),
	)
	if err != nil {
		return err
	}
	filtered := explorer.Filtered()
	logger.Info("data filtered",
		"dropped", len(explorer.LowVarianceFeatures()),
		"kept", filtered.Cols(),
		"explained_ratio", explorer.ExplainedRatio(),
	)

	if cfg.FilteredPath != "" {
		if err := writeFile(cfg.FilteredPath, func(f *os.File) error { return data.WriteTable(f, filtered) }); err != nil {
			return fmt.Errorf("write filtered table: %w", err)
		}
		logger.Info("wrote filtered table", "path", cfg.FilteredPath)
	}
	if cfg.PointsPath != "" {
		points := explorer.Points()
		if err := writeFile(cfg.PointsPath, func(f *os.File) error { return viz.WritePoints(f, filtered.IDName(), points) }); err != nil {
			return fmt.Errorf("write points: %w", err)
		}
		logger.Info("wrote projected points", "path", cfg.PointsPath)
	}
	if cfg.PlotPath != "" {
		if err := viz.Save(cfg.PlotPath, explorer.Points(), explorer.Encoder().Classes(), viz.DefaultOptions()); err != nil {
			return fmt.Errorf("save plot: %w", err)
		}
		logger.Info("saved plot", "path", cfg.PlotPath)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
