// Package pipeline runs the exploration stages: align labels, drop
// low-variance features, project the rest onto two principal components.
package pipeline

import (
	"log/slog"
	"math"
	"slices"

	"genexplore/pkg/data"
	"genexplore/pkg/dataprep"
)

// FilterResult is the output of the filter stage.
type FilterResult struct {
	LowVariance []string
	Filtered    *data.Table
	// Variances maps every input feature to its sample variance.
	Variances map[string]float64
}

// FilterStage drops every feature of samples whose variance is below threshold.
func FilterStage(samples *data.Table, threshold float64) (*FilterResult, error) {
	f, err := dataprep.NewVarianceFilter(threshold)
	if err != nil {
		return nil, err
	}
	filtered, err := f.FitTransform(samples)
	if err != nil {
		return nil, err
	}
	return &FilterResult{
		LowVariance: f.LowVariance(),
		Filtered:    filtered,
		Variances:   f.Variances(),
	}, nil
}

// minVariance is the smallest variance among names, NaN when there are none.
func minVariance(variances map[string]float64, names []string) float64 {
	low := math.NaN()
	for _, n := range names {
		if v := variances[n]; math.IsNaN(low) || v < low {
			low = v
		}
	}
	return low
}

// Option configures an Explorer.
type Option func(*options)

type options struct {
	logger *slog.Logger
	scale  bool
}

// WithLogger sets the logger for stage summaries.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithScaling standardizes features before projection.
func WithScaling(scale bool) Option {
	return func(o *options) { o.scale = scale }
}

// Explorer holds every artifact derived from one dataset. It is immutable
// after New returns.
type Explorer struct {
	threshold  float64
	filter     *FilterResult
	projection *Projection
}

// New validates the inputs and runs the pipeline to completion. Errors match
// dataprep.ErrNegativeThreshold, data.ErrMisaligned or model.ErrDimensionality.
func New(samples *data.Table, labels *data.Labels, threshold float64, opts ...Option) (*Explorer, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	if _, err := dataprep.NewVarianceFilter(threshold); err != nil {
		return nil, err
	}
	classes, err := labels.Align(samples.Index())
	if err != nil {
		return nil, err
	}

	fr, err := FilterStage(samples, threshold)
	if err != nil {
		return nil, err
	}
	log.Debug("filtered low-variance features",
		"threshold", threshold,
		"features", samples.Cols(),
		"dropped", len(fr.LowVariance),
		"kept", fr.Filtered.Cols(),
		"min_kept_variance", minVariance(fr.Variances, fr.Filtered.Columns()),
	)

	p := &Projector{Scale: o.scale}
	proj, err := p.Project(fr.Filtered, classes)
	if err != nil {
		return nil, err
	}
	log.Debug("projected samples",
		"samples", len(proj.Points),
		"classes", proj.Encoder.Len(),
		"explained_ratio", proj.ExplainedRatio,
	)

	return &Explorer{threshold: threshold, filter: fr, projection: proj}, nil
}

// Threshold returns the configured variance threshold.
func (e *Explorer) Threshold() float64 { return e.threshold }

// LowVarianceFeatures returns the dropped feature names in column order.
func (e *Explorer) LowVarianceFeatures() []string { return slices.Clone(e.filter.LowVariance) }

// Filtered returns the sample table without low-variance features.
func (e *Explorer) Filtered() *data.Table { return e.filter.Filtered }

// Encoder returns the class mapping.
func (e *Explorer) Encoder() *dataprep.LabelEncoder { return e.projection.Encoder }

// Points returns a copy of the projected-points table.
func (e *Explorer) Points() []Point { return slices.Clone(e.projection.Points) }

// ExplainedRatio returns the fraction of variance explained by each component.
func (e *Explorer) ExplainedRatio() []float64 { return slices.Clone(e.projection.ExplainedRatio) }
