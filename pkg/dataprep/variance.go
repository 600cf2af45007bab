package dataprep

import (
	"errors"
	"fmt"
	"math"

	"genexplore/pkg/data"
	"genexplore/pkg/stats"
)

// ErrNegativeThreshold is returned for a variance threshold below zero.
var ErrNegativeThreshold = errors.New("variance threshold must be non-negative")

// CheckThreshold reports whether threshold can be used as a variance
// threshold. NaN is rejected along with negative values.
func CheckThreshold(threshold float64) error {
	if threshold < 0 || math.IsNaN(threshold) {
		return fmt.Errorf("%w: got %v", ErrNegativeThreshold, threshold)
	}
	return nil
}

// LowVarianceFeatures returns the features of t whose sample variance is
// strictly below threshold, in column order. Features with undefined variance
// (fewer than two samples) are never reported.
func LowVarianceFeatures(t *data.Table, threshold float64) ([]string, error) {
	if err := CheckThreshold(threshold); err != nil {
		return nil, err
	}
	return lowVariance(t.Columns(), stats.ColumnVariances(t), threshold), nil
}

func lowVariance(columns []string, variances []float64, threshold float64) []string {
	low := []string{}
	for j, v := range variances {
		if v < threshold {
			low = append(low, columns[j])
		}
	}
	return low
}

// Filter returns a copy of t without the named features. Names that are not
// columns of t are ignored.
func Filter(t *data.Table, drop []string) *data.Table {
	return t.DropColumns(drop...)
}

// VarianceFilter removes near-constant features.
type VarianceFilter struct {
	Threshold float64

	columns   []string
	variances []float64
	low       []string
	fit       bool
}

// NewVarianceFilter creates a filter for the given threshold.
func NewVarianceFilter(threshold float64) (*VarianceFilter, error) {
	if err := CheckThreshold(threshold); err != nil {
		return nil, err
	}
	return &VarianceFilter{Threshold: threshold}, nil
}

// Fit computes per-feature variances and the low-variance set.
func (f *VarianceFilter) Fit(t *data.Table) error {
	if err := CheckThreshold(f.Threshold); err != nil {
		return err
	}
	f.columns = t.Columns()
	f.variances = stats.ColumnVariances(t)
	f.low = lowVariance(f.columns, f.variances, f.Threshold)
	f.fit = true
	return nil
}

// Transform drops the fitted low-variance set from t. Before Fit it returns t
// unchanged.
func (f *VarianceFilter) Transform(t *data.Table) *data.Table {
	if !f.fit {
		return t
	}
	return Filter(t, f.low)
}

func (f *VarianceFilter) FitTransform(t *data.Table) (*data.Table, error) {
	if err := f.Fit(t); err != nil {
		return nil, err
	}
	return f.Transform(t), nil
}

// LowVariance returns a copy of the fitted low-variance feature names.
func (f *VarianceFilter) LowVariance() []string {
	return append([]string{}, f.low...)
}

// Variances maps each fitted feature to its sample variance.
func (f *VarianceFilter) Variances() map[string]float64 {
	out := make(map[string]float64, len(f.columns))
	for j, c := range f.columns {
		out[c] = f.variances[j]
	}
	return out
}
