package pipeline

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genexplore/pkg/data"
	"genexplore/pkg/dataprep"
	"genexplore/pkg/model"
)

func mustTable(t *testing.T, index, columns []string, rows [][]float64) *data.Table {
	t.Helper()
	tbl, err := data.NewTable("id", index, columns, rows)
	require.NoError(t, err)
	return tbl
}

func mustLabels(t *testing.T, index, classes []string) *data.Labels {
	t.Helper()
	l, err := data.NewLabels("id", "Class", index, classes)
	require.NoError(t, err)
	return l
}

// twoClassDataset has 6 samples in two classes and 5 features; G1 and G2
// have variance below 0.05, G3-G5 separate the classes.
func twoClassDataset(t *testing.T) (*data.Table, *data.Labels) {
	t.Helper()
	index := []string{"s1", "s2", "s3", "s4", "s5", "s6"}
	samples := mustTable(t, index, []string{"G1", "G2", "G3", "G4", "G5"}, [][]float64{
		{0, 1.0, 1, 0, 3},
		{0, 1.1, 2, 1, 2},
		{0, 1.0, 1, 0, 3},
		{0, 1.1, 5, 4, 0},
		{0, 1.0, 6, 5, 1},
		{0.1, 1.1, 5, 4, 0},
	})
	// labels deliberately out of sample order
	labels := mustLabels(t,
		[]string{"s6", "s4", "s2", "s1", "s5", "s3"},
		[]string{"tumor", "tumor", "normal", "normal", "tumor", "normal"},
	)
	return samples, labels
}

func TestExplorerTwoClassScenario(t *testing.T) {
	samples, labels := twoClassDataset(t)

	e, err := New(samples, labels, 0.05)
	require.NoError(t, err)

	assert.Equal(t, []string{"G1", "G2"}, e.LowVarianceFeatures())
	assert.Equal(t, []string{"G3", "G4", "G5"}, e.Filtered().Columns())
	assert.Equal(t, samples.Index(), e.Filtered().Index())
	assert.Equal(t, []string{"normal", "tumor"}, e.Encoder().Classes())
	assert.Equal(t, 0.05, e.Threshold())

	points := e.Points()
	require.Len(t, points, 6)
	want := map[string]string{"s1": "normal", "s2": "normal", "s3": "normal", "s4": "tumor", "s5": "tumor", "s6": "tumor"}
	for i, p := range points {
		assert.Equal(t, samples.Index()[i], p.ID)
		assert.Equal(t, want[p.ID], p.Class, "sample %s", p.ID)
	}

	// the first component separates the classes; its sign is arbitrary
	side := func(p Point) bool { return p.Component1 > 0 }
	for _, p := range points[1:3] {
		assert.Equal(t, side(points[0]), side(p))
	}
	for _, p := range points[3:] {
		assert.NotEqual(t, side(points[0]), side(p))
	}

	ratio := e.ExplainedRatio()
	require.Len(t, ratio, Components)
	assert.GreaterOrEqual(t, ratio[0], ratio[1])
}

func TestExplorerSingleInformativeFeature(t *testing.T) {
	index := []string{"a", "b", "c", "d"}
	samples := mustTable(t, index, []string{"F1", "F2", "F3"}, [][]float64{
		{0, 1, 5},
		{0, 2, 5},
		{0, 3, 5},
		{0, 4, 5},
	})
	labels := mustLabels(t, index, []string{"x", "x", "y", "y"})

	_, err := New(samples, labels, 0.01)
	assert.ErrorIs(t, err, model.ErrDimensionality)

	fr, err := FilterStage(samples, 0.01)
	require.NoError(t, err)
	assert.Equal(t, []string{"F1", "F3"}, fr.LowVariance)
	assert.Equal(t, []string{"F2"}, fr.Filtered.Columns())
	require.Len(t, fr.Variances, 3)
	assert.Equal(t, 0.0, fr.Variances["F1"])
	assert.InDelta(t, 5.0/3.0, fr.Variances["F2"], 1e-12)
	assert.Equal(t, 0.0, fr.Variances["F3"])
}

func TestExplorerErrors(t *testing.T) {
	samples, labels := twoClassDataset(t)
	short := mustLabels(t, []string{"s1", "s2", "s3", "s4", "s5"}, []string{"a", "a", "a", "b", "b"})
	extra := mustLabels(t,
		[]string{"s1", "s2", "s3", "s4", "s5", "s6", "s7"},
		[]string{"a", "a", "a", "b", "b", "b", "b"},
	)
	one := mustTable(t, []string{"s1"}, []string{"a", "b"}, [][]float64{{1, 2}})

	tests := []struct {
		name      string
		samples   *data.Table
		labels    *data.Labels
		threshold float64
		wantErr   error
	}{
		{"negative threshold", samples, labels, -0.5, dataprep.ErrNegativeThreshold},
		{"negative threshold checked first", samples, short, -1, dataprep.ErrNegativeThreshold},
		{"unlabeled sample", samples, short, 0.05, data.ErrMisaligned},
		{"label without sample", samples, extra, 0.05, data.ErrMisaligned},
		{"everything filtered", samples, labels, 1e6, model.ErrDimensionality},
		{"single sample", one, mustLabels(t, []string{"s1"}, []string{"a"}), 0, model.ErrDimensionality},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.samples, tt.labels, tt.threshold)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, e)
		})
	}
}

func TestExplorerIdempotent(t *testing.T) {
	samples, labels := twoClassDataset(t)

	a, err := New(samples, labels, 0.05)
	require.NoError(t, err)
	b, err := New(samples, labels, 0.05)
	require.NoError(t, err)

	assert.Equal(t, a.Filtered().Values(), b.Filtered().Values())
	assert.Equal(t, a.Filtered().Columns(), b.Filtered().Columns())
	pa, pb := a.Points(), b.Points()
	require.Len(t, pb, len(pa))
	for i := range pa {
		assert.Equal(t, pa[i].ID, pb[i].ID)
		assert.Equal(t, pa[i].Class, pb[i].Class)
		assert.InDelta(t, abs(pa[i].Component1), abs(pb[i].Component1), 1e-9)
		assert.InDelta(t, abs(pa[i].Component2), abs(pb[i].Component2), 1e-9)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestExplorerAccessorsReturnCopies(t *testing.T) {
	samples, labels := twoClassDataset(t)
	e, err := New(samples, labels, 0.05)
	require.NoError(t, err)

	e.Points()[0].Class = "changed"
	e.LowVarianceFeatures()[0] = "changed"
	assert.Equal(t, "normal", e.Points()[0].Class)
	assert.Equal(t, "G1", e.LowVarianceFeatures()[0])
}

func TestExplorerOptions(t *testing.T) {
	samples, labels := twoClassDataset(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e, err := New(samples, labels, 0.05, WithLogger(logger), WithScaling(true))
	require.NoError(t, err)
	assert.Len(t, e.Points(), e.Filtered().Rows())
	assert.Contains(t, buf.String(), "filtered low-variance features")
	assert.Contains(t, buf.String(), "projected samples")
	assert.Contains(t, buf.String(), "min_kept_variance=")
}

func TestProjectorRejectsMismatchedClasses(t *testing.T) {
	samples, _ := twoClassDataset(t)
	p := &Projector{}
	_, err := p.Project(samples, []string{"a", "b"})
	assert.ErrorIs(t, err, data.ErrMisaligned)
}

func TestProjectorDimensionalityInvariant(t *testing.T) {
	samples, labels := twoClassDataset(t)
	classes, err := labels.Align(samples.Index())
	require.NoError(t, err)

	for _, scale := range []bool{false, true} {
		proj, err := (&Projector{Scale: scale}).Project(samples, classes)
		require.NoError(t, err)
		assert.Len(t, proj.Points, samples.Rows())
		assert.Len(t, proj.Loadings, Components)
		assert.Len(t, proj.Means, samples.Cols())

		codes, err := proj.Encoder.Encode(classes)
		require.NoError(t, err)
		back, err := proj.Encoder.Decode(codes)
		require.NoError(t, err)
		for i, p := range proj.Points {
			assert.Equal(t, back[i], p.Class)
		}
	}
}
