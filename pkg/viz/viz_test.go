package viz

import (
	"bytes"
	"encoding/csv"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genexplore/pkg/pipeline"
)

var testPoints = []pipeline.Point{
	{ID: "s1", Component1: -1.5, Component2: 0.25, Class: "normal"},
	{ID: "s2", Component1: -1.25, Component2: -0.5, Class: "normal"},
	{ID: "s3", Component1: 2, Component2: 0.125, Class: "tumor"},
	{ID: "s4", Component1: 0.75, Component2: 0.125, Class: "tumor"},
}

var testClasses = []string{"normal", "tumor"}

func TestGroupByClass(t *testing.T) {
	groups := groupByClass(testPoints, []string{"tumor", "normal", "unused"})
	require.Len(t, groups, 3)
	assert.Equal(t, []pipeline.Point{testPoints[2], testPoints[3]}, groups[0])
	assert.Equal(t, []pipeline.Point{testPoints[0], testPoints[1]}, groups[1])
	assert.Empty(t, groups[2])
}

func TestParseHex(t *testing.T) {
	c, err := parseHex("#66B2FF")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x66, G: 0xB2, B: 0xFF, A: 255}, c)

	_, err = parseHex("#12345")
	assert.Error(t, err)
	_, err = parseHex("#GGGGGG")
	assert.Error(t, err)

	for _, p := range Palette {
		_, err := parseHex(p)
		assert.NoError(t, err, p)
	}
}

func TestNewScatterPlot(t *testing.T) {
	o := DefaultOptions()
	p, err := NewScatterPlot(testPoints, testClasses, o)
	require.NoError(t, err)
	assert.Equal(t, "PCA of Gene Expressions", p.Title.Text)
	assert.Equal(t, "Principal Component 1", p.X.Label.Text)
	assert.Equal(t, "Principal Component 2", p.Y.Label.Text)
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"pca.png", "pca.svg", "nested/out/pca.html"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, testPoints, testClasses, DefaultOptions()))
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, testPoints, testClasses, DefaultOptions()))
	out := buf.String()
	assert.Contains(t, out, "PCA of Gene Expressions")
	assert.Contains(t, out, "tumor")
}

func TestWritePoints(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePoints(&buf, "sample", testPoints))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(testPoints)+1)
	assert.Equal(t, []string{"sample", "Component 1", "Component 2", "Class"}, records[0])
	assert.Equal(t, []string{"s1", "-1.5", "0.25", "normal"}, records[1])
	assert.Equal(t, []string{"s4", "0.75", "0.125", "tumor"}, records[4])
}
