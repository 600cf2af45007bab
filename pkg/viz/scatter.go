// Package viz renders projected points and exports them as CSV.
package viz

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"genexplore/pkg/pipeline"
)

// Palette is cycled over classes in order.
var Palette = []string{"#FF9999", "#66B2FF", "#99FF99", "#FFCC99", "#FF99CC"}

// Options controls chart text and size.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions matches the gene-expression exploration chart.
func DefaultOptions() Options {
	return Options{
		Title:  "PCA of Gene Expressions",
		XLabel: "Principal Component 1",
		YLabel: "Principal Component 2",
		Width:  10 * vg.Inch,
		Height: 6 * vg.Inch,
	}
}

// groupByClass returns the points of each class, in classes order.
func groupByClass(points []pipeline.Point, classes []string) [][]pipeline.Point {
	pos := make(map[string]int, len(classes))
	for i, c := range classes {
		pos[c] = i
	}
	groups := make([][]pipeline.Point, len(classes))
	for _, p := range points {
		if i, ok := pos[p.Class]; ok {
			groups[i] = append(groups[i], p)
		}
	}
	return groups
}

// NewScatterPlot builds a scatter plot with one series per class.
func NewScatterPlot(points []pipeline.Point, classes []string, o Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for k, group := range groupByClass(points, classes) {
		if len(group) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(group))
		for i, pt := range group {
			pts[i].X = pt.Component1
			pts[i].Y = pt.Component2
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", classes[k], err)
		}
		c, err := parseHex(Palette[k%len(Palette)])
		if err != nil {
			return nil, err
		}
		s.Color = c
		s.Shape = draw.CircleGlyph{}
		s.Radius = vg.Points(4)
		p.Add(s)
		p.Legend.Add(classes[k], s)
	}
	return p, nil
}

// SaveScatter renders the points to path. The format follows the file
// extension (.png, .svg, .pdf, ...).
func SaveScatter(points []pipeline.Point, classes []string, path string, o Options) error {
	p, err := NewScatterPlot(points, classes, o)
	if err != nil {
		return err
	}
	return p.Save(o.Width, o.Height, path)
}

// parseHex parses a #RRGGBB color.
func parseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
