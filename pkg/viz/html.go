package viz

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"genexplore/pkg/pipeline"
)

// NewScatterChart builds an interactive scatter chart with one series per class.
func NewScatterChart(points []pipeline.Point, classes []string, o Options) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: o.Title}),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: o.XLabel, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: o.YLabel, Type: "value"}),
	)

	for k, group := range groupByClass(points, classes) {
		if len(group) == 0 {
			continue
		}
		items := make([]opts.ScatterData, len(group))
		for i, pt := range group {
			items[i] = opts.ScatterData{
				Name:  pt.ID,
				Value: []interface{}{pt.Component1, pt.Component2},
			}
		}
		scatter.AddSeries(classes[k], items,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: Palette[k%len(Palette)]}),
		)
	}
	return scatter
}

// RenderHTML writes the chart as a standalone HTML page.
func RenderHTML(w io.Writer, points []pipeline.Point, classes []string, o Options) error {
	return NewScatterChart(points, classes, o).Render(w)
}
