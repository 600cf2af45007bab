package viz

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"genexplore/pkg/pipeline"
)

// WritePoints writes the projected-points table as CSV with the columns
// idName, "Component 1", "Component 2" and "Class".
func WritePoints(w io.Writer, idName string, points []pipeline.Point) error {
	if idName == "" {
		idName = "id"
	}
	n := len(points)
	ids, c1, c2, cls := make([]string, n), make([]string, n), make([]string, n), make([]string, n)
	for i, p := range points {
		ids[i] = p.ID
		c1[i] = strconv.FormatFloat(p.Component1, 'g', -1, 64)
		c2[i] = strconv.FormatFloat(p.Component2, 'g', -1, 64)
		cls[i] = p.Class
	}
	df := dataframe.New(
		series.New(ids, series.String, idName),
		series.New(c1, series.String, "Component 1"),
		series.New(c2, series.String, "Component 2"),
		series.New(cls, series.String, "Class"),
	)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}

// Save renders the points to path: .html produces an interactive chart, any
// other extension is handed to gonum/plot. Parent directories are created.
func Save(path string, points []pipeline.Point, classes []string, o Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".html") {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := RenderHTML(f, points, classes, o); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return SaveScatter(points, classes, path, o)
}
