package pipeline

import (
	"fmt"

	"genexplore/pkg/data"
	"genexplore/pkg/dataprep"
	"genexplore/pkg/model"
	"genexplore/pkg/stats"
)

// Components is the number of projection axes.
const Components = 2

// Point is one row of the projected-points table.
type Point struct {
	ID         string
	Component1 float64
	Component2 float64
	Class      string
}

// Projection is the result of projecting a filtered table.
type Projection struct {
	Points         []Point
	Encoder        *dataprep.LabelEncoder
	Means          []float64
	Loadings       [][]float64 // Components x features
	Explained      []float64
	ExplainedRatio []float64
}

// Projector fits a 2-component PCA and tags each point with its class.
type Projector struct {
	// Scale standardizes features before fitting. Off by default.
	Scale bool
}

// Project encodes classes, fits the PCA on filtered and assembles the
// projected-points table. classes must be aligned with filtered's rows.
func (p *Projector) Project(filtered *data.Table, classes []string) (*Projection, error) {
	if len(classes) != filtered.Rows() {
		return nil, fmt.Errorf("%w: %d samples, %d classes", data.ErrMisaligned, filtered.Rows(), len(classes))
	}
	if filtered.Cols() < Components || filtered.Rows() < Components {
		return nil, fmt.Errorf("%w: %d samples x %d features, need at least %d x %d",
			model.ErrDimensionality, filtered.Rows(), filtered.Cols(), Components, Components)
	}

	encoder := dataprep.FitLabelEncoder(classes)
	codes, err := encoder.Encode(classes)
	if err != nil {
		return nil, err
	}

	pca := model.NewPCA(Components)
	steps := []model.Transformer{pca}
	if p.Scale {
		steps = []model.Transformer{stats.NewStandardScaler(), pca}
	}
	coords, err := model.Chain(filtered.Values(), steps...)
	if err != nil {
		return nil, fmt.Errorf("fit projection: %w", err)
	}

	points, err := assemble(filtered.Index(), coords, codes, encoder)
	if err != nil {
		return nil, err
	}
	return &Projection{
		Points:         points,
		Encoder:        encoder,
		Means:          pca.Means,
		Loadings:       pca.Components,
		Explained:      pca.Explained,
		ExplainedRatio: pca.ExplainedRatio,
	}, nil
}

// assemble joins coordinates with the decoded class of each sample.
func assemble(index []string, coords [][]float64, codes []int, encoder *dataprep.LabelEncoder) ([]Point, error) {
	decoded, err := encoder.Decode(codes)
	if err != nil {
		return nil, err
	}
	points := make([]Point, len(index))
	for i, id := range index {
		points[i] = Point{
			ID:         id,
			Component1: coords[i][0],
			Component2: coords[i][1],
			Class:      decoded[i],
		}
	}
	return points, nil
}
