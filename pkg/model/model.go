package model

// Transformer is for preprocessing and projection steps fitted on one matrix.
type Transformer interface {
	Fit(X [][]float64) error
	Transform(X [][]float64) ([][]float64, error)
	FitTransform(X [][]float64) ([][]float64, error)
}

// Chain fits each transformer on the output of the previous one and returns
// the final output.
func Chain(X [][]float64, steps ...Transformer) ([][]float64, error) {
	var err error
	for _, step := range steps {
		if X, err = step.FitTransform(X); err != nil {
			return nil, err
		}
	}
	return X, nil
}
