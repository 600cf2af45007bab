package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrDimensionality is returned when the data has too few samples or features
// for the requested number of components.
var ErrDimensionality = errors.New("not enough dimensions for projection")

// PCA via thin SVD of the centered data for the top-k components.
type PCA struct {
	K              int
	Means          []float64
	Components     [][]float64 // K x p, each a unit vector
	Explained      []float64   // eigenvalues of the sample covariance
	ExplainedRatio []float64
}

// NewPCA creates and returns a new PCA model.
func NewPCA(k int) *PCA {
	return &PCA{K: k}
}

func (pca *PCA) checkShape(X [][]float64) (n, d int, err error) {
	if pca.K < 1 {
		return 0, 0, fmt.Errorf("component count must be positive, got %d", pca.K)
	}
	n = len(X)
	if n > 0 {
		d = len(X[0])
	}
	for i, row := range X {
		if len(row) != d {
			return 0, 0, fmt.Errorf("inconsistent row length at %d: expected %d, got %d", i, d, len(row))
		}
	}
	switch {
	case d == 0:
		return 0, 0, fmt.Errorf("%w: no features", ErrDimensionality)
	case d < pca.K:
		return 0, 0, fmt.Errorf("%w: %d features for %d components", ErrDimensionality, d, pca.K)
	case n < pca.K:
		return 0, 0, fmt.Errorf("%w: %d samples for %d components", ErrDimensionality, n, pca.K)
	}
	return n, d, nil
}

// Fit centers X and computes the top K principal components, ordered by
// descending explained variance. Each component is oriented so that its
// largest-magnitude loading is positive.
func (pca *PCA) Fit(X [][]float64) error {
	n, d, err := pca.checkShape(X)
	if err != nil {
		return err
	}

	pca.Means = make([]float64, d)
	for _, row := range X {
		for j, v := range row {
			pca.Means[j] += v
		}
	}
	for j := range pca.Means {
		pca.Means[j] /= float64(n)
	}
	Z := pca.center(X)

	var svd mat.SVD
	if ok := svd.Factorize(Z, mat.SVDThin); !ok {
		return errors.New("SVD factorization failed")
	}
	sv := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	total := 0.0
	for _, s := range sv {
		total += s * s
	}
	dof := float64(max(n-1, 1))

	pca.Components = make([][]float64, pca.K)
	pca.Explained = make([]float64, pca.K)
	pca.ExplainedRatio = make([]float64, pca.K)
	for k := 0; k < pca.K; k++ {
		c := make([]float64, d)
		mat.Col(c, k, &v)
		orient(c)
		pca.Components[k] = c
		pca.Explained[k] = sv[k] * sv[k] / dof
		if total > 0 {
			pca.ExplainedRatio[k] = sv[k] * sv[k] / total
		}
	}
	return nil
}

// Transform projects the input data onto the principal components.
func (pca *PCA) Transform(X [][]float64) ([][]float64, error) {
	if pca.Components == nil {
		return nil, errors.New("PCA is not fitted")
	}
	if len(X) == 0 {
		return [][]float64{}, nil
	}
	d := len(pca.Means)
	for _, row := range X {
		if len(row) != d {
			return nil, errors.New("feature count mismatch between input and training data")
		}
	}

	Z := pca.center(X)
	C := mat.NewDense(pca.K, d, nil)
	for k, c := range pca.Components {
		C.SetRow(k, c)
	}
	var P mat.Dense
	P.Mul(Z, C.T())

	out := make([][]float64, len(X))
	for i := range out {
		out[i] = mat.Row(nil, i, &P)
	}
	return out, nil
}

// FitTransform fits the model on X and returns its projection.
func (pca *PCA) FitTransform(X [][]float64) ([][]float64, error) {
	if err := pca.Fit(X); err != nil {
		return nil, err
	}
	return pca.Transform(X)
}

// center returns X minus the fitted means as a dense matrix.
func (pca *PCA) center(X [][]float64) *mat.Dense {
	Z := mat.NewDense(len(X), len(pca.Means), nil)
	for i, row := range X {
		for j, v := range row {
			Z.Set(i, j, v-pca.Means[j])
		}
	}
	return Z
}

// orient flips v in place so its largest-magnitude entry is positive.
func orient(v []float64) {
	best := 0
	for j := range v {
		if math.Abs(v[j]) > math.Abs(v[best]) {
			best = j
		}
	}
	if v[best] < 0 {
		for j := range v {
			v[j] = -v[j]
		}
	}
}
