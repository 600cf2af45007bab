package stats

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Variance computes the unbiased sample variance (n-1 degrees of freedom).
// It is NaN for fewer than two values.
func Variance(x []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Variance(x, nil)
}

// PopVariance computes the population variance (n degrees of freedom).
func PopVariance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	_, v := stat.PopMeanVariance(x, nil)
	return v
}

// Columns is a column-addressable matrix.
type Columns interface {
	Cols() int
	Col(j int) []float64
}

// ColumnVariances returns the sample variance of every column, in column
// order. Columns are split across GOMAXPROCS workers; each worker writes only
// its own indices so the result is identical to a sequential pass.
func ColumnVariances(m Columns) []float64 {
	d := m.Cols()
	out := make([]float64, d)
	if d == 0 {
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	colsPerWorker := (d + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < d; start += colsPerWorker {
		end := min(start+colsPerWorker, d)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				out[j] = Variance(m.Col(j))
			}
		}(start, end)
	}
	wg.Wait()
	return out
}
