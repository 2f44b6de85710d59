package connectivity

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Correlate computes the Pearson correlation coefficient between every pair
// of ROI rows and assembles the symmetric R x R functional-connectivity
// matrix with 1.0 on the diagonal.
//
// Each off-diagonal value is computed once per unordered pair and stored
// through the symmetric backing array, so floating-point symmetry holds
// exactly instead of depending on two independent roundings.
//
// Degenerate entries are normalized rather than failing: a pair with fewer
// than two timepoints, a zero-variance row, or a row containing NaN yields
// NaN, which the downstream thresholding treats as "does not meet threshold."
//
// workers controls how many rows are correlated concurrently; values below 1
// use all available cores. Pair ordering in the result is independent of
// scheduling because every worker writes disjoint matrix cells.
func Correlate(series mat.Matrix, workers int) *mat.SymDense {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	numROIs, numTimepoints := series.Dims()
	fc := mat.NewSymDense(numROIs, nil)

	// Copy rows out once so workers share read-only slices.
	rows := make([][]float64, numROIs)
	for i := 0; i < numROIs; i++ {
		rows[i] = make([]float64, numTimepoints)
		for t := 0; t < numTimepoints; t++ {
			rows[i][t] = series.At(i, t)
		}
	}

	order := make(chan int, workers)
	var wg sync.WaitGroup
	wg.Add(numROIs)

	for w := 0; w < workers; w++ {
		go func() {
			for i := range order {
				fc.SetSym(i, i, 1.0)
				for j := i + 1; j < numROIs; j++ {
					fc.SetSym(i, j, pearson(rows[i], rows[j], numTimepoints))
				}
				wg.Done()
			}
		}()
	}

	for i := 0; i < numROIs; i++ {
		order <- i
	}
	wg.Wait()
	close(order)

	return fc
}

// pearson computes the correlation of two equal-length series, reporting NaN
// when the coefficient is undefined.
func pearson(x, y []float64, numTimepoints int) float64 {
	if numTimepoints < 2 {
		return math.NaN()
	}
	r := stat.Correlation(x, y, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}
