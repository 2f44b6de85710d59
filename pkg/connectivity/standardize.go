package connectivity

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Standardize rescales each ROI row of the raw series to mean 0 and unit
// standard deviation across time, returning a new matrix of the same shape.
// The input is not modified.
//
// The population standard deviation (divisor T) is used throughout; since
// Pearson correlation is shift and scale invariant, the choice does not
// affect the correlation matrix, but it is fixed here for reproducibility of
// the standardized series themselves.
//
// A row with exactly zero standard deviation (constant signal) standardizes
// to an all-zero row rather than propagating Inf or NaN. Rows containing NaN
// samples keep NaN throughout, because the row mean is then undefined.
func Standardize(series mat.Matrix) *mat.Dense {
	numROIs, numTimepoints := series.Dims()
	out := mat.NewDense(numROIs, numTimepoints, nil)

	row := make([]float64, numTimepoints)
	for i := 0; i < numROIs; i++ {
		for t := 0; t < numTimepoints; t++ {
			row[t] = series.At(i, t)
		}

		mean := stat.Mean(row, nil)
		std := stat.PopStdDev(row, nil)

		if std == 0 {
			// Constant signal carries no temporal information;
			// an all-zero row keeps the matrix finite.
			for t := 0; t < numTimepoints; t++ {
				out.Set(i, t, 0)
			}
			continue
		}

		for t := 0; t < numTimepoints; t++ {
			out.Set(i, t, (row[t]-mean)/std)
		}
	}

	return out
}

// RowMoments returns the mean and population standard deviation of row i of
// the given matrix. It is used by tests and callers that want to verify the
// standardization contract.
func RowMoments(series mat.Matrix, i int) (mean, std float64) {
	_, numTimepoints := series.Dims()
	row := make([]float64, numTimepoints)
	for t := 0; t < numTimepoints; t++ {
		row[t] = series.At(i, t)
	}
	return stat.Mean(row, nil), stat.PopStdDev(row, nil)
}
