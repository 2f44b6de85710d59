package connectivity

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestCorrelateSymmetryAndDiagonal verifies exact floating-point symmetry
// and a unit diagonal
func TestCorrelateSymmetryAndDiagonal(t *testing.T) {
	series := mat.NewDense(4, 6, []float64{
		1, 2, 3, 4, 5, 6,
		2, 1, 4, 3, 6, 5,
		-1, 5, 2, 8, 0, 3,
		9, 7, 5, 3, 1, -1,
	})

	fc := Correlate(series, 3)

	dim, _ := fc.Dims()
	if dim != 4 {
		t.Fatalf("Expected 4x4 matrix, got %dx%d", dim, dim)
	}

	for i := 0; i < dim; i++ {
		if got := fc.At(i, i); got != 1.0 {
			t.Errorf("Expected 1.0 on diagonal at %d, got %g", i, got)
		}
		for j := 0; j < dim; j++ {
			if fc.At(i, j) != fc.At(j, i) {
				t.Errorf("Matrix not exactly symmetric at (%d,%d)", i, j)
			}
			if v := fc.At(i, j); v < -1-1e-12 || v > 1+1e-12 {
				t.Errorf("Correlation out of range at (%d,%d): %g", i, j, v)
			}
		}
	}
}

// TestCorrelatePerfectPairs verifies affinely related rows correlate to ±1
func TestCorrelatePerfectPairs(t *testing.T) {
	base := []float64{1, 4, 2, 8, 5, 7}
	scaled := make([]float64, len(base))
	negated := make([]float64, len(base))
	for i, v := range base {
		scaled[i] = 2*v + 3
		negated[i] = -v
	}

	series := mat.NewDense(3, len(base), nil)
	series.SetRow(0, base)
	series.SetRow(1, scaled)
	series.SetRow(2, negated)

	fc := Correlate(series, 1)

	if got := fc.At(0, 1); math.Abs(got-1) > 1e-12 {
		t.Errorf("Expected r=1 for affine pair, got %g", got)
	}
	if got := fc.At(0, 2); math.Abs(got+1) > 1e-12 {
		t.Errorf("Expected r=-1 for negated pair, got %g", got)
	}
}

// TestCorrelateDegenerate verifies NaN normalization: too few timepoints and
// zero-variance rows produce NaN entries instead of panics
func TestCorrelateDegenerate(t *testing.T) {
	t.Run("SingleTimepoint", func(t *testing.T) {
		series := mat.NewDense(2, 1, []float64{3, 5})

		fc := Correlate(series, 1)

		if got := fc.At(0, 1); !math.IsNaN(got) {
			t.Errorf("Expected NaN off-diagonal for T=1, got %g", got)
		}
		if got := fc.At(0, 0); got != 1.0 {
			t.Errorf("Expected diagonal 1.0 even for T=1, got %g", got)
		}
	})

	t.Run("ZeroVarianceRow", func(t *testing.T) {
		series := mat.NewDense(2, 4, []float64{
			0, 0, 0, 0, // a standardized constant row
			1, 2, 3, 4,
		})

		fc := Correlate(series, 1)

		if got := fc.At(0, 1); !math.IsNaN(got) {
			t.Errorf("Expected NaN against zero-variance row, got %g", got)
		}
	})
}

// TestCorrelateDeterministic verifies the matrix does not depend on the
// number of workers
func TestCorrelateDeterministic(t *testing.T) {
	numROIs, numTimepoints := 9, 17
	series := mat.NewDense(numROIs, numTimepoints, nil)
	for i := 0; i < numROIs; i++ {
		for tp := 0; tp < numTimepoints; tp++ {
			series.Set(i, tp, math.Sin(float64(i*numTimepoints+tp))+float64(i%3))
		}
	}

	first := Correlate(series, 1)
	for _, workers := range []int{2, 5, 16} {
		again := Correlate(series, workers)
		for i := 0; i < numROIs; i++ {
			for j := 0; j < numROIs; j++ {
				if first.At(i, j) != again.At(i, j) {
					t.Fatalf("Matrix differs with %d workers at (%d,%d)", workers, i, j)
				}
			}
		}
	}
}
