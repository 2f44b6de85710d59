package connectivity

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestStandardizeMoments verifies each row of the standardized output has
// mean ~0 and population standard deviation ~1
func TestStandardizeMoments(t *testing.T) {
	series := mat.NewDense(3, 5, []float64{
		1, 2, 3, 4, 5,
		10, 30, 20, 50, 40,
		-2, 0, 7, 1, -6,
	})

	out := Standardize(series)

	const tol = 1e-12
	for i := 0; i < 3; i++ {
		mean, std := RowMoments(out, i)
		if math.Abs(mean) > tol {
			t.Errorf("Row %d: expected mean ~0, got %g", i, mean)
		}
		if math.Abs(std-1) > tol {
			t.Errorf("Row %d: expected std ~1, got %g", i, std)
		}
	}
}

// TestStandardizeZeroVariance verifies a constant row becomes all-zero
// rather than Inf or NaN
func TestStandardizeZeroVariance(t *testing.T) {
	series := mat.NewDense(2, 4, []float64{
		7, 7, 7, 7,
		1, 2, 3, 4,
	})

	out := Standardize(series)

	for tp := 0; tp < 4; tp++ {
		if got := out.At(0, tp); got != 0 {
			t.Errorf("Expected zero for constant row at t=%d, got %g", tp, got)
		}
	}

	// The non-constant row is standardized normally.
	mean, std := RowMoments(out, 1)
	if math.Abs(mean) > 1e-12 || math.Abs(std-1) > 1e-12 {
		t.Errorf("Expected standardized second row, got mean=%g std=%g", mean, std)
	}
}

// TestStandardizeDoesNotMutateInput verifies the input matrix is untouched
func TestStandardizeDoesNotMutateInput(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	series := mat.NewDense(2, 3, data)

	Standardize(series)

	want := []float64{1, 2, 3, 4, 5, 6}
	for i, v := range data {
		if v != want[i] {
			t.Fatalf("Input mutated at %d: expected %g, got %g", i, want[i], v)
		}
	}
}

// TestStandardizeNaNPropagates verifies a row containing NaN stays NaN
// instead of crashing
func TestStandardizeNaNPropagates(t *testing.T) {
	series := mat.NewDense(1, 3, []float64{1, math.NaN(), 3})

	out := Standardize(series)

	for tp := 0; tp < 3; tp++ {
		if got := out.At(0, tp); !math.IsNaN(got) {
			t.Errorf("Expected NaN at t=%d, got %g", tp, got)
		}
	}
}
