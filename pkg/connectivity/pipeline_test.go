package connectivity

import (
	"math"
	"testing"

	"roiconnect/pkg/labels"
)

// TestAnalyzerEndToEnd runs the whole pipeline on a synthetic dataset with
// three regions: two carrying affinely related signals and one carrying an
// unrelated signal
func TestAnalyzerEndToEnd(t *testing.T) {
	const numTimepoints = 50

	// One region per x-column of a 3x2x1 grid, labels 3, 7, 12.
	atlas := buildAtlas(3, 2, 1, func(x, y, z int) float64 {
		return []float64{3, 7, 12}[x]
	})

	functional := buildFunctional(3, 2, 1, numTimepoints, func(x, y, z, tp int) float64 {
		signal := math.Sin(0.29 * float64(tp))
		switch x {
		case 0:
			return signal + 0.01*float64(y) // small per-voxel offset, same shape
		case 1:
			return 3*signal - 1
		default:
			return math.Mod(float64(tp)*6397.0/89.0, 1.0)
		}
	})

	dict := labels.NewDictionary(map[int]string{7: "Hippocampus"})
	analyzer := NewAnalyzer(&Params{Sensitivity: 1.0, NumCores: 2})

	result, err := analyzer.Run(functional, atlas, dict)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}
	if len(result.ROIs) != 3 || result.ROIs[0] != 3 || result.ROIs[1] != 7 || result.ROIs[2] != 12 {
		t.Fatalf("Expected ROI ids [3 7 12], got %v", result.ROIs)
	}

	t.Run("MatrixShape", func(t *testing.T) {
		rows, cols := result.Raw.Dims()
		if rows != 3 || cols != numTimepoints {
			t.Errorf("Expected 3x%d raw series, got %dx%d", numTimepoints, rows, cols)
		}
		dim, _ := result.Matrix.Dims()
		if dim != 3 {
			t.Errorf("Expected 3x3 matrix, got %dx%d", dim, dim)
		}
		for i := 0; i < dim; i++ {
			if result.Matrix.At(i, i) != 1.0 {
				t.Errorf("Expected unit diagonal at %d, got %g", i, result.Matrix.At(i, i))
			}
		}
	})

	t.Run("CorrelatedPairSelected", func(t *testing.T) {
		if got := result.Matrix.At(0, 1); math.Abs(got-1) > 1e-9 {
			t.Errorf("Expected r~1 between regions 3 and 7, got %g", got)
		}

		var sawPair bool
		for _, rec := range result.Report.Records {
			if rec.Index1 == 1 && rec.Index2 == 2 {
				sawPair = true
				if rec.Label1 != "ROI-3" {
					t.Errorf("Expected label ROI-3, got %q", rec.Label1)
				}
				if rec.Label2 != "Hippocampus" {
					t.Errorf("Expected label Hippocampus, got %q", rec.Label2)
				}
			}
		}
		if !sawPair {
			t.Errorf("Expected the (1,2) record, got %+v", result.Report.Records)
		}
	})

	t.Run("InputsNotMutated", func(t *testing.T) {
		if got := functional.At(1, 0, 0, 0); got != -1 {
			t.Errorf("Functional volume mutated: expected -1, got %g", got)
		}
		if got := atlas.At(2, 1, 0); got != 12 {
			t.Errorf("Atlas volume mutated: expected 12, got %g", got)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		again, err := NewAnalyzer(&Params{Sensitivity: 1.0, NumCores: 7}).Run(functional, atlas, dict)
		if err != nil {
			t.Fatalf("Second run failed: %v", err)
		}
		if again.Report.Threshold != result.Report.Threshold {
			t.Errorf("Threshold differs across runs: %g vs %g", again.Report.Threshold, result.Report.Threshold)
		}
		if len(again.Report.Records) != len(result.Report.Records) {
			t.Fatalf("Record counts differ across runs")
		}
		for i := range result.Report.Records {
			if again.Report.Records[i] != result.Report.Records[i] {
				t.Errorf("Record %d differs across runs", i)
			}
		}
	})
}

// TestAnalyzerFatalOnEmptyAtlas verifies an atlas with no labels aborts with
// a clearly identified error rather than an empty report
func TestAnalyzerFatalOnEmptyAtlas(t *testing.T) {
	atlas := buildAtlas(2, 2, 2, func(x, y, z int) float64 { return 0 })
	functional := buildFunctional(2, 2, 2, 4, func(x, y, z, tp int) float64 { return 1 })

	_, err := NewAnalyzer(&Params{Sensitivity: 1.0}).Run(functional, atlas, nil)
	if err == nil {
		t.Fatal("Expected an error for an atlas without labels")
	}
}
