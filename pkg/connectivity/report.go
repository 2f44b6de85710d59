package connectivity

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"roiconnect/pkg/labels"
)

// PairRecord describes one matrix cell that met the correlation threshold.
// Indices are 1-based ROI ranks into the ascending atlas id list; labels are
// always non-empty, falling back to "ROI-<id>" when the dictionary has no
// name for an id.
type PairRecord struct {
	Index1      int
	Label1      string
	Index2      int
	Label2      string
	Correlation float64
}

// Report is the outcome of thresholding a functional-connectivity matrix.
type Report struct {
	// Threshold is mean + k*std over the off-diagonal entries.
	Threshold float64

	// OffDiagMean and OffDiagStd are the statistics the threshold was
	// derived from, kept for run summaries and reproducibility checks.
	OffDiagMean float64
	OffDiagStd  float64

	// Records lists the surviving cells in row-major enumeration order.
	Records []PairRecord
}

// Reporter selects and labels the ROI pairs whose correlation meets
// mean + k*std of the off-diagonal matrix entries.
type Reporter struct {
	// Sensitivity is the k in the threshold; it may be negative.
	Sensitivity float64
}

// NewReporter creates a reporter with the given sensitivity parameter.
func NewReporter(sensitivity float64) *Reporter {
	return &Reporter{Sensitivity: sensitivity}
}

// Report thresholds the connectivity matrix and resolves the surviving cells
// to atlas labels.
//
// The threshold statistics are taken over all off-diagonal entries of the
// full matrix, so each unordered pair is counted twice (once as (i,j) and
// once as (j,i)). This matches the established behavior of the pipeline this
// component replaces and is kept for compatibility; it is not the same as
// upper-triangle statistics whenever the entry count is finite. Selection is
// likewise not deduplicated: both (i,j) and (j,i) appear for a symmetric
// pair, enumerated row-major. Callers needing unique pairs must dedupe.
//
// Diagonal entries are excluded from both the statistics and the selection.
// NaN entries never meet the threshold. A matrix whose dimension differs
// from the ROI id list length produces a warning and a best-effort, clamped
// label mapping instead of an error.
func (r *Reporter) Report(fc mat.Matrix, ids []int, dict *labels.Dictionary) (*Report, []Warning) {
	var warnings []Warning

	dim, _ := fc.Dims()
	if dim != len(ids) {
		warnings = append(warnings, warnf(WarnMatrixDimMismatch,
			"correlation matrix is %dx%d but the atlas defines %d ROIs; label mapping is best-effort",
			dim, dim, len(ids)))
	}

	threshold, mean, std := offDiagonalThreshold(fc, r.Sensitivity)
	report := &Report{
		Threshold:   threshold,
		OffDiagMean: mean,
		OffDiagStd:  std,
	}

	if math.IsNaN(threshold) {
		// Fewer than two usable off-diagonal entries: nothing can be
		// selected, but the empty report is still valid.
		return report, warnings
	}

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i == j {
				continue
			}
			value := fc.At(i, j)
			if math.IsNaN(value) || value < threshold {
				continue
			}
			report.Records = append(report.Records, PairRecord{
				Index1:      i + 1,
				Label1:      resolveLabel(i, ids, dict),
				Index2:      j + 1,
				Label2:      resolveLabel(j, ids, dict),
				Correlation: value,
			})
		}
	}

	return report, warnings
}

// offDiagonalThreshold flattens the non-NaN off-diagonal entries and returns
// mean + k*std over them, using the sample standard deviation. It returns
// NaN when fewer than two entries are usable.
func offDiagonalThreshold(fc mat.Matrix, sensitivity float64) (threshold, mean, std float64) {
	dim, _ := fc.Dims()

	values := make(stats.Float64Data, 0, dim*dim-dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i == j {
				continue
			}
			if v := fc.At(i, j); !math.IsNaN(v) {
				values = append(values, v)
			}
		}
	}

	if len(values) < 2 {
		return math.NaN(), math.NaN(), math.NaN()
	}

	mean, err := values.Mean()
	if err != nil {
		return math.NaN(), math.NaN(), math.NaN()
	}
	std, err = values.StandardDeviationSample()
	if err != nil {
		return math.NaN(), mean, math.NaN()
	}

	return mean + sensitivity*std, mean, std
}

// resolveLabel maps a matrix index to an atlas id through the ascending id
// list and looks the id up in the dictionary. Out-of-range indices clamp to
// the list bounds, so a dimension mismatch still yields a usable name, and a
// missing dictionary entry synthesizes "ROI-<id>".
func resolveLabel(index int, ids []int, dict *labels.Dictionary) string {
	if len(ids) == 0 {
		return fmt.Sprintf("ROI-%d", index+1)
	}
	if index < 0 {
		index = 0
	}
	if index >= len(ids) {
		index = len(ids) - 1
	}

	id := ids[index]
	if name, ok := dict.Lookup(id); ok {
		return name
	}
	return fmt.Sprintf("ROI-%d", id)
}
