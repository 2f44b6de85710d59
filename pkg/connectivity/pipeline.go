package connectivity

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"roiconnect/internal/models"
	"roiconnect/pkg/labels"
)

// Params holds the analysis parameters.
type Params struct {
	// Sensitivity is the k in threshold = mean + k*std over the
	// off-diagonal correlations. May be negative.
	Sensitivity float64

	// NumCores specifies how many CPU cores to use for parallel ROI
	// sampling and pairwise correlation. Values below 1 use all cores.
	NumCores int

	// Verbose enables per-step progress output.
	Verbose bool
}

// Result bundles everything one analysis run derives from the two input
// volumes. Nothing in it aliases the inputs; the volumes are never modified.
type Result struct {
	// ROIs is the ascending atlas id list defining row/column order.
	ROIs []int

	// Raw is the R x T matrix of mean ROI intensities.
	Raw *mat.Dense

	// Standardized is Raw with each row z-scored across time.
	Standardized *mat.Dense

	// Matrix is the symmetric R x R Pearson correlation matrix.
	Matrix *mat.SymDense

	// Report lists the ROI pairs that met the threshold.
	Report *Report

	// Warnings collects every recoverable condition met during the run.
	Warnings []Warning
}

// Analyzer runs the full extraction and reporting pipeline:
// sampling -> standardization -> correlation -> thresholded pair report.
//
// The stages feed strictly forward; each consumes its predecessor's output
// without mutating it, so a Result can be inspected stage by stage.
type Analyzer struct {
	params *Params
}

// NewAnalyzer creates an analyzer with the provided parameters.
func NewAnalyzer(params *Params) *Analyzer {
	return &Analyzer{params: params}
}

// Run executes the pipeline on one functional volume and atlas pair. The
// dictionary may be nil or empty; labels then fall back to "ROI-<id>".
//
// Fatal errors (ErrEmptyVolume, ErrNoROIs) mean no result could be produced
// at all. Every recoverable condition is collected in Result.Warnings and
// the computation continues with a best-effort result.
func (a *Analyzer) Run(functional *models.FunctionalVolume, atlas *models.LabelVolume, dict *labels.Dictionary) (*Result, error) {
	result := &Result{}

	// Step 1: Reduce the 4D volume to one mean time series per ROI.
	a.logf("Step 1: Sampling ROI time series...\n")
	sampler := NewSampler(a.params.NumCores)
	raw, warnings, err := sampler.Sample(functional, atlas)
	if err != nil {
		return nil, fmt.Errorf("ROI sampling failed: %w", err)
	}
	result.Warnings = append(result.Warnings, warnings...)
	result.ROIs = raw.IDs
	result.Raw = raw.Series

	numROIs, numTimepoints := raw.Series.Dims()
	a.logf("Sampled %d ROIs over %d timepoints\n", numROIs, numTimepoints)

	// Step 2: Z-score each series across time.
	a.logf("Step 2: Standardizing series...\n")
	result.Standardized = Standardize(raw.Series)

	// Step 3: Full pairwise Pearson correlation.
	a.logf("Step 3: Computing correlation matrix...\n")
	result.Matrix = Correlate(result.Standardized, a.params.NumCores)

	// Step 4: Threshold and label the interesting pairs.
	a.logf("Step 4: Selecting highly correlated pairs...\n")
	reporter := NewReporter(a.params.Sensitivity)
	report, warnings := reporter.Report(result.Matrix, result.ROIs, dict)
	result.Warnings = append(result.Warnings, warnings...)
	result.Report = report

	a.logf("Threshold %.4f selected %d pair records\n", report.Threshold, len(report.Records))

	return result, nil
}

func (a *Analyzer) logf(format string, args ...interface{}) {
	if a.params != nil && a.params.Verbose {
		fmt.Printf(format, args...)
	}
}
