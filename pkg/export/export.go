// Package export writes analysis outputs to disk: the thresholded pair
// report as a delimited table and the correlation matrix in NumPy .npy
// format for downstream numeric tooling.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/kshedden/gonpy"
	"gonum.org/v1/gonum/mat"

	"roiconnect/pkg/connectivity"
)

// reportHeader is the fixed column order of the pair report table.
var reportHeader = []string{"roi_index_1", "label_1", "roi_index_2", "label_2", "correlation"}

// WriteReportCSV writes the pair records as a comma-delimited table with a
// single header row. The record order is preserved.
func WriteReportCSV(path string, records []connectivity.PairRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Index1),
			rec.Label1,
			strconv.Itoa(rec.Index2),
			rec.Label2,
			strconv.FormatFloat(rec.Correlation, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

// WriteMatrixNPY writes a matrix as a 2D float64 .npy array, row-major.
func WriteMatrixNPY(path string, m mat.Matrix) error {
	rows, cols := m.Dims()

	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data = append(data, m.At(i, j))
		}
	}

	w, err := gonpy.NewFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create npy file: %w", err)
	}
	w.Shape = []int{rows, cols}
	w.Version = 2

	if err := w.WriteFloat64(data); err != nil {
		return fmt.Errorf("failed to write npy data: %w", err)
	}
	return nil
}
