package connectivity

import (
	"errors"
	"fmt"
)

// Fatal analysis errors. These are returned when the inputs are too malformed
// to index at all; an empty-but-valid result is never reported through them.
var (
	// ErrNoROIs indicates the atlas contains no non-zero, non-NaN labels,
	// so there is nothing to sample.
	ErrNoROIs = errors.New("atlas contains no ROI labels")

	// ErrEmptyVolume indicates a functional volume with no voxels or no
	// timepoints.
	ErrEmptyVolume = errors.New("functional volume is empty")

	// ErrEmptyAtlas indicates a missing label volume or one with no voxels.
	ErrEmptyAtlas = errors.New("atlas volume is empty")
)

// WarningKind enumerates the recoverable conditions the pipeline reports
// without aborting.
type WarningKind int

const (
	// WarnGridMismatch means the functional and atlas volumes do not share
	// a spatial extent; sampling proceeded over the overlapping region.
	WarnGridMismatch WarningKind = iota

	// WarnMatrixDimMismatch means the correlation matrix dimension does not
	// equal the atlas ROI count; label mapping is best-effort.
	WarnMatrixDimMismatch

	// WarnLabelSource means the label dictionary source was missing or
	// unparseable and synthetic ROI names are in use.
	WarnLabelSource

	// WarnOutputWrite means writing the report or matrix to disk failed;
	// the in-memory result is still valid.
	WarnOutputWrite
)

// String returns a short name for the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarnGridMismatch:
		return "grid-mismatch"
	case WarnMatrixDimMismatch:
		return "matrix-dim-mismatch"
	case WarnLabelSource:
		return "label-source"
	case WarnOutputWrite:
		return "output-write"
	default:
		return "unknown"
	}
}

// Warning is a recoverable condition surfaced alongside a best-effort result.
// Callers can distinguish "proceeded with a warning" from "aborted" by the
// presence of Warnings versus a non-nil error.
type Warning struct {
	Kind    WarningKind
	Message string
}

// String formats the warning for human-readable output.
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

func warnf(kind WarningKind, format string, args ...interface{}) Warning {
	return Warning{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
