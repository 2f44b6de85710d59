// Package connectivity implements the ROI signal extraction and
// functional-connectivity reporting core: it reduces a 4D functional volume
// and a 3D labeled atlas to per-region time series, standardizes them,
// computes the full region-by-region Pearson correlation matrix, and selects
// highly correlated region pairs annotated with anatomical labels.
package connectivity

import (
	"math"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"roiconnect/internal/models"
)

// voxel identifies a single atlas grid position belonging to an ROI mask.
type voxel struct {
	x, y, z int
}

// RawSeries holds one mean-intensity time series per ROI, with rows ordered
// by ascending atlas id. IDs[i] is the atlas id of row i.
type RawSeries struct {
	// IDs is the sorted ascending list of distinct non-zero, non-NaN labels
	// found in the atlas. It defines the canonical ROI ordering used by the
	// correlation matrix and the pair report.
	IDs []int

	// Series is the R x T matrix of raw mean intensities: one row per ROI,
	// one column per timepoint.
	Series *mat.Dense
}

// Sampler reduces a 4D functional volume to one scalar time series per ROI.
type Sampler struct {
	// workers is the number of goroutines used for per-ROI averaging
	workers int
}

// NewSampler creates a sampler that extracts ROI time series using the given
// number of worker goroutines. Values below 1 fall back to all available
// cores.
func NewSampler(workers int) *Sampler {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Sampler{workers: workers}
}

// Sample determines the ROI set from the atlas and computes, for each ROI and
// each timepoint, the arithmetic mean of the functional voxels under that
// ROI's mask, ignoring NaN values. A timepoint whose mask voxels are all NaN
// (or whose mask is empty) yields NaN, which propagates downstream rather
// than failing the run.
//
// The two volumes are expected to share a spatial extent. A mismatch is
// reported as a warning and sampling proceeds over the overlapping region,
// since a best-effort result is still useful to downstream consumers.
//
// It returns ErrEmptyVolume for a functional volume with no voxels or no
// timepoints, ErrEmptyAtlas for a missing or voxel-less label volume, and
// ErrNoROIs when the atlas holds no non-zero, non-NaN labels.
func (s *Sampler) Sample(functional *models.FunctionalVolume, atlas *models.LabelVolume) (*RawSeries, []Warning, error) {
	var warnings []Warning

	if functional == nil || functional.T < 1 || functional.X*functional.Y*functional.Z == 0 {
		return nil, nil, ErrEmptyVolume
	}
	if atlas == nil || atlas.X*atlas.Y*atlas.Z == 0 {
		return nil, nil, ErrEmptyAtlas
	}

	if !functional.SameGrid(atlas) {
		warnings = append(warnings, warnf(WarnGridMismatch,
			"functional volume is %dx%dx%d but atlas is %dx%dx%d; sampling restricted to the overlap",
			functional.X, functional.Y, functional.Z, atlas.X, atlas.Y, atlas.Z))
	}

	// Build one voxel mask per distinct label. The ROI set comes from the
	// whole atlas; masks outside the functional extent simply contribute
	// nothing and the affected series degrade to NaN.
	overlapX := minInt(functional.X, atlas.X)
	overlapY := minInt(functional.Y, atlas.Y)
	overlapZ := minInt(functional.Z, atlas.Z)

	masks := make(map[int][]voxel)
	for z := 0; z < atlas.Z; z++ {
		for y := 0; y < atlas.Y; y++ {
			for x := 0; x < atlas.X; x++ {
				id, ok := atlas.LabelAt(x, y, z)
				if !ok {
					continue
				}
				if x < overlapX && y < overlapY && z < overlapZ {
					masks[id] = append(masks[id], voxel{x, y, z})
				} else if _, seen := masks[id]; !seen {
					// Label exists but lies entirely outside the
					// overlap; keep it in the ROI set with an
					// empty mask.
					masks[id] = nil
				}
			}
		}
	}

	if len(masks) == 0 {
		return nil, warnings, ErrNoROIs
	}

	ids := make([]int, 0, len(masks))
	for id := range masks {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	numROIs := len(ids)
	series := mat.NewDense(numROIs, functional.T, nil)

	// Average each ROI independently: rows are distinct, so workers write
	// to disjoint parts of the matrix and the result does not depend on
	// scheduling.
	order := make(chan int, s.workers)
	var wg sync.WaitGroup
	wg.Add(numROIs)

	for i := 0; i < s.workers; i++ {
		go func() {
			for row := range order {
				sampleROI(functional, masks[ids[row]], series, row)
				wg.Done()
			}
		}()
	}

	for row := 0; row < numROIs; row++ {
		order <- row
	}
	wg.Wait()
	close(order)

	return &RawSeries{IDs: ids, Series: series}, warnings, nil
}

// sampleROI fills one row of the series matrix with the NaN-ignoring mean of
// the masked functional voxels at each timepoint.
func sampleROI(functional *models.FunctionalVolume, mask []voxel, series *mat.Dense, row int) {
	for t := 0; t < functional.T; t++ {
		var sum float64
		var count int
		for _, v := range mask {
			value := functional.At(v.x, v.y, v.z, t)
			if math.IsNaN(value) {
				continue
			}
			sum += value
			count++
		}

		if count == 0 {
			series.Set(row, t, math.NaN())
		} else {
			series.Set(row, t, sum/float64(count))
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
