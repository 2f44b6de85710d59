package models

import (
	"math"
)

// LabelVolume represents a 3D atlas volume where each voxel carries an integer
// region label. Label 0 is background; NaN voxels are treated as background.
type LabelVolume struct {
	// Data is the 3D volume data as a 1D array in row-major order
	// (x fastest, then y, then z).
	Data []float64

	// X, Y, Z are the dimensions of the volume in voxels
	X, Y, Z int
}

// FunctionalVolume represents a 4D functional acquisition: a time series of
// 3D volumes sharing one spatial grid. Voxel values may be NaN.
type FunctionalVolume struct {
	// Data is the 4D volume data as a 1D array in row-major order with the
	// timepoint as the slowest-varying index (t, then z, then y, then x).
	Data []float64

	// X, Y, Z are the spatial dimensions in voxels
	X, Y, Z int

	// T is the number of timepoints
	T int
}

// NewLabelVolume allocates a zeroed label volume with the given dimensions.
func NewLabelVolume(x, y, z int) *LabelVolume {
	return &LabelVolume{
		Data: make([]float64, x*y*z),
		X:    x,
		Y:    y,
		Z:    z,
	}
}

// NewFunctionalVolume allocates a zeroed functional volume with the given
// dimensions.
func NewFunctionalVolume(x, y, z, t int) *FunctionalVolume {
	return &FunctionalVolume{
		Data: make([]float64, x*y*z*t),
		X:    x,
		Y:    y,
		Z:    z,
		T:    t,
	}
}

// At returns the label value at the given voxel coordinates.
func (v *LabelVolume) At(x, y, z int) float64 {
	return v.Data[z*v.X*v.Y+y*v.X+x]
}

// Set stores a label value at the given voxel coordinates.
func (v *LabelVolume) Set(x, y, z int, value float64) {
	v.Data[z*v.X*v.Y+y*v.X+x] = value
}

// LabelAt returns the integer label at the given voxel coordinates and whether
// it names a region. Background (0) and NaN voxels report false.
func (v *LabelVolume) LabelAt(x, y, z int) (int, bool) {
	value := v.At(x, y, z)
	if math.IsNaN(value) {
		return 0, false
	}
	id := int(math.Round(value))
	if id == 0 {
		return 0, false
	}
	return id, true
}

// At returns the functional value at the given voxel and timepoint.
func (v *FunctionalVolume) At(x, y, z, t int) float64 {
	return v.Data[t*v.X*v.Y*v.Z+z*v.X*v.Y+y*v.X+x]
}

// Set stores a functional value at the given voxel and timepoint.
func (v *FunctionalVolume) Set(x, y, z, t int, value float64) {
	v.Data[t*v.X*v.Y*v.Z+z*v.X*v.Y+y*v.X+x] = value
}

// SameGrid reports whether the functional volume and the label volume share
// the same spatial extent. The analysis tolerates a mismatch but warns, since
// sampling then only covers the overlapping region.
func (v *FunctionalVolume) SameGrid(atlas *LabelVolume) bool {
	return v.X == atlas.X && v.Y == atlas.Y && v.Z == atlas.Z
}
