// Package niftiio loads NIfTI-1 volumes into the in-memory model the
// analysis core operates on. Only reading is needed here: the pipeline's
// outputs are a matrix and a table, not volumes.
package niftiio

import (
	"fmt"
	"math"
	"os"

	"github.com/KyungWonPark/nifti"

	"roiconnect/internal/models"
)

// LoadFunctional reads a 4D functional volume from a .nii file. A 3D file is
// accepted and treated as a single timepoint.
func LoadFunctional(path string) (*models.FunctionalVolume, error) {
	img, nx, ny, nz, nt, err := loadImage(path)
	if err != nil {
		return nil, err
	}

	vol := models.NewFunctionalVolume(nx, ny, nz, nt)
	for t := 0; t < nt; t++ {
		for z := 0; z < nz; z++ {
			for y := 0; y < ny; y++ {
				for x := 0; x < nx; x++ {
					vol.Set(x, y, z, t, float64(img.GetAt(uint32(x), uint32(y), uint32(z), uint32(t))))
				}
			}
		}
	}

	return vol, nil
}

// LoadAtlas reads a 3D label volume from a .nii file. Files with multiple
// timepoints contribute only their first volume. Off-integer voxel values
// are rounded by the sampler; NaN voxels count as background.
func LoadAtlas(path string) (*models.LabelVolume, error) {
	img, nx, ny, nz, _, err := loadImage(path)
	if err != nil {
		return nil, err
	}

	vol := models.NewLabelVolume(nx, ny, nz)
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				value := float64(img.GetAt(uint32(x), uint32(y), uint32(z), 0))
				if value < 0 && !math.IsNaN(value) {
					// Labels are non-negative by contract;
					// negative voxels count as background.
					value = 0
				}
				vol.Set(x, y, z, value)
			}
		}
	}

	return vol, nil
}

// loadImage reads a NIfTI image and validates its dimensions well enough to
// index it safely.
func loadImage(path string) (*nifti.Nifti1Image, int, int, int, int, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, 0, 0, 0, 0, fmt.Errorf("volume %s is not readable: %w", path, err)
	}

	var img nifti.Nifti1Image
	img.LoadImage(path, true)

	header := img.GetHeader()
	nx := int(header.Dim[1])
	ny := int(header.Dim[2])
	nz := int(header.Dim[3])
	nt := int(header.Dim[4])
	if header.Dim[0] < 4 || nt < 1 {
		nt = 1
	}

	if nx < 1 || ny < 1 || nz < 1 {
		return nil, 0, 0, 0, 0, fmt.Errorf("volume %s has malformed dimensions %dx%dx%d", path, nx, ny, nz)
	}

	return &img, nx, ny, nz, nt, nil
}
