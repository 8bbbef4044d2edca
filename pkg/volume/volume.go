// Package volume holds the sampled 3D grid shown by the viewer and loads it
// from image stacks or flat binary files.
package volume

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// maxStatSamples bounds the number of voxels read by Stats.
const maxStatSamples = 1 << 20

// Volume is a dense 3D grid of 8-bit voxels. Data is laid out with x
// varying fastest, then y, then z, and Channels interleaved per voxel.
// y = 0 is the bottom row of the volume.
type Volume struct {
	Width    int
	Height   int
	Depth    int
	Channels int
	Data     []uint8
}

// Stats summarizes voxel intensities, averaged over channels and scaled to
// [0,1].
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// New allocates a zeroed volume.
func New(width, height, depth, channels int) (*Volume, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("invalid volume dimensions %dx%dx%d", width, height, depth)
	}
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("invalid channel count %d (must be 1 or 3)", channels)
	}
	return &Volume{
		Width:    width,
		Height:   height,
		Depth:    depth,
		Channels: channels,
		Data:     make([]uint8, width*height*depth*channels),
	}, nil
}

// Voxels returns the number of grid cells.
func (v *Volume) Voxels() int {
	return v.Width * v.Height * v.Depth
}

// Index returns the offset of the first channel of voxel (x, y, z).
func (v *Volume) Index(x, y, z int) int {
	return ((z*v.Height+y)*v.Width + x) * v.Channels
}

// At returns the channels of voxel (x, y, z). The returned slice aliases
// the volume data.
func (v *Volume) At(x, y, z int) []uint8 {
	i := v.Index(x, y, z)
	return v.Data[i : i+v.Channels]
}

// Set writes the channels of voxel (x, y, z).
func (v *Volume) Set(x, y, z int, c ...uint8) {
	copy(v.Data[v.Index(x, y, z):], c[:v.Channels])
}

// VoxelAt returns the grid cell containing the normalized texture
// coordinate t in [0,1]^3, matching nearest-neighbour texture lookup.
func (v *Volume) VoxelAt(t r3.Vec) (x, y, z int) {
	cell := func(f float64, n int) int {
		i := int(math.Floor(f * float64(n)))
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
	return cell(t.X, v.Width), cell(t.Y, v.Height), cell(t.Z, v.Depth)
}

// Sample returns the voxel channels at normalized coordinate t, scaled to
// [0,1].
func (v *Volume) Sample(t r3.Vec) []float64 {
	x, y, z := v.VoxelAt(t)
	raw := v.At(x, y, z)
	out := make([]float64, len(raw))
	for i, c := range raw {
		out[i] = float64(c) / 255
	}
	return out
}

// Aspect returns the grid dimensions scaled so the largest is 1. It is a
// natural physical extent for volumes with cubic voxels.
func (v *Volume) Aspect() r3.Vec {
	m := float64(max(v.Width, v.Height, v.Depth))
	return r3.Vec{X: float64(v.Width) / m, Y: float64(v.Height) / m, Z: float64(v.Depth) / m}
}

// Stats computes intensity statistics over at most maxStatSamples evenly
// strided voxels.
func (v *Volume) Stats() Stats {
	n := v.Voxels()
	stride := 1
	if n > maxStatSamples {
		stride = (n + maxStatSamples - 1) / maxStatSamples
	}

	values := make([]float64, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		sum := 0
		for _, c := range v.Data[i*v.Channels : (i+1)*v.Channels] {
			sum += int(c)
		}
		values = append(values, float64(sum)/float64(v.Channels)/255)
	}

	mean, std := stat.MeanStdDev(values, nil)
	return Stats{
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Mean:   mean,
		StdDev: std,
	}
}
