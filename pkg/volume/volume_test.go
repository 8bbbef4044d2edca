package volume

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// grayStack writes depth slices whose value encodes z, with a marker pixel at the top-left
func grayStack(t *testing.T, dir string, w, h, depth int) {
	t.Helper()
	for z := 0; z < depth; z++ {
		img := image.NewGray(image.Rect(0, 0, w, h))
		for i := range img.Pix {
			img.Pix[i] = uint8(10 * (z + 1))
		}
		img.SetGray(0, 0, color.Gray{Y: 255})
		writePNG(t, filepath.Join(dir, fmt.Sprintf("slice_%d.png", z+1)), img)
	}
}

func TestNewValidates(t *testing.T) {
	_, err := New(0, 1, 1, 1)
	assert.Error(t, err)
	_, err = New(1, 1, 1, 2)
	assert.Error(t, err)

	v, err := New(4, 3, 2, 3)
	require.NoError(t, err)
	assert.Len(t, v.Data, 4*3*2*3)
	assert.Equal(t, 24, v.Voxels())
}

func TestIndexLayout(t *testing.T) {
	v, err := New(4, 3, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index(0, 0, 0))
	assert.Equal(t, 1, v.Index(1, 0, 0))
	assert.Equal(t, 4, v.Index(0, 1, 0))
	assert.Equal(t, 12, v.Index(0, 0, 1))

	v.Set(3, 2, 1, 77)
	assert.Equal(t, []uint8{77}, v.At(3, 2, 1))
	assert.Equal(t, uint8(77), v.Data[len(v.Data)-1])
}

func TestVoxelAtAndSample(t *testing.T) {
	v, err := New(4, 4, 4, 1)
	require.NoError(t, err)
	v.Set(3, 0, 2, 255)

	x, y, z := v.VoxelAt(r3.Vec{X: 1, Y: 0, Z: 0.5})
	assert.Equal(t, []int{3, 0, 2}, []int{x, y, z})

	x, y, z = v.VoxelAt(r3.Vec{X: -0.1, Y: 0.26, Z: 1.5})
	assert.Equal(t, []int{0, 1, 3}, []int{x, y, z})

	assert.Equal(t, []float64{1}, v.Sample(r3.Vec{X: 0.9, Y: 0.1, Z: 0.6}))
	assert.Equal(t, []float64{0}, v.Sample(r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}))
}

func TestAspect(t *testing.T) {
	v, err := New(256, 128, 64, 1)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1, Y: 0.5, Z: 0.25}, v.Aspect())
}

func TestStats(t *testing.T) {
	v, err := New(2, 1, 2, 1)
	require.NoError(t, err)
	copy(v.Data, []uint8{0, 255, 0, 255})

	s := v.Stats()
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 1.0, s.Max)
	assert.InDelta(t, 0.5, s.Mean, 1e-12)
	assert.Greater(t, s.StdDev, 0.0)
}

func TestGenerateRGBGrid(t *testing.T) {
	v, err := GenerateRGBGrid(16, 16, 16, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Channels)

	// colour follows position, odd checker cells are halved
	assert.Equal(t, []uint8{0, 0, 0}, v.At(0, 0, 0))
	assert.Equal(t, []uint8{127, 127, 127}, v.At(15, 15, 15))
	assert.Equal(t, []uint8{127, 0, 0}, v.At(15, 0, 0))
	assert.Equal(t, uint8(51), v.At(3, 0, 0)[0])
	assert.Equal(t, uint8(34), v.At(4, 0, 0)[0])

	_, err = GenerateRGBGrid(0, 1, 1, 4)
	assert.Error(t, err)
}

func TestLoadStackDir(t *testing.T) {
	dir := t.TempDir()
	grayStack(t, dir, 5, 4, 12)

	v, err := Load(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, 5, v.Width)
	assert.Equal(t, 4, v.Height)
	assert.Equal(t, 12, v.Depth)
	assert.Equal(t, 1, v.Channels)

	// numeric ordering puts slice_10 after slice_9
	assert.Equal(t, uint8(10), v.At(2, 2, 0)[0])
	assert.Equal(t, uint8(100), v.At(2, 2, 9)[0])
	assert.Equal(t, uint8(120), v.At(2, 2, 11)[0])

	// the top image row is the highest y
	assert.Equal(t, uint8(255), v.At(0, 3, 0)[0])
	assert.Equal(t, uint8(10), v.At(0, 0, 0)[0])
}

func TestLoadStackGlobAndColor(t *testing.T) {
	dir := t.TempDir()
	for z := 0; z < 3; z++ {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				img.Set(x, y, color.RGBA{R: uint8(z * 50), G: 20, B: 200, A: 255})
			}
		}
		writePNG(t, filepath.Join(dir, fmt.Sprintf("img%02d.png", z)), img)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	v, err := Load(filepath.Join(dir, "*.png"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, v.Channels)
	assert.Equal(t, 3, v.Depth)
	assert.Equal(t, []uint8{100, 20, 200}, v.At(1, 1, 2))
}

func TestLoadStackSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a1.png"), image.NewGray(image.Rect(0, 0, 4, 4)))
	writePNG(t, filepath.Join(dir, "a2.png"), image.NewGray(image.Rect(0, 0, 3, 4)))

	_, err := Load(dir, Options{})
	assert.Error(t, err)
}

func TestLoadStackEmpty(t *testing.T) {
	_, err := Load(t.TempDir(), Options{})
	assert.Error(t, err)
}

func TestLoadRaw(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 4*3*2)
	for i := range data {
		data[i] = byte(i)
	}

	named := filepath.Join(dir, "head_4x3x2.raw")
	require.NoError(t, os.WriteFile(named, data, 0644))
	v, err := Load(named, Options{})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, []int{v.Width, v.Height, v.Depth})
	assert.Equal(t, uint8(23), v.At(3, 2, 1)[0])

	plain := filepath.Join(dir, "grid.bin")
	require.NoError(t, os.WriteFile(plain, data, 0644))
	_, err = Load(plain, Options{})
	assert.Error(t, err, "no dimensions available")

	v, err = Load(plain, Options{RawDims: [3]int{2, 2, 2}, RawChannels: 3})
	require.NoError(t, err)
	assert.Equal(t, []uint8{21, 22, 23}, v.At(1, 1, 1))

	_, err = Load(plain, Options{RawDims: [3]int{5, 5, 5}})
	assert.Error(t, err, "size mismatch")
}

// TestLoadRawOversizedName rejects impossible dimensions before allocating
func TestLoadRawOversizedName(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"vol_100000x100000x100000.raw",
		"vol_4000x4000x4000.raw",
		"vol_3000000x3000000x3000000.raw",
		"vol_99999999999999999999x2x2.raw",
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0644))

		var err error
		require.NotPanics(t, func() { _, err = LoadRaw(path, Options{}) }, name)
		assert.Error(t, err, name)
	}

	_, err := LoadRaw(filepath.Join(dir, "vol_1x1x1.raw"), Options{RawDims: [3]int{2, -1, 2}})
	assert.Error(t, err)
}

func TestRawSize(t *testing.T) {
	n, err := rawSize([3]int{4, 3, 2}, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(72), n)

	_, err = rawSize([3]int{3000000, 3000000, 3000000}, 1)
	assert.Error(t, err)

	_, err = rawSize([3]int{0, 3, 2}, 1)
	assert.Error(t, err)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volume.nii")
	require.NoError(t, os.WriteFile(path, []byte{0}, 0644))

	_, err := Load(path, Options{})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), "got %v", err)

	_, err = LoadStack([]string{path})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), "got %v", err)

	_, err = Load(filepath.Join(dir, "missing.raw"), Options{})
	assert.Error(t, err)
}

func TestExtractNumber(t *testing.T) {
	tests := map[string]int{
		"slice_001.jpg":       1,
		"/data/MRI/img42.bmp": 42,
		"none.png":            0,
		"scan2_slice10.png":   10,
		"2024_03_15_s7.tif":   7,
	}
	for name, want := range tests {
		assert.Equal(t, want, extractNumber(name), name)
	}
}
