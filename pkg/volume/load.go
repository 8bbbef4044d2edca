package volume

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"orthoslice/internal/models"
)

// ErrUnsupportedFormat is returned for sources that are neither an image
// stack nor a raw grid.
var ErrUnsupportedFormat = models.ErrUnsupportedFormat

var (
	imageExts = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true,
		".bmp": true, ".tif": true, ".tiff": true,
	}
	rawExts = map[string]bool{".raw": true, ".bin": true, ".vol": true}

	dimsPattern        = regexp.MustCompile(`(\d+)x(\d+)x(\d+)`)
	sliceNumberPattern = regexp.MustCompile(`(\d+)\D*$`)
)

// Options control how flat binary grids are interpreted.
type Options struct {
	// RawDims are the grid dimensions of a raw file. When zero they are
	// parsed from a WxHxD token in the file name.
	RawDims [3]int

	// RawChannels is 1 (scalar) or 3 (RGB). Zero means 1.
	RawChannels int
}

// Load reads a volume from path, which may be a directory of slice images,
// a glob pattern matching slice images, or a raw grid file.
func Load(path string, opts Options) (*Volume, error) {
	if strings.ContainsAny(path, "*?[") {
		files, err := filepath.Glob(path)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", path, err)
		}
		return LoadStack(files)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return LoadStackDir(path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if rawExts[ext] {
		return LoadRaw(path, opts)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// LoadStackDir loads every slice image in dir, ordered by the number in
// each file name.
func LoadStackDir(dir string) (*Volume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return LoadStack(files)
}

// LoadStack stacks the given slice images along z. Files are sorted by the
// number in their name so slice_2 comes before slice_10. Every image must
// have the size of the first one. The stack is RGB if any slice has colour.
func LoadStack(files []string) (*Volume, error) {
	var images []string
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		if !imageExts[ext] {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
		}
		images = append(images, f)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no slice images found")
	}

	sort.SliceStable(images, func(i, j int) bool {
		return extractNumber(images[i]) < extractNumber(images[j])
	})

	slices := make([]image.Image, 0, len(images))
	rgb := false
	for _, f := range images {
		img, err := loadImage(f)
		if err != nil {
			return nil, fmt.Errorf("failed to load image %s: %w", f, err)
		}
		if len(slices) > 0 && img.Bounds().Size() != slices[0].Bounds().Size() {
			return nil, fmt.Errorf("slice %s is %v, expected %v", f, img.Bounds().Size(), slices[0].Bounds().Size())
		}
		rgb = rgb || !isGray(img.ColorModel())
		slices = append(slices, img)
	}

	channels := 1
	if rgb {
		channels = 3
	}
	size := slices[0].Bounds().Size()
	v, err := New(size.X, size.Y, len(slices), channels)
	if err != nil {
		return nil, err
	}
	for z, img := range slices {
		v.setSlice(z, img)
	}

	logrus.WithFields(logrus.Fields{
		"component": "volume",
		"slices":    len(slices),
		"width":     v.Width,
		"height":    v.Height,
		"channels":  v.Channels,
	}).Info("loaded image stack")
	return v, nil
}

// setSlice copies img into z-slice z. Image row 0 is the top of the slice,
// which is the highest y in the volume.
func (v *Volume) setSlice(z int, img image.Image) {
	b := img.Bounds()
	for row := 0; row < v.Height; row++ {
		y := v.Height - 1 - row
		for x := 0; x < v.Width; x++ {
			c := img.At(b.Min.X+x, b.Min.Y+row)
			if v.Channels == 1 {
				g := color.GrayModel.Convert(c).(color.Gray)
				v.Set(x, y, z, g.Y)
				continue
			}
			r, g, bl, _ := c.RGBA()
			v.Set(x, y, z, uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
}

// LoadRaw reads a flat 8-bit grid. The file size must match the
// dimensions exactly; it is checked before anything is allocated.
func LoadRaw(path string, opts Options) (*Volume, error) {
	dims := opts.RawDims
	if dims == [3]int{} {
		m := dimsPattern.FindStringSubmatch(filepath.Base(path))
		if m == nil {
			return nil, fmt.Errorf("raw volume %s: dimensions not configured and no WxHxD in file name", path)
		}
		for i := range dims {
			d, err := strconv.Atoi(m[i+1])
			if err != nil {
				return nil, fmt.Errorf("raw volume %s: dimension %q: %w", path, m[i+1], err)
			}
			dims[i] = d
		}
	}
	channels := opts.RawChannels
	if channels == 0 {
		channels = 1
	}

	want, err := rawSize(dims, channels)
	if err != nil {
		return nil, fmt.Errorf("raw volume %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() != want {
		return nil, fmt.Errorf("raw volume %s: %d bytes, expected %d for %dx%dx%dx%d",
			path, info.Size(), want, dims[0], dims[1], dims[2], channels)
	}

	v, err := New(dims[0], dims[1], dims[2], channels)
	if err != nil {
		return nil, fmt.Errorf("raw volume %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) != len(v.Data) {
		return nil, fmt.Errorf("raw volume %s: changed size while reading", path)
	}
	copy(v.Data, data)

	logrus.WithFields(logrus.Fields{
		"component": "volume",
		"file":      path,
		"dims":      fmt.Sprintf("%dx%dx%d", dims[0], dims[1], dims[2]),
		"channels":  channels,
	}).Info("loaded raw volume")
	return v, nil
}

// rawSize returns the byte size of a grid, rejecting non-positive
// dimensions and products that overflow.
func rawSize(dims [3]int, channels int) (int64, error) {
	n := int64(channels)
	for _, d := range dims {
		if d <= 0 {
			return 0, fmt.Errorf("invalid volume dimensions %dx%dx%d", dims[0], dims[1], dims[2])
		}
		if n > math.MaxInt64/int64(d) {
			return 0, fmt.Errorf("volume dimensions %dx%dx%dx%d overflow", dims[0], dims[1], dims[2], channels)
		}
		n *= int64(d)
	}
	if n > math.MaxInt {
		return 0, fmt.Errorf("volume dimensions %dx%dx%dx%d overflow", dims[0], dims[1], dims[2], channels)
	}
	return n, nil
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}

func isGray(m color.Model) bool {
	return m == color.GrayModel || m == color.Gray16Model
}

// extractNumber returns the last run of digits in the file name, so
// scan2_slice10.png orders as slice 10. Names without one sort as 0.
func extractNumber(filename string) int {
	m := sliceNumberPattern.FindStringSubmatch(filepath.Base(filename))
	if m == nil {
		return 0
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return num
}
