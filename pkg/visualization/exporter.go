// Package visualization writes the viewer's cross-sections to image files.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"orthoslice/internal/models"
	"orthoslice/pkg/volume"
)

// Exporter extracts axis-aligned sections from a volume and saves them.
type Exporter struct {
	vol *volume.Volume
}

// NewExporter creates an exporter over vol.
func NewExporter(vol *volume.Volume) *Exporter {
	return &Exporter{vol: vol}
}

func (e *Exporter) dim(a models.Axis) int {
	switch a {
	case models.AxisX:
		return e.vol.Width
	case models.AxisY:
		return e.vol.Height
	default:
		return e.vol.Depth
	}
}

// SectionIndex converts a normalized slice position to a voxel index along
// the plane's cut axis, matching nearest-neighbour sampling.
func (e *Exporter) SectionIndex(plane models.Plane, param float64) int {
	n := e.dim(plane.Cut())
	i := int(math.Floor(param * float64(n)))
	return max(0, min(n-1, i))
}

// ExtractSection extracts the section of plane at voxel index along its cut
// axis. The image is oriented as on screen: columns follow the plane's
// horizontal axis and row 0 is the top of its vertical axis.
func (e *Exporter) ExtractSection(plane models.Plane, index int) (image.Image, error) {
	u, v, w := plane.Axes()
	if index < 0 || index >= e.dim(w) {
		return nil, fmt.Errorf("position %d outside %s axis of size %d", index, w, e.dim(w))
	}

	nu, nv := e.dim(u), e.dim(v)
	rect := image.Rect(0, 0, nu, nv)
	var gray *image.Gray
	var rgba *image.RGBA
	if e.vol.Channels == 1 {
		gray = image.NewGray(rect)
	} else {
		rgba = image.NewRGBA(rect)
	}

	for row := 0; row < nv; row++ {
		for col := 0; col < nu; col++ {
			p := [3]int{}
			p[u], p[v], p[w] = col, nv-1-row, index
			c := e.vol.At(p[0], p[1], p[2])
			if gray != nil {
				gray.SetGray(col, row, color.Gray{Y: c[0]})
			} else {
				rgba.SetRGBA(col, row, color.RGBA{R: c[0], G: c[1], B: c[2], A: 255})
			}
		}
	}

	if gray != nil {
		return gray, nil
	}
	return rgba, nil
}

// SaveSection writes img as JPEG or PNG depending on the file extension.
func (e *Exporter) SaveSection(img image.Image, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return fmt.Errorf("%w: cannot encode %q", models.ErrUnsupportedFormat, filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	return writeSection(file, img, ext)
}

// writeSection encodes img into wc and closes it. A close error is reported
// when encoding succeeded, since it may be the failed flush of the image.
func writeSection(wc io.WriteCloser, img image.Image, ext string) (err error) {
	defer func() {
		if cerr := wc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing section image: %w", cerr)
		}
	}()

	if ext == ".png" {
		return png.Encode(wc, img)
	}
	return jpeg.Encode(wc, img, &jpeg.Options{Quality: 90})
}

// SaveSections writes the three sections currently shown for slice
// position slice into dir and returns the written paths.
func (e *Exporter) SaveSections(dir string, slice r3.Vec) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for _, plane := range models.Planes {
		idx := e.SectionIndex(plane, models.Component(slice, plane.Cut()))
		img, err := e.ExtractSection(plane, idx)
		if err != nil {
			return paths, err
		}

		name := fmt.Sprintf("section_%s_%s%03d.png", strings.ToLower(plane.String()), plane.Cut(), idx)
		path := filepath.Join(dir, name)
		if err := e.SaveSection(img, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SaveSectionSequence extracts and saves every section of plane into dir
func (e *Exporter) SaveSectionSequence(plane models.Plane, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for pos := 0; pos < e.dim(plane.Cut()); pos++ {
		img, err := e.ExtractSection(plane, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fmt.Sprintf("section_%s_%03d.jpg", strings.ToLower(plane.String()), pos))
		if err := e.SaveSection(img, filename); err != nil {
			return err
		}
	}

	return nil
}
