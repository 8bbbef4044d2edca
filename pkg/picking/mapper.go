// Package picking maps mouse positions inside the orthographic quadrants
// back to volume-local coordinates and normalized slice positions.
package picking

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"orthoslice/internal/models"
	"orthoslice/pkg/transform"
)

// Request describes a single pick.
type Request struct {
	// X and Y are the cursor position in framebuffer pixels, origin top-left.
	X, Y float64

	FramebufferWidth  int
	FramebufferHeight int

	VolumeSize    r3.Vec
	SlicePosition r3.Vec
}

// Result is the outcome of a pick inside one of the 2D quadrants.
type Result struct {
	Quadrant models.Quadrant
	Plane    models.Plane

	// Raw is the unclamped volume-local coordinate under the cursor.
	Raw r3.Vec

	// Displayed is Raw clamped to the volume bounds.
	Displayed r3.Vec

	// Inside reports whether Raw lies strictly inside the volume on the two
	// in-plane axes. The cut-axis coordinate is always on the displayed
	// section and never disqualifies a pick.
	Inside bool

	// Slice is the normalized slice position derived from Displayed. It is
	// only meaningful when Inside is true.
	Slice r3.Vec
}

// Pick maps the request's cursor into volume-local coordinates. ok is false
// when the cursor is outside the framebuffer or over the 3D quadrant.
func Pick(req Request) (res Result, ok bool) {
	q, ok := models.QuadrantAt(req.X, req.Y, req.FramebufferWidth, req.FramebufferHeight)
	if !ok {
		return Result{}, false
	}
	vp := models.Layout(req.FramebufferWidth, req.FramebufferHeight)[q]
	if vp.Is3D {
		return Result{}, false
	}

	// the same shared extent the renderer derives from the framebuffer
	aspect := float64(req.FramebufferWidth) / float64(req.FramebufferHeight)
	extent, err := transform.ResolveExtent(req.VolumeSize, aspect)
	if err != nil {
		return Result{}, false
	}

	raw := Unproject(vp, extent, req.X, req.Y, req.VolumeSize, req.SlicePosition)
	// only the in-plane axes can leave the volume; the cut axis is pinned to
	// the displayed section and sits exactly on the boundary at slice 0 or 1
	res = Result{
		Quadrant:  q,
		Plane:     vp.Plane,
		Raw:       raw,
		Displayed: Clamp(raw, req.VolumeSize),
		Inside:    insidePlane(raw, req.VolumeSize, vp.Plane),
		Slice:     req.SlicePosition,
	}
	if res.Inside {
		res.Slice = ToSlice(res.Displayed, req.VolumeSize)
	}
	return res, true
}

// Unproject inverts the orthographic mapping of a 2D viewport. The
// coordinate along the plane's cut axis is pinned to the currently displayed
// section.
func Unproject(vp models.ViewportSpec, extent transform.Extent, x, y float64, size, slice r3.Vec) r3.Vec {
	u := (x - float64(vp.Rect.X)) / float64(vp.Rect.W)
	v := (y - float64(vp.Rect.Y)) / float64(vp.Rect.H)

	w, h := extent.Width, extent.Height
	pin := func(a models.Axis) float64 {
		return transform.SliceOffset(models.Component(slice, a), models.Component(size, a))
	}

	switch vp.Plane {
	case models.PlaneXY:
		// screen right is +x, screen up is +y
		return r3.Vec{
			X: u*w - w/2,
			Y: -(v*h - h/2),
			Z: pin(models.AxisZ),
		}
	case models.PlaneXZ:
		// screen right is +x, screen up is +z
		return r3.Vec{
			X: u*w - w/2,
			Y: pin(models.AxisY),
			Z: -(v*h - h/2),
		}
	default:
		// screen right is +y, screen up is +z
		return r3.Vec{
			X: pin(models.AxisX),
			Y: u*w - w/2,
			Z: -(v*h - h/2),
		}
	}
}

// Clamp saturates every component of p to [-size/2, size/2].
func Clamp(p, size r3.Vec) r3.Vec {
	c := func(f, s float64) float64 {
		return math.Max(-s/2, math.Min(s/2, f))
	}
	return r3.Vec{X: c(p.X, size.X), Y: c(p.Y, size.Y), Z: c(p.Z, size.Z)}
}

// Inside reports whether p lies strictly inside the volume on every axis.
func Inside(p, size r3.Vec) bool {
	for _, a := range []models.Axis{models.AxisX, models.AxisY, models.AxisZ} {
		if !insideAxis(p, size, a) {
			return false
		}
	}
	return true
}

func insidePlane(p, size r3.Vec, plane models.Plane) bool {
	u, v, _ := plane.Axes()
	return insideAxis(p, size, u) && insideAxis(p, size, v)
}

func insideAxis(p, size r3.Vec, a models.Axis) bool {
	return math.Abs(models.Component(p, a)) < models.Component(size, a)/2
}

// ToSlice converts a volume-local coordinate to normalized slice positions.
func ToSlice(p, size r3.Vec) r3.Vec {
	return models.ClampUnit(r3.Vec{
		X: transform.SliceParam(p.X, size.X),
		Y: transform.SliceParam(p.Y, size.Y),
		Z: transform.SliceParam(p.Z, size.Z),
	})
}

// FromSlice converts normalized slice positions to a volume-local coordinate.
func FromSlice(slice, size r3.Vec) r3.Vec {
	return r3.Vec{
		X: transform.SliceOffset(slice.X, size.X),
		Y: transform.SliceOffset(slice.Y, size.Y),
		Z: transform.SliceOffset(slice.Z, size.Z),
	}
}
