package transform

import (
	"github.com/go-gl/mathgl/mgl32"

	"orthoslice/internal/models"
)

const (
	// Near and Far bound the orthographic depth range.
	Near = 0.0
	Far  = 10000.0

	// ViewDistance places the fixed 2D eyes midway through the depth range
	// so geometry on either side of the volume center is kept.
	ViewDistance = Far / 2
)

// ViewMatrix returns the fixed view of plane p, looking down its cut axis
// at the volume center.
func ViewMatrix(p models.Plane) mgl32.Mat4 {
	spec := planes[p]
	return mgl32.LookAtV(spec.eye.Mul(ViewDistance), mgl32.Vec3{}, spec.up)
}

// ScreenAxes returns the world directions that plane p's view maps to
// screen right and screen up.
func ScreenAxes(p models.Plane) (right, up mgl32.Vec3) {
	spec := planes[p]
	forward := spec.eye.Mul(-1)
	return forward.Cross(spec.up).Normalize(), spec.up
}

// Projection returns the orthographic projection for a viewport of the
// given world extent, centered on the origin.
func Projection(e Extent) mgl32.Mat4 {
	hw, hh := float32(e.Width/2), float32(e.Height/2)
	return mgl32.Ortho(-hw, hw, -hh, hh, Near, Far)
}
