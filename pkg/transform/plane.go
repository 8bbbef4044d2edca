package transform

import (
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"

	"orthoslice/internal/models"
)

// planeSpec holds the fixed geometry of one cross-section: the rotation that
// carries the canonical unit rectangle (x,y in [-0.5,0.5], z = 0) into the
// plane, and the eye direction and up vector of its 2D view.
type planeSpec struct {
	rotation mgl32.Mat4
	eye      mgl32.Vec3
	up       mgl32.Vec3
}

// planes is indexed by models.Plane. Every view is right-handed: screen right
// crossed with screen up points back at the eye.
var planes = [3]planeSpec{
	models.PlaneXY: {
		rotation: mgl32.Ident4(),
		eye:      mgl32.Vec3{0, 0, 1},
		up:       mgl32.Vec3{0, 1, 0},
	},
	models.PlaneXZ: {
		// (u,v,0) -> (u,0,v)
		rotation: mgl32.HomogRotate3DX(mgl32.DegToRad(90)),
		eye:      mgl32.Vec3{0, -1, 0},
		up:       mgl32.Vec3{0, 0, 1},
	},
	models.PlaneYZ: {
		// (u,v,0) -> (0,u,v)
		rotation: mgl32.HomogRotate3DY(mgl32.DegToRad(270)).
			Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(270))).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(180))),
		eye: mgl32.Vec3{1, 0, 0},
		up:  mgl32.Vec3{0, 0, 1},
	},
}

// SliceOffset maps a normalized slice parameter in [0,1] to the centered
// volume-local coordinate in [-s/2, s/2].
func SliceOffset(param, s float64) float64 {
	return param*s - s/2
}

// SliceParam is the inverse of SliceOffset.
func SliceParam(offset, s float64) float64 {
	return offset/s + 0.5
}

// Rotation returns the fixed rotation of plane p.
func Rotation(p models.Plane) mgl32.Mat4 {
	return planes[p].rotation
}

// Scale returns the matrix stretching the rotated unit rectangle to the
// in-plane volume extents. The cut axis keeps unit scale.
func Scale(p models.Plane, size r3.Vec) mgl32.Mat4 {
	s := models.WithComponent(size, p.Cut(), 1)
	return mgl32.Scale3D(float32(s.X), float32(s.Y), float32(s.Z))
}

// Translation returns the matrix moving plane p along its cut axis to the
// given slice position.
func Translation(p models.Plane, size, slice r3.Vec) mgl32.Mat4 {
	w := p.Cut()
	off := SliceOffset(models.Component(slice, w), models.Component(size, w))
	t := models.WithComponent(r3.Vec{}, w, off)
	return mgl32.Translate3D(float32(t.X), float32(t.Y), float32(t.Z))
}

// BuildModel returns Translation * Scale * Rotation for plane p. The
// rotation is applied first so the non-uniform scale stays axis aligned in
// volume space.
func BuildModel(p models.Plane, size, slice r3.Vec) mgl32.Mat4 {
	return Translation(p, size, slice).Mul4(Scale(p, size)).Mul4(Rotation(p))
}
