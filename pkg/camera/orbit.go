// Package camera implements the orbiting camera of the 3D viewport.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSensitivity is the orbit angle in radians per dragged pixel.
const DefaultSensitivity = 0.02

// Orbit is a camera that circles a fixed target at constant distance.
type Orbit struct {
	Eye    r3.Vec
	Target r3.Vec
	Up     r3.Vec

	home r3.Vec
}

// NewOrbit returns a camera looking at the origin from 2*max(size) along
// each axis, with +Y up.
func NewOrbit(size r3.Vec) *Orbit {
	m := math.Max(size.X, math.Max(size.Y, size.Z))
	o := &Orbit{home: r3.Vec{X: 2 * m, Y: 2 * m, Z: 2 * m}}
	o.Reset()
	return o
}

// Reset restores the default distance and orientation.
func (o *Orbit) Reset() {
	o.Eye = o.home
	o.Target = r3.Vec{}
	o.Up = r3.Vec{Y: 1}
}

// Distance returns the eye to target distance.
func (o *Orbit) Distance() float64 {
	return r3.Norm(r3.Sub(o.Eye, o.Target))
}

// OrbitFocus rotates the eye around the target by theta radians about the
// up vector and phi radians about the camera's right vector. The up vector
// follows the pitch so the camera can pass over the poles.
func (o *Orbit) OrbitFocus(theta, phi float64) {
	d := r3.Sub(o.Eye, o.Target)
	if r3.Norm(d) == 0 {
		return
	}

	if theta != 0 {
		d = r3.NewRotation(theta, o.Up).Rotate(d)
	}
	if phi != 0 {
		right := r3.Cross(r3.Scale(-1, d), o.Up)
		if r3.Norm(right) > 0 {
			pitch := r3.NewRotation(phi, right)
			d = pitch.Rotate(d)
			o.Up = r3.Unit(pitch.Rotate(o.Up))
		}
	}
	o.Eye = r3.Add(o.Target, d)
}

// Drag applies a mouse drag of (dx, dy) pixels at the given sensitivity.
func (o *Orbit) Drag(dx, dy, sensitivity float64) {
	o.OrbitFocus(-sensitivity*dx, sensitivity*dy)
}

// View returns the look-at matrix for the current pose.
func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(vec3(o.Eye), vec3(o.Target), vec3(o.Up))
}

func vec3(v r3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
