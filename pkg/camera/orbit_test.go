package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewOrbitDefaultPose(t *testing.T) {
	o := NewOrbit(r3.Vec{X: 1, Y: 1, Z: 1})
	assert.Equal(t, r3.Vec{X: 2, Y: 2, Z: 2}, o.Eye)
	assert.Equal(t, r3.Vec{}, o.Target)
	assert.Equal(t, r3.Vec{Y: 1}, o.Up)

	o = NewOrbit(r3.Vec{X: 0.5, Y: 2, Z: 1})
	assert.Equal(t, r3.Vec{X: 4, Y: 4, Z: 4}, o.Eye)
}

// TestOrbitPreservesDistance drags the camera around and checks it stays on its sphere
func TestOrbitPreservesDistance(t *testing.T) {
	o := NewOrbit(r3.Vec{X: 1, Y: 1, Z: 1})
	want := o.Distance()
	elevation := r3.Dot(o.Up, r3.Sub(o.Eye, o.Target)) / want

	for i := 0; i < 200; i++ {
		o.Drag(float64(i%17-8), float64(i%11-5), DefaultSensitivity)
		assert.InDelta(t, want, o.Distance(), 1e-9)
		assert.InDelta(t, 1, r3.Norm(o.Up), 1e-9)
		// yaw and pitch both keep the angle between up and the view direction
		assert.InDelta(t, elevation, r3.Dot(o.Up, r3.Sub(o.Eye, o.Target))/want, 1e-9)
	}
	assert.Equal(t, r3.Vec{}, o.Target)
}

func TestOrbitYawAboutUp(t *testing.T) {
	o := NewOrbit(r3.Vec{X: 1, Y: 1, Z: 1})
	o.OrbitFocus(math.Pi/2, 0)

	// a quarter turn about +Y keeps the height
	assert.InDelta(t, 2, o.Eye.Y, 1e-9)
	assert.InDelta(t, 2, o.Eye.X, 1e-9)
	assert.InDelta(t, -2, o.Eye.Z, 1e-9)
}

func TestOrbitPitchCarriesUp(t *testing.T) {
	o := NewOrbit(r3.Vec{X: 1, Y: 1, Z: 1})
	o.Eye = r3.Vec{Z: 3}
	o.OrbitFocus(0, math.Pi/2)

	assert.InDelta(t, 3, o.Distance(), 1e-9)
	assert.InDelta(t, 0, o.Eye.Z, 1e-9)
	assert.InDelta(t, 3, math.Abs(o.Eye.Y), 1e-9)
	// up stays perpendicular to the view direction
	assert.InDelta(t, 0, r3.Dot(o.Up, o.Eye), 1e-9)
}

func TestOrbitResetRestoresPose(t *testing.T) {
	o := NewOrbit(r3.Vec{X: 1, Y: 1, Z: 1})
	o.Drag(40, -25, DefaultSensitivity)
	assert.NotEqual(t, r3.Vec{X: 2, Y: 2, Z: 2}, o.Eye)

	o.Reset()
	assert.Equal(t, r3.Vec{X: 2, Y: 2, Z: 2}, o.Eye)
	assert.Equal(t, r3.Vec{Y: 1}, o.Up)
}

func TestOrbitView(t *testing.T) {
	o := NewOrbit(r3.Vec{X: 1, Y: 1, Z: 1})
	v := o.View()

	eye := v.Mul4x1(mgl32.Vec4{2, 2, 2, 1})
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, eye[i], 1e-5)
	}

	target := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -float32(math.Sqrt(12)), target[2], 1e-5)
}
