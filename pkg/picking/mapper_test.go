package picking

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"orthoslice/internal/models"
	"orthoslice/pkg/transform"
)

var centered = r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}

func TestPickCenterOfXYQuadrant(t *testing.T) {
	res, ok := Pick(Request{
		X: 1200, Y: 300,
		FramebufferWidth:  1600,
		FramebufferHeight: 1200,
		VolumeSize:        r3.Vec{X: 2, Y: 1, Z: 1},
		SlicePosition:     centered,
	})
	require.True(t, ok)
	assert.Equal(t, models.PlaneXY, res.Plane)
	assert.Equal(t, r3.Vec{}, res.Raw)
	assert.True(t, res.Inside)
	assert.Equal(t, centered, res.Slice)
}

func TestPickPerPlaneAxes(t *testing.T) {
	size := r3.Vec{X: 1, Y: 1, Z: 1}
	slice := r3.Vec{X: 0.2, Y: 0.4, Z: 0.9}

	// a quarter of the quadrant right of and above its center, window aspect 1
	tests := []struct {
		name string
		x, y float64
		want r3.Vec
	}{
		{"XY", 700, 100, r3.Vec{X: 0.25, Y: 0.25, Z: 0.4}},
		{"XZ", 700, 500, r3.Vec{X: 0.25, Y: -0.1, Z: 0.25}},
		{"YZ", 300, 500, r3.Vec{X: -0.3, Y: 0.25, Z: 0.25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := Pick(Request{
				X: tt.x, Y: tt.y,
				FramebufferWidth:  800,
				FramebufferHeight: 800,
				VolumeSize:        size,
				SlicePosition:     slice,
			})
			require.True(t, ok)
			assert.Equal(t, tt.name, res.Plane.String())
			assert.InDelta(t, tt.want.X, res.Raw.X, 1e-12)
			assert.InDelta(t, tt.want.Y, res.Raw.Y, 1e-12)
			assert.InDelta(t, tt.want.Z, res.Raw.Z, 1e-12)
			require.True(t, res.Inside)

			// the cut axis keeps its slice position
			w := res.Plane.Cut()
			assert.InDelta(t, models.Component(slice, w), models.Component(res.Slice, w), 1e-12)
		})
	}
}

// TestPickInvertsViewProjection compares every plane's formula with the inverse of the rendered matrices
func TestPickInvertsViewProjection(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 300; i++ {
		fbW, fbH := 400+rng.Intn(1200), 400+rng.Intn(800)
		size := r3.Vec{X: 0.25 + 2*rng.Float64(), Y: 0.25 + 2*rng.Float64(), Z: 0.25 + 2*rng.Float64()}
		slice := r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}

		f, err := transform.BuildFrame(transform.FrameParams{
			FramebufferWidth:  fbW,
			FramebufferHeight: fbH,
			VolumeSize:        size,
			SlicePosition:     slice,
			CameraView:        mgl32.Ident4(),
		})
		require.NoError(t, err)

		x, y := rng.Float64()*float64(fbW), rng.Float64()*float64(fbH)
		res, ok := Pick(Request{X: x, Y: y, FramebufferWidth: fbW, FramebufferHeight: fbH, VolumeSize: size, SlicePosition: slice})
		q, _ := models.QuadrantAt(x, y, fbW, fbH)
		if q == models.TopLeft {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)

		vp := f.Viewport(q)
		ndcX := 2*(x-float64(vp.Rect.X))/float64(vp.Rect.W) - 1
		ndcY := 1 - 2*(y-float64(vp.Rect.Y))/float64(vp.Rect.H)

		raw := mgl32.Vec4{float32(res.Raw.X), float32(res.Raw.Y), float32(res.Raw.Z), 1}
		clip := f.ViewProjection(q).Mul4x1(raw)
		assert.InDelta(t, ndcX, clip[0], 1e-4, "plane %v", vp.Plane)
		assert.InDelta(t, ndcY, clip[1], 1e-4, "plane %v", vp.Plane)
		assert.True(t, clip[2] > -1 && clip[2] < 1, "plane %v depth %v", vp.Plane, clip[2])
	}
}

// TestPickClampLaw checks that an out-of-bounds pick is clamped for display but never committed
func TestPickClampLaw(t *testing.T) {
	size := r3.Vec{X: 0.5, Y: 1, Z: 1}
	slice := r3.Vec{X: 0.3, Y: 0.6, Z: 0.7}

	// left edge of the XY quadrant, world x = -W/2 = -0.5 < -0.25
	res, ok := Pick(Request{X: 400, Y: 200, FramebufferWidth: 800, FramebufferHeight: 800, VolumeSize: size, SlicePosition: slice})
	require.True(t, ok)
	assert.Less(t, res.Raw.X, -size.X/2)
	assert.False(t, res.Inside)
	assert.Equal(t, Clamp(res.Raw, size), res.Displayed)
	assert.Equal(t, -size.X/2, res.Displayed.X)
	assert.Equal(t, slice, res.Slice)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		p := r3.Vec{X: 4*rng.Float64() - 2, Y: 4*rng.Float64() - 2, Z: 4*rng.Float64() - 2}
		c := Clamp(p, size)
		assert.LessOrEqual(t, c.X, size.X/2)
		assert.GreaterOrEqual(t, c.X, -size.X/2)
		if Inside(p, size) {
			assert.Equal(t, p, c)
		}
	}
}

func TestPickQuadrantEdge(t *testing.T) {
	size := r3.Vec{X: 1, Y: 1, Z: 1}

	// x on the vertical split belongs to the right half only
	res, ok := Pick(Request{X: 400, Y: 600, FramebufferWidth: 800, FramebufferHeight: 800, VolumeSize: size, SlicePosition: centered})
	require.True(t, ok)
	assert.Equal(t, models.BottomRight, res.Quadrant)
	assert.InDelta(t, -0.5, res.Raw.X, 1e-12)

	res, ok = Pick(Request{X: 399.5, Y: 400, FramebufferWidth: 800, FramebufferHeight: 800, VolumeSize: size, SlicePosition: centered})
	require.True(t, ok)
	assert.Equal(t, models.BottomLeft, res.Quadrant)
	assert.InDelta(t, 0.5, res.Raw.Z, 1e-12)
}

func TestPickRejectsNonPickable(t *testing.T) {
	req := Request{FramebufferWidth: 800, FramebufferHeight: 600, VolumeSize: r3.Vec{X: 1, Y: 1, Z: 1}, SlicePosition: centered}

	req.X, req.Y = 100, 100
	_, ok := Pick(req)
	assert.False(t, ok, "3D quadrant")

	req.X, req.Y = -5, 100
	_, ok = Pick(req)
	assert.False(t, ok, "outside window")

	req.X, req.Y = 500, 100
	req.VolumeSize = r3.Vec{X: 1, Y: 0, Z: 1}
	_, ok = Pick(req)
	assert.False(t, ok, "degenerate volume")
}

// TestPickOnBoundarySection keeps committing when the section sits on a volume face
func TestPickOnBoundarySection(t *testing.T) {
	slice := r3.Vec{X: 0.5, Y: 0.5, Z: 1}
	res, ok := Pick(Request{X: 600, Y: 200, FramebufferWidth: 800, FramebufferHeight: 800, VolumeSize: r3.Vec{X: 2, Y: 2, Z: 2}, SlicePosition: slice})
	require.True(t, ok)
	assert.Equal(t, 1.0, res.Raw.Z)
	assert.True(t, res.Inside)
	assert.Equal(t, 1.0, res.Slice.Z)
}

func TestSliceCoordinateRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 500; i++ {
		size := r3.Vec{X: 0.1 + 3*rng.Float64(), Y: 0.1 + 3*rng.Float64(), Z: 0.1 + 3*rng.Float64()}
		slice := r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		got := ToSlice(FromSlice(slice, size), size)
		assert.InDelta(t, slice.X, got.X, 1e-12)
		assert.InDelta(t, slice.Y, got.Y, 1e-12)
		assert.InDelta(t, slice.Z, got.Z, 1e-12)
	}
}
