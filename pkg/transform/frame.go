package transform

import (
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"

	"orthoslice/internal/models"
)

// FrameParams collects everything the matrix pipeline reads in one frame.
type FrameParams struct {
	FramebufferWidth  int
	FramebufferHeight int

	VolumeSize    r3.Vec
	SlicePosition r3.Vec

	// CameraView is the 3D viewport's view matrix.
	CameraView mgl32.Mat4

	// Marker is the picked coordinate drawn in the 3D view when MarkerVisible.
	Marker        r3.Vec
	MarkerVisible bool
	MarkerScale   float64
}

// Frame is the complete set of matrices for one rendered frame.
type Frame struct {
	FramebufferWidth  int
	FramebufferHeight int

	Viewports [4]models.ViewportSpec
	Extent    Extent

	// Projection is shared by every viewport.
	Projection mgl32.Mat4

	// Views is indexed by models.Quadrant.
	Views [4]mgl32.Mat4

	// Models is indexed by models.Plane.
	Models [3]mgl32.Mat4

	// MarkerMVP places the pick marker in the 3D viewport.
	MarkerMVP     mgl32.Mat4
	MarkerVisible bool
}

// BuildFrame resolves the shared extent from the framebuffer aspect ratio
// and derives every per-viewport matrix from it.
func BuildFrame(p FrameParams) (*Frame, error) {
	layout := models.Layout(p.FramebufferWidth, p.FramebufferHeight)

	// every quadrant has the aspect ratio of the framebuffer
	aspect := 0.0
	if p.FramebufferHeight > 0 {
		aspect = float64(p.FramebufferWidth) / float64(p.FramebufferHeight)
	}
	extent, err := ResolveExtent(p.VolumeSize, aspect)
	if err != nil {
		return nil, err
	}

	f := &Frame{
		FramebufferWidth:  p.FramebufferWidth,
		FramebufferHeight: p.FramebufferHeight,
		Viewports:         layout,
		Extent:            extent,
		Projection:        Projection(extent),
	}
	for _, vp := range layout {
		if vp.Is3D {
			f.Views[vp.Quadrant] = p.CameraView
		} else {
			f.Views[vp.Quadrant] = ViewMatrix(vp.Plane)
		}
	}
	for _, pl := range models.Planes {
		f.Models[pl] = BuildModel(pl, p.VolumeSize, p.SlicePosition)
	}

	if p.MarkerVisible {
		s := float32(p.MarkerScale)
		m := mgl32.Translate3D(float32(p.Marker.X), float32(p.Marker.Y), float32(p.Marker.Z)).
			Mul4(mgl32.Scale3D(s, s, s))
		f.MarkerMVP = f.ViewProjection(models.TopLeft).Mul4(m)
		f.MarkerVisible = true
	}
	return f, nil
}

// ViewProjection returns Projection * View for quadrant q.
func (f *Frame) ViewProjection(q models.Quadrant) mgl32.Mat4 {
	return f.Projection.Mul4(f.Views[q])
}

// MVP returns Projection * View * Model for plane p drawn in quadrant q.
func (f *Frame) MVP(q models.Quadrant, p models.Plane) mgl32.Mat4 {
	return f.ViewProjection(q).Mul4(f.Models[p])
}

// Viewport returns the spec of quadrant q.
func (f *Frame) Viewport(q models.Quadrant) models.ViewportSpec {
	return f.Viewports[q]
}
