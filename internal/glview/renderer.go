package glview

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"orthoslice/internal/models"
	"orthoslice/pkg/transform"
	"orthoslice/pkg/viewer"
	"orthoslice/pkg/volume"
)

var (
	backgroundColor = mgl32.Vec4{0.08, 0.08, 0.1, 1}
	markerColor     = mgl32.Vec3{1, 0.2, 0.2}
)

const volumeUnit = 0

// Renderer draws the cross-sections of one volume into the four quadrants.
type Renderer struct {
	slicer *Material
	dot    *Material
	lines  *Material

	rect     *Geometry
	sphere   *Geometry
	dividers *Geometry

	texture *Texture3D
}

// NewRenderer compiles the shaders, builds the geometry and uploads vol.
// The GL context must be current. On error everything created so far is
// released.
func NewRenderer(vol *volume.Volume) (*Renderer, error) {
	r := &Renderer{}
	var err error
	if r.slicer, err = NewMaterial(slicerVertex, slicerFragment); err != nil {
		r.Close()
		return nil, err
	}
	if r.dot, err = NewMaterial(dotVertex, dotFragment); err != nil {
		r.Close()
		return nil, err
	}
	if r.lines, err = NewMaterial(lineVertex, dotFragment); err != nil {
		r.Close()
		return nil, err
	}
	if r.texture, err = NewTexture3D(vol); err != nil {
		r.Close()
		return nil, err
	}

	r.rect = NewRectangle()
	r.sphere = NewSphere(16, 24)
	r.dividers = NewDividers()

	gl.Enable(gl.DEPTH_TEST)
	return r, nil
}

// Render draws one frame.
func (r *Renderer) Render(f *transform.Frame, s *viewer.ViewerState) error {
	fbHeight := f.FramebufferHeight

	gl.Viewport(0, 0, int32(f.FramebufferWidth), int32(fbHeight))
	gl.ClearColor(backgroundColor[0], backgroundColor[1], backgroundColor[2], backgroundColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	size := s.Extent()
	slice := s.Slice()

	r.texture.Bind(volumeUnit)
	r.slicer.Bind()
	r.slicer.SetUniform1i("volumeTexture", volumeUnit)
	r.slicer.SetUniform1i("channels", int32(r.texture.Channels()))
	r.slicer.SetUniform3f("volumeSize", mgl32.Vec3{float32(size.X), float32(size.Y), float32(size.Z)})

	for _, vp := range f.Viewports {
		gl.Viewport(vp.Rect.GL(fbHeight))
		if vp.Is3D {
			for _, p := range models.Planes {
				r.drawPlane(f, vp.Quadrant, p, models.Component(slice, p.Cut()))
			}
			continue
		}
		r.drawPlane(f, vp.Quadrant, vp.Plane, models.Component(slice, vp.Plane.Cut()))
	}

	r.slicer.Unbind()
	r.texture.Unbind(volumeUnit)

	if f.MarkerVisible {
		gl.Viewport(f.Viewport(models.TopLeft).Rect.GL(fbHeight))
		gl.Disable(gl.DEPTH_TEST)
		r.dot.Bind()
		r.dot.SetUniformMat4("Trans", f.MarkerMVP)
		r.dot.SetUniform3f("color", markerColor)
		r.sphere.Draw()
		r.dot.Unbind()
		gl.Enable(gl.DEPTH_TEST)
	}

	gl.Viewport(0, 0, int32(f.FramebufferWidth), int32(fbHeight))
	r.lines.Bind()
	r.lines.SetUniform3f("color", mgl32.Vec3{0.6, 0.6, 0.6})
	r.dividers.Draw()
	r.lines.Unbind()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl error 0x%x", code)
	}
	return nil
}

func (r *Renderer) drawPlane(f *transform.Frame, q models.Quadrant, p models.Plane, slider float64) {
	r.slicer.SetUniformMat4("MVP", f.MVP(q, p))
	r.slicer.SetUniformMat4("Model", f.Models[p])
	r.slicer.SetUniform1i("axis", int32(p.Cut()))
	r.slicer.SetUniform1f("slider", float32(slider))
	r.rect.Draw()
}

// Close releases every GL resource the renderer owns.
func (r *Renderer) Close() {
	for _, m := range []*Material{r.slicer, r.dot, r.lines} {
		if m != nil {
			m.Close()
		}
	}
	for _, g := range []*Geometry{r.rect, r.sphere, r.dividers} {
		if g != nil {
			g.Close()
		}
	}
	if r.texture != nil {
		r.texture.Close()
	}
}
