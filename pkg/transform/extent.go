// Package transform builds the model, view and projection matrices used to
// place the three orthogonal cross-sections of a volume in the viewer's
// quadrants.
package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"orthoslice/internal/models"
)

// Extent is the world-space size of an orthographic viewport.
type Extent struct {
	Width  float64
	Height float64
}

// Aspect returns Width/Height.
func (e Extent) Aspect() float64 {
	return e.Width / e.Height
}

// BindingExtent returns the volume dimension that touches the viewport
// boundary when plane p is shown in a viewport of the given aspect ratio.
// A plane narrower than the viewport is height-limited and binds on its
// vertical axis, otherwise it binds on its horizontal axis.
func BindingExtent(p models.Plane, size r3.Vec, aspect float64) float64 {
	u, v, _ := p.Axes()
	su, sv := models.Component(size, u), models.Component(size, v)
	if su/sv < aspect {
		return sv
	}
	return su
}

// ResolveExtent computes the world width and height shared by every
// orthographic viewport. The scale is chosen from the most constraining of
// the three planes so that equal world sizes look equal in all quadrants.
func ResolveExtent(size r3.Vec, aspect float64) (Extent, error) {
	if err := models.ValidateExtent(size); err != nil {
		return Extent{}, err
	}
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		return Extent{}, fmt.Errorf("%w: window aspect must be positive, got %v", models.ErrConfiguration, aspect)
	}

	s := 0.0
	for _, p := range models.Planes {
		s = math.Max(s, BindingExtent(p, size, aspect))
	}

	if aspect > 1 {
		return Extent{Width: aspect * s, Height: s}, nil
	}
	return Extent{Width: s, Height: s / aspect}, nil
}
