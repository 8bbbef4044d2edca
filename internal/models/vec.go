package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Component returns the coordinate of v along a.
func Component(v r3.Vec, a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns v with its coordinate along a replaced by f.
func WithComponent(v r3.Vec, a Axis, f float64) r3.Vec {
	switch a {
	case AxisX:
		v.X = f
	case AxisY:
		v.Y = f
	default:
		v.Z = f
	}
	return v
}

// ValidateExtent checks that every component of a volume extent is a
// positive finite number.
func ValidateExtent(size r3.Vec) error {
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		c := Component(size, a)
		if !(c > 0) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: volume extent along %s must be positive, got %v", ErrConfiguration, a, c)
		}
	}
	return nil
}

// ClampUnit clamps every component of v to [0,1]. NaN components become 0.5.
func ClampUnit(v r3.Vec) r3.Vec {
	c := func(f float64) float64 {
		switch {
		case math.IsNaN(f):
			return 0.5
		case f < 0:
			return 0
		case f > 1:
			return 1
		}
		return f
	}
	return r3.Vec{X: c(v.X), Y: c(v.Y), Z: c(v.Z)}
}
