package models

import (
	"fmt"
	"strings"
)

// Axis identifies one of the three volume axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Plane identifies one of the three axis-aligned cross-sections.
// Each plane spans two axes and cuts the third.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

// Planes lists every cross-section in drawing order.
var Planes = [3]Plane{PlaneXY, PlaneXZ, PlaneYZ}

// Axes returns the in-plane axes (horizontal, vertical) and the cut axis.
func (p Plane) Axes() (u, v, w Axis) {
	switch p {
	case PlaneXZ:
		return AxisX, AxisZ, AxisY
	case PlaneYZ:
		return AxisY, AxisZ, AxisX
	default:
		return AxisX, AxisY, AxisZ
	}
}

// Cut returns the axis the plane cuts.
func (p Plane) Cut() Axis {
	_, _, w := p.Axes()
	return w
}

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "XY"
	case PlaneXZ:
		return "XZ"
	case PlaneYZ:
		return "YZ"
	}
	return fmt.Sprintf("plane(%d)", int(p))
}

// ParsePlane parses a plane name such as "xy" or "YZ".
func ParsePlane(name string) (Plane, error) {
	for _, p := range Planes {
		if strings.EqualFold(name, p.String()) {
			return p, nil
		}
	}
	return PlaneXY, fmt.Errorf("%w: unknown plane %q", ErrConfiguration, name)
}
