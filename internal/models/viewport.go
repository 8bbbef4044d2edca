package models

// Quadrant represents one of the four screen regions of the viewer window
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return "unknown"
}

// Rect is a pixel rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the pixel position lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X+r.W) &&
		y >= float64(r.Y) && y < float64(r.Y+r.H)
}

// Aspect returns W/H, or 0 for an empty rectangle.
func (r Rect) Aspect() float64 {
	if r.H <= 0 {
		return 0
	}
	return float64(r.W) / float64(r.H)
}

// GL returns the rectangle in OpenGL viewport coordinates
// (bottom-left origin) for a framebuffer of the given height.
func (r Rect) GL(fbHeight int) (x, y, w, h int32) {
	return int32(r.X), int32(fbHeight - r.Y - r.H), int32(r.W), int32(r.H)
}

// ViewportSpec ties a quadrant to the view it displays.
type ViewportSpec struct {
	Quadrant Quadrant
	Rect     Rect

	// Plane is only meaningful when Is3D is false.
	Plane Plane
	Is3D  bool
}

// Layout splits a framebuffer into the four viewer quadrants:
// XY top-right, XZ bottom-right, YZ bottom-left and the 3D view top-left.
// Left and top quadrants get w/2 and h/2 pixels, the others the remainder,
// so the four rectangles tile the framebuffer with no gap or overlap.
func Layout(width, height int) [4]ViewportSpec {
	hw, hh := width/2, height/2
	return [4]ViewportSpec{
		{Quadrant: TopLeft, Rect: Rect{0, 0, hw, hh}, Is3D: true},
		{Quadrant: TopRight, Rect: Rect{hw, 0, width - hw, hh}, Plane: PlaneXY},
		{Quadrant: BottomLeft, Rect: Rect{0, hh, hw, height - hh}, Plane: PlaneYZ},
		{Quadrant: BottomRight, Rect: Rect{hw, hh, width - hw, height - hh}, Plane: PlaneXZ},
	}
}

// QuadrantAt returns the quadrant containing the pixel position.
// A position exactly on the vertical split belongs to the right half and one
// on the horizontal split to the bottom half. ok is false outside the window.
func QuadrantAt(x, y float64, width, height int) (q Quadrant, ok bool) {
	if x < 0 || y < 0 || x >= float64(width) || y >= float64(height) {
		return TopLeft, false
	}
	right := x >= float64(width/2)
	bottom := y >= float64(height/2)
	switch {
	case !right && !bottom:
		return TopLeft, true
	case right && !bottom:
		return TopRight, true
	case !right && bottom:
		return BottomLeft, true
	default:
		return BottomRight, true
	}
}
