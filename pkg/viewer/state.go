// Package viewer owns the mutable state of the slice viewer and drives the
// per-frame pipeline: input, GUI edits, reset, orbit, pick, matrices.
package viewer

import (
	"gonum.org/v1/gonum/spatial/r3"

	"orthoslice/internal/models"
	"orthoslice/pkg/camera"
	"orthoslice/pkg/interaction"
	"orthoslice/pkg/picking"
)

var (
	// ResetExtent is the volume extent restored by a reset.
	ResetExtent = r3.Vec{X: 1, Y: 1, Z: 1}

	// ResetSlice is the slice position restored by a reset.
	ResetSlice = r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
)

// ViewerState is the single owner of everything the GUI and the input
// handlers mutate. It is not safe for concurrent use; the frame loop and
// the window callbacks share one goroutine.
type ViewerState struct {
	extent r3.Vec
	slice  r3.Vec

	// last pick; when committed the coordinate follows the slice position
	pickValid     bool
	pickCommitted bool
	pickDisplayed r3.Vec

	resetPending bool

	Camera *camera.Orbit
	Input  interaction.Machine
}

// NewViewerState returns a state with the given initial extent and
// centered slices.
func NewViewerState(extent r3.Vec) (*ViewerState, error) {
	if err := models.ValidateExtent(extent); err != nil {
		return nil, err
	}
	return &ViewerState{
		extent: extent,
		slice:  ResetSlice,
		Camera: camera.NewOrbit(ResetExtent),
	}, nil
}

// Extent returns the physical volume size.
func (s *ViewerState) Extent() r3.Vec {
	return s.extent
}

// SetExtent replaces the volume size. Degenerate extents are rejected with
// ErrConfiguration and leave the state unchanged.
func (s *ViewerState) SetExtent(extent r3.Vec) error {
	if err := models.ValidateExtent(extent); err != nil {
		return err
	}
	s.extent = extent
	return nil
}

// Slice returns the normalized slice positions.
func (s *ViewerState) Slice() r3.Vec {
	return s.slice
}

// SetSlice replaces the slice positions, clamped to [0,1].
func (s *ViewerState) SetSlice(slice r3.Vec) {
	s.slice = models.ClampUnit(slice)
}

// Picked returns the picked volume-local coordinate clamped to the current
// volume bounds. ok is false until the first pick and after a reset.
func (s *ViewerState) Picked() (p r3.Vec, ok bool) {
	if !s.pickValid {
		return r3.Vec{}, false
	}
	if s.pickCommitted {
		return picking.FromSlice(s.slice, s.extent), true
	}
	return picking.Clamp(s.pickDisplayed, s.extent), true
}

// RequestReset schedules a reset for the next frame. Repeated requests
// before the frame runs collapse into one.
func (s *ViewerState) RequestReset() {
	s.resetPending = true
}

// ResetPending reports whether a reset is scheduled.
func (s *ViewerState) ResetPending() bool {
	return s.resetPending
}

// consumeReset applies a pending reset and reports whether it did.
func (s *ViewerState) consumeReset() bool {
	if !s.resetPending {
		return false
	}
	s.resetPending = false
	s.Reset()
	return true
}

// Reset restores the default extent, slice position, camera and input
// state and clears the pick.
func (s *ViewerState) Reset() {
	s.extent = ResetExtent
	s.slice = ResetSlice
	s.pickValid = false
	s.pickCommitted = false
	s.pickDisplayed = r3.Vec{}
	s.Camera.Reset()
	s.Input.Reset()
}

// applyPick records a pick result; only picks inside the volume move the
// slices.
func (s *ViewerState) applyPick(res picking.Result) {
	s.pickValid = true
	s.pickDisplayed = res.Displayed
	s.pickCommitted = res.Inside
	if res.Inside {
		s.slice = res.Slice
	}
}
