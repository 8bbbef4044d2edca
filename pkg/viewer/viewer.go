package viewer

import (
	"github.com/sirupsen/logrus"

	"orthoslice/pkg/camera"
	"orthoslice/pkg/interaction"
	"orthoslice/pkg/picking"
	"orthoslice/pkg/transform"
)

// Options tune the interactive behaviour.
type Options struct {
	// OrbitSensitivity is the orbit angle in radians per dragged pixel.
	OrbitSensitivity float64

	// MarkerScale is the radius of the pick marker in world units.
	MarkerScale float64
}

// DefaultOptions returns the stock sensitivity and marker size.
func DefaultOptions() Options {
	return Options{
		OrbitSensitivity: camera.DefaultSensitivity,
		MarkerScale:      0.02,
	}
}

// Window is the windowing collaborator.
type Window interface {
	ShouldClose() bool
	PollEvents()
	FramebufferSize() (width, height int)
	Events() *interaction.Queue
	SwapBuffers()
}

// Panel is the GUI collaborator. Update runs at the top of each frame and
// may edit the state or request a reset; Render draws the GUI last.
type Panel interface {
	WantsMouse() bool
	Update(s *ViewerState)
	Render(s *ViewerState)
}

// Renderer draws a frame's cross-sections and marker.
type Renderer interface {
	Render(f *transform.Frame, s *ViewerState) error
}

// Viewer runs the per-frame pipeline over a ViewerState.
type Viewer struct {
	State *ViewerState
	opts  Options
	log   *logrus.Entry
}

// New returns a viewer over state.
func New(state *ViewerState, opts Options) *Viewer {
	return &Viewer{
		State: state,
		opts:  opts,
		log:   logrus.WithField("component", "viewer"),
	}
}

// Step advances one frame: drained input updates the interaction state,
// GUI edits are applied, a pending reset is consumed, the camera orbits, a
// live pick may override the slice position, and finally the matrices are
// built from the resulting state.
func (v *Viewer) Step(events []interaction.Event, fbWidth, fbHeight int, panel Panel) (*transform.Frame, error) {
	s := v.State

	overGUI := panel != nil && panel.WantsMouse()
	snap := s.Input.Step(events, overGUI)

	if panel != nil {
		panel.Update(s)
	}

	if s.consumeReset() {
		v.log.Info("viewer reset")
	} else {
		if snap.OrbitDX != 0 || snap.OrbitDY != 0 {
			s.Camera.Drag(snap.OrbitDX, snap.OrbitDY, v.opts.OrbitSensitivity)
		}
		if snap.PickLive {
			v.pick(snap, fbWidth, fbHeight)
		}
	}

	marker, visible := s.Picked()
	return transform.BuildFrame(transform.FrameParams{
		FramebufferWidth:  fbWidth,
		FramebufferHeight: fbHeight,
		VolumeSize:        s.extent,
		SlicePosition:     s.slice,
		CameraView:        s.Camera.View(),
		Marker:            marker,
		MarkerVisible:     visible,
		MarkerScale:       v.opts.MarkerScale,
	})
}

func (v *Viewer) pick(snap interaction.Snapshot, fbWidth, fbHeight int) {
	res, ok := picking.Pick(picking.Request{
		X:                 snap.PickX,
		Y:                 snap.PickY,
		FramebufferWidth:  fbWidth,
		FramebufferHeight: fbHeight,
		VolumeSize:        v.State.extent,
		SlicePosition:     v.State.slice,
	})
	if !ok {
		return
	}
	v.State.applyPick(res)
	v.log.WithFields(logrus.Fields{
		"plane":  res.Plane,
		"x":      res.Displayed.X,
		"y":      res.Displayed.Y,
		"z":      res.Displayed.Z,
		"inside": res.Inside,
	}).Debug("pick")
}

// Run drives the frame loop until the window asks to close. Frames with an
// empty framebuffer, such as a minimized window, are skipped.
func (v *Viewer) Run(w Window, panel Panel, r Renderer) error {
	for !w.ShouldClose() {
		if err := v.Frame(w, panel, r); err != nil {
			return err
		}
	}
	return nil
}

// Frame runs a single iteration of the loop.
func (v *Viewer) Frame(w Window, panel Panel, r Renderer) error {
	w.PollEvents()
	fbWidth, fbHeight := w.FramebufferSize()
	events := w.Events().Drain()

	if fbWidth <= 0 || fbHeight <= 0 {
		// keep button state in step so a release while minimized is not lost
		v.State.Input.Step(events, false)
		w.SwapBuffers()
		return nil
	}

	f, err := v.Step(events, fbWidth, fbHeight, panel)
	if err != nil {
		// the state setters validate every extent, so this is a bug
		v.log.WithError(err).Error("frame skipped")
		w.SwapBuffers()
		return nil
	}
	if err := r.Render(f, v.State); err != nil {
		return err
	}
	if panel != nil {
		panel.Render(v.State)
	}
	w.SwapBuffers()
	return nil
}
