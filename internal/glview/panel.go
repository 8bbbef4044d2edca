package glview

import (
	"fmt"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"orthoslice/pkg/viewer"
	"orthoslice/pkg/visualization"
	"orthoslice/pkg/volume"
)

var keyCommands = map[glfw.Key]viewer.Command{
	glfw.Key1:          viewer.SelectX,
	glfw.KeyX:          viewer.SelectX,
	glfw.Key2:          viewer.SelectY,
	glfw.KeyY:          viewer.SelectY,
	glfw.Key3:          viewer.SelectZ,
	glfw.KeyZ:          viewer.SelectZ,
	glfw.KeyUp:         viewer.SliceForward,
	glfw.KeyRight:      viewer.SliceForward,
	glfw.KeyDown:       viewer.SliceBack,
	glfw.KeyLeft:       viewer.SliceBack,
	glfw.KeyEqual:      viewer.ExtentGrow,
	glfw.KeyKPAdd:      viewer.ExtentGrow,
	glfw.KeyPageUp:     viewer.ExtentGrow,
	glfw.KeyMinus:      viewer.ExtentShrink,
	glfw.KeyKPSubtract: viewer.ExtentShrink,
	glfw.KeyPageDown:   viewer.ExtentShrink,
	glfw.KeyR:          viewer.RequestReset,
	glfw.KeyS:          viewer.Snapshot,
}

// KeyPanel is a keyboard driven control panel. Key presses are queued by
// the window callback and applied in Update; the readout of the slice
// position, extent and picked voxel goes to the window title.
type KeyPanel struct {
	win      *Window
	vol      *volume.Volume
	controls *viewer.Controls
	title    string

	pending   []viewer.Command
	lastTitle string
	log       *logrus.Entry
}

// KeyPanelOptions configures the keyboard panel.
type KeyPanelOptions struct {
	Title       string
	SliceStep   float64
	ExtentStep  float64
	SnapshotDir string
}

// NewKeyPanel installs the key callback on win.
func NewKeyPanel(win *Window, vol *volume.Volume, opts KeyPanelOptions) *KeyPanel {
	p := &KeyPanel{
		win:      win,
		vol:      vol,
		controls: viewer.NewControls(opts.SliceStep, opts.ExtentStep),
		title:    opts.Title,
		log:      logrus.WithField("component", "panel"),
	}

	exporter := visualization.NewExporter(vol)
	p.controls.OnSnapshot = func(slice r3.Vec) error {
		paths, err := exporter.SaveSections(opts.SnapshotDir, slice)
		if err != nil {
			return err
		}
		p.log.WithField("files", paths).Info("saved sections")
		return nil
	}

	win.SetKeyCallback(p.onKey)
	return p
}

func (p *KeyPanel) onKey(key glfw.Key, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	if key == glfw.KeyEscape {
		p.win.RequestClose()
		return
	}
	cmd, ok := keyCommands[key]
	if !ok {
		return
	}
	// only slice and extent nudges auto-repeat
	if action == glfw.Repeat && cmd != viewer.SliceForward && cmd != viewer.SliceBack &&
		cmd != viewer.ExtentGrow && cmd != viewer.ExtentShrink {
		return
	}
	p.pending = append(p.pending, cmd)
}

// WantsMouse is false; the panel has no on-screen area.
func (p *KeyPanel) WantsMouse() bool { return false }

// Update applies the queued key commands.
func (p *KeyPanel) Update(s *viewer.ViewerState) {
	for _, cmd := range p.pending {
		p.controls.Apply(s, cmd)
	}
	p.pending = p.pending[:0]
}

// Render refreshes the window title readout.
func (p *KeyPanel) Render(s *viewer.ViewerState) {
	title := p.readout(s)
	if title == p.lastTitle {
		return
	}
	p.lastTitle = title
	p.win.SetTitle(title)
}

func (p *KeyPanel) readout(s *viewer.ViewerState) string {
	var b strings.Builder
	sl, ex := s.Slice(), s.Extent()
	fmt.Fprintf(&b, "%s | axis %s | slice (%.3f, %.3f, %.3f) | extent (%.2f, %.2f, %.2f)",
		p.title, p.controls.Axis(), sl.X, sl.Y, sl.Z, ex.X, ex.Y, ex.Z)

	if pt, ok := s.Picked(); ok {
		t := r3.Vec{X: pt.X/ex.X + 0.5, Y: pt.Y/ex.Y + 0.5, Z: pt.Z/ex.Z + 0.5}
		fmt.Fprintf(&b, " | pick (%.3f, %.3f, %.3f)", pt.X, pt.Y, pt.Z)
		x, y, z := p.vol.VoxelAt(t)
		fmt.Fprintf(&b, " voxel [%d %d %d] = %.3v", x, y, z, p.vol.Sample(t))
	}
	return b.String()
}
