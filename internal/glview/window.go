// Package glview is the GLFW/OpenGL front end of the viewer: window and
// input callbacks, shader materials, geometry, the 3D volume texture and a
// keyboard control panel.
package glview

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"

	"orthoslice/internal/models"
	"orthoslice/pkg/interaction"
)

// WindowOptions configures the native window.
type WindowOptions struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Window owns the GLFW window and its OpenGL context. Input callbacks push
// into an interaction.Queue that the frame drains. The caller must lock the
// OS thread before NewWindow.
type Window struct {
	win    *glfw.Window
	events interaction.Queue
	log    *logrus.Entry
}

// NewWindow initializes GLFW, creates the window and loads OpenGL.
func NewWindow(opts WindowOptions) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw: %v", models.ErrGraphicsInit, err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %v", models.ErrGraphicsInit, err)
	}
	win.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: opengl: %v", models.ErrGraphicsInit, err)
	}

	w := &Window{
		win: win,
		log: logrus.WithField("component", "window"),
	}
	w.log.WithField("version", gl.GoStr(gl.GetString(gl.VERSION))).Info("opengl context ready")

	win.SetMouseButtonCallback(w.onMouseButton)
	win.SetCursorPosCallback(w.onCursorPos)
	return w, nil
}

// framebufferCursor converts a cursor position from screen coordinates to
// framebuffer pixels, which differ on high-DPI displays.
func (w *Window) framebufferCursor(x, y float64) (float64, float64) {
	ww, wh := w.win.GetSize()
	fw, fh := w.win.GetFramebufferSize()
	if ww == 0 || wh == 0 {
		return x, y
	}
	return x * float64(fw) / float64(ww), y * float64(fh) / float64(wh)
}

func (w *Window) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	var b interaction.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = interaction.ButtonLeft
	case glfw.MouseButtonRight:
		b = interaction.ButtonRight
	case glfw.MouseButtonMiddle:
		b = interaction.ButtonMiddle
	default:
		return
	}

	var a interaction.Action
	switch action {
	case glfw.Press:
		a = interaction.Press
	case glfw.Release:
		a = interaction.Release
	default:
		return
	}

	x, y := w.framebufferCursor(w.win.GetCursorPos())
	w.events.PushButton(b, a, x, y)
}

func (w *Window) onCursorPos(_ *glfw.Window, x, y float64) {
	w.events.PushCursor(w.framebufferCursor(x, y))
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// PollEvents runs pending GLFW callbacks.
func (w *Window) PollEvents() { glfw.PollEvents() }

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

// Events returns the input queue filled by the callbacks.
func (w *Window) Events() *interaction.Queue { return &w.events }

// SwapBuffers presents the frame.
func (w *Window) SwapBuffers() { w.win.SwapBuffers() }

// SetTitle replaces the window title.
func (w *Window) SetTitle(title string) { w.win.SetTitle(title) }

// SetKeyCallback installs a keyboard handler.
func (w *Window) SetKeyCallback(fn func(key glfw.Key, action glfw.Action, mods glfw.ModifierKey)) {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		fn(key, action, mods)
	})
}

// RequestClose asks the frame loop to stop after the current frame.
func (w *Window) RequestClose() { w.win.SetShouldClose(true) }

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
