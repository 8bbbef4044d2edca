package interaction

import "fmt"

// State is the interaction mode.
type State int

const (
	Idle State = iota
	RightDragging
	LeftPicking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RightDragging:
		return "right-dragging"
	case LeftPicking:
		return "left-picking"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Snapshot is the consistent view of the input for one frame.
type Snapshot struct {
	State State

	// Cursor position after the last drained event.
	CursorX, CursorY float64

	// Accumulated drag since the previous frame while RightDragging.
	OrbitDX, OrbitDY float64

	// PickLive is set when the left button was held at some point during
	// the frame and the cursor is not over the GUI. PickX and PickY are the
	// last cursor position seen while it was held, so a click that presses
	// and releases within one frame still picks where it was released.
	PickLive     bool
	PickX, PickY float64
}

// Machine tracks the interaction mode across frames.
type Machine struct {
	state   State
	anchorX float64
	anchorY float64
	cursorX float64
	cursorY float64
}

// State returns the current mode.
func (m *Machine) State() State {
	return m.state
}

// Reset returns the machine to Idle and forgets the drag anchor.
func (m *Machine) Reset() {
	m.state = Idle
	m.anchorX, m.anchorY = m.cursorX, m.cursorY
}

// Step applies the frame's events in order and returns the resulting
// snapshot. overGUI reports whether the cursor is over GUI chrome; a left
// press there belongs to the GUI and never starts a pick.
func (m *Machine) Step(events []Event, overGUI bool) Snapshot {
	var snap Snapshot
	held := m.state == LeftPicking
	snap.PickX, snap.PickY = m.cursorX, m.cursorY
	for _, e := range events {
		m.cursorX, m.cursorY = e.X, e.Y
		switch e.Kind {
		case ButtonEvent:
			m.button(e, overGUI)
			if e.Button == ButtonLeft && e.Action == Release && held {
				snap.PickX, snap.PickY = e.X, e.Y
			}
		case CursorEvent:
			if m.state == RightDragging {
				snap.OrbitDX += e.X - m.anchorX
				snap.OrbitDY += e.Y - m.anchorY
				m.anchorX, m.anchorY = e.X, e.Y
			}
		}
		if m.state == LeftPicking {
			held = true
			snap.PickX, snap.PickY = e.X, e.Y
		}
	}

	snap.State = m.state
	snap.CursorX, snap.CursorY = m.cursorX, m.cursorY
	snap.PickLive = held && !overGUI
	return snap
}

func (m *Machine) button(e Event, overGUI bool) {
	switch {
	case e.Button == ButtonRight && e.Action == Press && m.state == Idle:
		m.state = RightDragging
		m.anchorX, m.anchorY = e.X, e.Y
	case e.Button == ButtonRight && e.Action == Release && m.state == RightDragging:
		m.state = Idle
	case e.Button == ButtonLeft && e.Action == Press && m.state == Idle && !overGUI:
		m.state = LeftPicking
	case e.Button == ButtonLeft && e.Action == Release && m.state == LeftPicking:
		m.state = Idle
	}
}
