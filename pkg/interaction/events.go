// Package interaction turns raw mouse input into a per-frame snapshot of
// what the user is doing: orbiting the 3D view, picking on a cross-section,
// or nothing.
package interaction

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Action is a button transition.
type Action int

const (
	Press Action = iota
	Release
)

// EventKind distinguishes button transitions from cursor motion.
type EventKind int

const (
	ButtonEvent EventKind = iota
	CursorEvent
)

// Event is one input callback, recorded with the cursor position at the
// time it fired.
type Event struct {
	Kind   EventKind
	Button Button
	Action Action
	X, Y   float64
}

// Queue buffers input callbacks until the frame drains them. Callbacks and
// the frame run on the same goroutine, so the queue is not synchronized.
type Queue struct {
	events []Event
}

// PushButton records a button transition at cursor position (x, y).
func (q *Queue) PushButton(b Button, a Action, x, y float64) {
	q.events = append(q.events, Event{Kind: ButtonEvent, Button: b, Action: a, X: x, Y: y})
}

// PushCursor records cursor motion to (x, y).
func (q *Queue) PushCursor(x, y float64) {
	q.events = append(q.events, Event{Kind: CursorEvent, X: x, Y: y})
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns the pending events in arrival order and empties the queue.
func (q *Queue) Drain() []Event {
	events := q.events
	q.events = nil
	return events
}
