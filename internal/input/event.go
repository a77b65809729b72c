// Package input decodes discrete viewer events and routes them to the pose
// controller or the camera.
package input

import "fmt"

// Kind is the event type.
type Kind int

const (
	KeyDown Kind = iota
	MouseDown
	MouseDrag
	Scroll
)

func (k Kind) String() string {
	switch k {
	case KeyDown:
		return "key"
	case MouseDown:
		return "mouse-down"
	case MouseDrag:
		return "drag"
	case Scroll:
		return "scroll"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Button identifies the mouse button of a pointer event.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Symbolic names for non-character keys.
const (
	ArrowLeft  = "left"
	ArrowRight = "right"
	ArrowUp    = "up"
	ArrowDown  = "down"
	Escape     = "escape"
)

// Event is one already-decoded input event. Key carries the symbolic key for
// KeyDown; X, Y the pointer position for MouseDown; DX, DY the movement for
// MouseDrag and Scroll.
type Event struct {
	Kind   Kind
	Key    string
	Button Button
	X, Y   float64
	DX, DY float64
}

// Key returns a key-down event.
func Key(k string) Event { return Event{Kind: KeyDown, Key: k} }

// Drag returns a left-button drag event.
func Drag(dx, dy float64) Event { return Event{Kind: MouseDrag, DX: dx, DY: dy} }

func (e Event) String() string {
	switch e.Kind {
	case KeyDown:
		return "key " + e.Key
	case MouseDrag, Scroll:
		return fmt.Sprintf("%v %g,%g", e.Kind, e.DX, e.DY)
	}
	return fmt.Sprintf("%v %g,%g", e.Kind, e.X, e.Y)
}
