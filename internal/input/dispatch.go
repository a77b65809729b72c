package input

import (
	"github.com/pkg/errors"

	"linkage-renderer/internal/camera"
	"linkage-renderer/internal/control"
)

// ErrUnboundKey is returned for key events with no binding.
var ErrUnboundKey = errors.New("unbound key")

// ZoomStep is the camera distance change per scroll unit.
const ZoomStep = 0.5

// Dispatcher routes events for one viewer. Like the controller it drives,
// it belongs to a single goroutine.
type Dispatcher struct {
	Controller *control.Controller
	Camera     *camera.Orbit
	Keys       *Keymap
	// Height is the viewport height in pixels, used to scale panning.
	Height int

	lastX, lastY float64
}

// Handle applies ev. Camera-only events never fail; key events return the
// controller's error, or ErrUnboundKey.
func (d *Dispatcher) Handle(ev Event) error {
	switch ev.Kind {
	case KeyDown:
		b, ok := d.Keys.Lookup(ev.Key)
		if !ok {
			return errors.Wrapf(ErrUnboundKey, "%q", ev.Key)
		}
		if b.Cmd != nil {
			if err := d.Controller.Apply(*b.Cmd); err != nil {
				return errors.Wrapf(err, "key %q", ev.Key)
			}
		}
		if b.ResetView {
			d.Camera.Reset()
		}
	case MouseDown:
		d.lastX, d.lastY = ev.X, ev.Y
	case MouseDrag:
		if ev.Button == ButtonMiddle {
			d.Camera.Pan(ev.DX, ev.DY, d.Height)
		} else {
			d.Camera.Drag(ev.DX, ev.DY)
		}
		d.lastX += ev.DX
		d.lastY += ev.DY
	case Scroll:
		d.Camera.Zoom(ev.DY * ZoomStep)
	default:
		return errors.Errorf("unknown event kind %v", ev.Kind)
	}
	return nil
}

// Pointer returns the last known pointer position.
func (d *Dispatcher) Pointer() (x, y float64) { return d.lastX, d.lastY }
