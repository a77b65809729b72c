// Package viewer assembles one interactive crab: scene, controller, camera,
// input dispatch and a renderer. A Viewer belongs to a single goroutine.
package viewer

import (
	"image"

	"github.com/pkg/errors"

	"linkage-renderer/internal/camera"
	"linkage-renderer/internal/control"
	"linkage-renderer/internal/creature"
	"linkage-renderer/internal/input"
	"linkage-renderer/internal/raster"
	"linkage-renderer/internal/shape"
)

// Viewer is the state behind one interactive window.
type Viewer struct {
	Assembly   *creature.Assembly
	Controller *control.Controller
	Camera     *camera.Orbit
	Dispatcher *input.Dispatcher
	Renderer   *raster.Renderer

	// Options is the frame setup used by Frame.
	Options raster.Options
}

// New builds a fresh crab at rest. step <= 0 keeps the controller default.
func New(meshes shape.Resolver, opt raster.Options, step float64) (*Viewer, error) {
	a, err := creature.Build()
	if err != nil {
		return nil, errors.Wrap(err, "viewer: build creature")
	}
	ctl, err := control.New(a.Graph, a.Registry, a.Poses)
	if err != nil {
		return nil, errors.Wrap(err, "viewer: controller")
	}
	if step > 0 {
		ctl.Step = step
	}
	keys, err := input.NewKeymap(a.Registry)
	if err != nil {
		return nil, errors.Wrap(err, "viewer: keymap")
	}

	cam := camera.NewOrbit()
	return &Viewer{
		Assembly:   a,
		Controller: ctl,
		Camera:     cam,
		Dispatcher: &input.Dispatcher{Controller: ctl, Camera: cam, Keys: keys, Height: opt.Height},
		Renderer:   raster.NewRenderer(meshes),
		Options:    opt,
	}, nil
}

// Handle dispatches one event.
func (v *Viewer) Handle(ev input.Event) error {
	return v.Dispatcher.Handle(ev)
}

// Play dispatches events in order and stops at the first error.
func (v *Viewer) Play(events []input.Event) error {
	for i, ev := range events {
		if err := v.Handle(ev); err != nil {
			return errors.Wrapf(err, "event %d (%v)", i, ev)
		}
	}
	return nil
}

// Frame renders the current state with Options.
func (v *Viewer) Frame() *image.NRGBA {
	return v.Renderer.Render(v.Assembly.Graph, v.Camera, v.Options)
}

// State reports the controller state.
func (v *Viewer) State() control.State {
	return v.Controller.Snapshot()
}
