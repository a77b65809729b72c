package web

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"log"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"linkage-renderer/internal/control"
	"linkage-renderer/internal/export"
	"linkage-renderer/internal/input"
	"linkage-renderer/internal/texture"
	"linkage-renderer/internal/viewer"
)

// ErrClosed is returned once the session loop has stopped.
var ErrClosed = errors.New("session closed")

type job struct {
	fn   func(v *viewer.Viewer) error
	done chan error
}

// Session serializes all access to one viewer through a single goroutine.
// Every mutation is followed by a broadcast of the new state and frame.
type Session struct {
	v         *viewer.Viewer
	hub       *Hub
	format    export.Format
	backdrops *texture.Cache
	jobs      chan job
	stop      chan struct{}
}

// NewSession wraps v. Frames pushed to the hub use format.
func NewSession(v *viewer.Viewer, hub *Hub, format export.Format) *Session {
	return &Session{
		v:      v,
		hub:    hub,
		format: format,
		jobs:   make(chan job),
		stop:   make(chan struct{}),
	}
}

// UseBackdrops names the images SetBackdrop can pick from. Call before Run.
func (s *Session) UseBackdrops(c *texture.Cache) {
	s.backdrops = c
}

// Run owns the viewer until ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	defer close(s.stop)
	s.publish()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.jobs:
			j.done <- j.fn(s.v)
		}
	}
}

func (s *Session) do(ctx context.Context, fn func(v *viewer.Viewer) error) error {
	j := job{fn: fn, done: make(chan error, 1)}
	select {
	case s.jobs <- j:
	case <-s.stop:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-j.done
}

// mutate runs fn and publishes the result, even when fn fails part way.
func (s *Session) mutate(ctx context.Context, fn func(v *viewer.Viewer) error) (control.State, error) {
	var st control.State
	err := s.do(ctx, func(v *viewer.Viewer) error {
		err := fn(v)
		s.publish()
		st = v.State()
		return err
	})
	return st, err
}

// Play dispatches events in order.
func (s *Session) Play(ctx context.Context, events ...input.Event) (control.State, error) {
	return s.mutate(ctx, func(v *viewer.Viewer) error { return v.Play(events) })
}

// ApplyPose recalls pose index.
func (s *Session) ApplyPose(ctx context.Context, index int) (control.State, error) {
	return s.mutate(ctx, func(v *viewer.Viewer) error { return v.Controller.ApplyPose(index) })
}

// Select toggles the named part.
func (s *Session) Select(ctx context.Context, name string) (control.State, error) {
	return s.mutate(ctx, func(v *viewer.Viewer) error { return v.Controller.ToggleSelectName(name) })
}

// SetBackdrop switches the backdrop to the named image. "none" removes it.
func (s *Session) SetBackdrop(ctx context.Context, name string) (control.State, error) {
	var img image.Image
	if name != "none" {
		if s.backdrops == nil {
			return control.State{}, errors.Wrapf(texture.ErrNotFound, "%q (no backdrop directory)", name)
		}
		loaded, err := s.backdrops.Load(name)
		if err != nil {
			return control.State{}, err
		}
		img = loaded
	}
	return s.mutate(ctx, func(v *viewer.Viewer) error {
		v.Options.Backdrop = img
		return nil
	})
}

// Model exports the current pose as glTF, binary or JSON.
func (s *Session) Model(ctx context.Context, binary bool) ([]byte, error) {
	var buf bytes.Buffer
	err := s.do(ctx, func(v *viewer.Viewer) error {
		doc, err := export.GLTF(v.Assembly.Graph, v.Renderer.Meshes)
		if err != nil {
			return err
		}
		return export.EncodeGLTF(&buf, doc, binary)
	})
	return buf.Bytes(), err
}

// State returns the controller state.
func (s *Session) State(ctx context.Context) (control.State, error) {
	var st control.State
	err := s.do(ctx, func(v *viewer.Viewer) error {
		st = v.State()
		return nil
	})
	return st, err
}

// Frame renders the current view encoded as f.
func (s *Session) Frame(ctx context.Context, f export.Format) ([]byte, error) {
	var buf bytes.Buffer
	err := s.do(ctx, func(v *viewer.Viewer) error {
		return export.EncodeImage(&buf, v.Frame(), f)
	})
	return buf.Bytes(), err
}

// publish must run on the session goroutine.
func (s *Session) publish() {
	if s.hub == nil {
		return
	}
	state, err := json.Marshal(s.v.State())
	if err != nil {
		log.Printf("[web] state marshal error: %v", err)
		return
	}
	var frame bytes.Buffer
	if err := export.EncodeImage(&frame, s.v.Frame(), s.format); err != nil {
		log.Printf("[web] frame encode error: %v", err)
		return
	}
	s.hub.Broadcast(
		message{kind: websocket.TextMessage, data: state},
		message{kind: websocket.BinaryMessage, data: frame.Bytes()},
	)
}
