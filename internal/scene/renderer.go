package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"linkage-renderer/internal/shape"
)

// DrawCall is one render submission: a unit primitive, the matrix that
// places it in world space and its display color.
type DrawCall struct {
	ID    ID
	Name  string
	Shape shape.Shape
	Model mgl64.Mat4
	Color Color
}

// Renderer receives draw calls. The graph treats it as an opaque backend.
type Renderer interface {
	Submit(dc DrawCall)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(dc DrawCall)

// Submit calls f(dc).
func (f RendererFunc) Submit(dc DrawCall) { f(dc) }
