// Package raster is a software render backend for the scene graph. It
// collects draw calls, projects the unit primitives through the camera and
// rasterizes them flat-shaded into an image.
package raster

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"

	"linkage-renderer/internal/camera"
	"linkage-renderer/internal/mathutil"
	"linkage-renderer/internal/postprocess"
	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/shape"
)

// Options controls one frame.
type Options struct {
	Width       int
	Height      int
	Supersample int
	Background  scene.Color
	Transparent bool // leave uncovered pixels at alpha 0

	// Backdrop, when set, is stretched over the viewport behind the scene.
	Backdrop image.Image

	// FillRatio > 0 crops the frame to the drawn geometry and rescales it to
	// that fraction of the viewport.
	FillRatio float64
}

// Renderer implements scene.Renderer. It is not safe for concurrent use;
// give each goroutine its own Renderer over a shared mesh cache.
type Renderer struct {
	Meshes  shape.Resolver
	Shading Shading

	calls []scene.DrawCall
}

// NewRenderer creates a renderer with the default shading.
func NewRenderer(meshes shape.Resolver) *Renderer {
	return &Renderer{Meshes: meshes, Shading: DefaultShading()}
}

// Submit queues a draw call for the frame in progress.
func (r *Renderer) Submit(dc scene.DrawCall) {
	r.calls = append(r.calls, dc)
}

// Render draws g as seen from cam. The graph must already be updated.
func (r *Renderer) Render(g *scene.Graph, cam *camera.Orbit, opt Options) *image.NRGBA {
	if opt.FillRatio <= 0 {
		return r.render(g, cam, opt)
	}

	fit := opt
	fit.Transparent, fit.Backdrop = true, nil
	img := postprocess.CropAndCenter(r.render(g, cam, fit), opt.Width, opt.Height, opt.FillRatio)
	switch {
	case opt.Backdrop != nil:
		img = postprocess.Underlay(img, opt.Backdrop)
	case !opt.Transparent:
		img = postprocess.Flatten(img, opt.Background.NRGBA())
	}
	return img
}

func (r *Renderer) render(g *scene.Graph, cam *camera.Orbit, opt Options) *image.NRGBA {
	ss := opt.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := opt.Width*ss, opt.Height*ss
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	fb := NewFrameBuffer(w, h)
	if !opt.Transparent {
		fb.Fill(opt.Background.NRGBA())
	}
	if opt.Backdrop != nil {
		fb.DrawBackdrop(opt.Backdrop)
	}

	r.calls = r.calls[:0]
	g.Draw(r)

	view := cam.View()
	proj := cam.Projection(float64(w) / float64(h))
	for _, dc := range r.calls {
		r.drawCall(fb, dc, view, proj)
	}

	img := fb.Image()
	if ss > 1 {
		img = postprocess.Downsample(img, opt.Width, opt.Height)
	}
	return img
}

func (r *Renderer) drawCall(fb *FrameBuffer, dc scene.DrawCall, view, proj mgl64.Mat4) {
	mesh := r.Meshes.Resolve(dc.Shape.Kind)
	if mesh == nil || len(mesh.Verts) == 0 {
		return
	}

	mv := view.Mul4(dc.Model)
	px, py, pz, ok := ProjectVertices(mesh.Verts, proj.Mul4(mv), fb.Width, fb.Height)

	eye := make([]mgl64.Vec3, len(mesh.Verts))
	for i, v := range mesh.Verts {
		eye[i] = mathutil.TransformPoint(mv, v)
	}

	col := dc.Color.NRGBA()
	draw := func(a, b, c int) {
		if !ok[a] || !ok[b] || !ok[c] {
			return
		}
		n := eye[b].Sub(eye[a]).Cross(eye[c].Sub(eye[a]))
		if n.Len() < 1e-12 {
			return
		}
		// the eye sits at the eye-space origin
		toEye := eye[a].Add(eye[b]).Add(eye[c]).Mul(-1.0 / 3)
		if toEye.Len() < 1e-12 {
			return
		}
		lit := r.Shading.Shade(col, r.Shading.Intensity(n.Normalize(), toEye.Normalize()))
		RasterizeTriangle(fb, px, py, pz, [3]int{a, b, c}, lit)
	}

	for _, f := range mesh.Faces {
		draw(f.VI[0], f.VI[1], f.VI[2])
		// Quad: second triangle
		if f.Polygon == 4 {
			draw(f.VI[0], f.VI[2], f.VI[3])
		}
	}
}
