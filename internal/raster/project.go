package raster

import "github.com/go-gl/mathgl/mgl64"

// ProjectVertices transforms model-space vertices by mvp to screen
// coordinates. Returns px, py (pixels, y down), pz (1/w, larger is closer)
// and ok, which is false for vertices on or behind the near plane.
func ProjectVertices(verts []mgl64.Vec3, mvp mgl64.Mat4, width, height int) (px, py, pz []float64, ok []bool) {
	n := len(verts)
	px = make([]float64, n)
	py = make([]float64, n)
	pz = make([]float64, n)
	ok = make([]bool, n)

	halfW := float64(width) / 2
	halfH := float64(height) / 2

	for i, v := range verts {
		clip := mvp.Mul4x1(v.Vec4(1))
		w := clip.W()
		if w <= 1e-9 {
			continue
		}
		inv := 1 / w
		px[i] = (clip.X()*inv + 1) * halfW
		py[i] = (1 - clip.Y()*inv) * halfH
		pz[i] = inv
		ok[i] = true
	}
	return px, py, pz, ok
}
