// Package camera provides the orbit camera used to view the model.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"linkage-renderer/internal/mathutil"
)

// Viewer defaults.
const (
	DefaultDistance = 6.0
	DefaultPhi      = math.Pi / 6
	DefaultTheta    = math.Pi / 2

	FOV  = 45.0 // degrees, vertical
	Near = 0.01
	Far  = 100.0

	MinDistance = 0.5
)

// Drag sensitivity in pixels per radian.
const (
	pitchPixels = 50.0
	yawPixels   = 100.0
)

// Orbit circles a look-at point. Phi is the elevation in [-π/2, π/2] and
// Theta the azimuth in [0, 2π), measured from +X toward +Z.
type Orbit struct {
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	Distance float64
	Phi      float64
	Theta    float64
}

// NewOrbit returns a camera in the default viewing position.
func NewOrbit() *Orbit {
	o := &Orbit{}
	o.Reset()
	return o
}

// Reset restores the default viewing position.
func (o *Orbit) Reset() {
	o.Target = mgl64.Vec3{}
	o.Up = mathutil.UnitY
	o.Distance = DefaultDistance
	o.Phi = DefaultPhi
	o.Theta = DefaultTheta
}

// Position returns the eye point.
func (o *Orbit) Position() mgl64.Vec3 {
	ct, st := math.Cos(o.Theta), math.Sin(o.Theta)
	cp, sp := math.Cos(o.Phi), math.Sin(o.Phi)
	return o.Target.Add(mgl64.Vec3{
		o.Distance * ct * cp,
		o.Distance * sp,
		o.Distance * st * cp,
	})
}

// Drag orbits by a mouse movement of (dx, dy) pixels. Vertical movement
// stops at the poles.
func (o *Orbit) Drag(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	o.Phi = math.Min(math.Pi/2, math.Max(-math.Pi/2, o.Phi-dy/pitchPixels))
	o.Theta = mathutil.WrapRadians(o.Theta + dx/yawPixels)
}

// Zoom moves the eye toward the target by delta units.
func (o *Orbit) Zoom(delta float64) {
	if !finite(delta) {
		return
	}
	o.Distance = math.Max(MinDistance, o.Distance-delta)
}

// Pan slides the target in the view plane. dx and dy are in pixels of a
// viewport of the given height.
func (o *Orbit) Pan(dx, dy float64, height int) {
	if height <= 0 || !finite(dx) || !finite(dy) {
		return
	}
	fwd := o.Target.Sub(o.Position()).Normalize()
	right := fwd.Cross(o.Up)
	if right.Len() < 1e-9 {
		return
	}
	right = right.Normalize()
	up := right.Cross(fwd)

	// world units per pixel at the target depth
	unit := 2 * o.Distance * math.Tan(mgl64.DegToRad(FOV/2)) / float64(height)
	o.Target = o.Target.Sub(right.Mul(dx * unit)).Add(up.Mul(dy * unit))
}

// View returns the world-to-eye matrix.
func (o *Orbit) View() mgl64.Mat4 {
	return mgl64.LookAtV(o.Position(), o.Target, o.Up)
}

// Projection returns the perspective matrix for a viewport of the given
// width/height ratio.
func (o *Orbit) Projection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(FOV), aspect, Near, Far)
}

// ViewProjection returns Projection(aspect) · View().
func (o *Orbit) ViewProjection(aspect float64) mgl64.Mat4 {
	return o.Projection(aspect).Mul4(o.View())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
