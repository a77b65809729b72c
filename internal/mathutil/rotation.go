package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Unit basis vectors for the default node axes.
var (
	UnitX = mgl64.Vec3{1, 0, 0}
	UnitY = mgl64.Vec3{0, 1, 0}
	UnitZ = mgl64.Vec3{0, 0, 1}
)

// AxisRotation returns a homogeneous rotation about axis. Angle in degrees.
// The canonical basis vectors take the exact single-axis path.
func AxisRotation(axis mgl64.Vec3, deg float64) mgl64.Mat4 {
	rad := mgl64.DegToRad(deg)
	switch axis {
	case UnitX:
		return mgl64.HomogRotate3DX(rad)
	case UnitY:
		return mgl64.HomogRotate3DY(rad)
	case UnitZ:
		return mgl64.HomogRotate3DZ(rad)
	}
	return mgl64.HomogRotate3D(rad, axis.Normalize())
}

// ClampAngle clamps an angle in degrees to [lo, hi]. Infinite bounds are allowed.
func ClampAngle(deg, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, deg))
}

// WrapRadians wraps an angle into [0, 2π).
func WrapRadians(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
