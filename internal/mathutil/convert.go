package mathutil

import "github.com/go-gl/mathgl/mgl64"

// Origin returns the translation column of an affine matrix.
func Origin(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}

// TransformPoint transforms p (w=1) by m without perspective divide.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}
