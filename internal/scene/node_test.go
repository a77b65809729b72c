package scene

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkage-renderer/internal/mathutil"
	"linkage-renderer/internal/shape"
)

func limb(name string) *Node {
	return NewNode(name, shape.Shape{Kind: shape.Cylinder, Limb: true}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, White)
}

func assertNear(t *testing.T, want, got mgl64.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-9, msgAndArgs...)
}

func assertNearMat(t *testing.T, want, got mgl64.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-9)
}

func TestRotateStaysInRange(t *testing.T) {
	n := limb("arm")
	n.SetRotationRange(AxisU, -30, 30)
	n.SetRotationRange(AxisV, 0, 45)
	n.SetRotationRange(AxisW, -15, 15)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		axis := Axes[rng.Intn(3)]
		if rng.Intn(2) == 0 {
			n.Rotate(rng.Float64()*40-20, axis)
		} else {
			n.SetCurrentAngle(rng.Float64()*200-100, axis)
		}
		for _, a := range Axes {
			assert.True(t, n.RotationRange(a).Contains(n.Angle(a)), "axis %v angle %v", a, n.Angle(a))
		}
	}
}

func TestRotateIdempotentAtBound(t *testing.T) {
	n := limb("leg")
	n.SetRotationRange(AxisU, 0, 30)

	for i := 0; i < 20; i++ {
		n.Rotate(2.5, AxisU)
	}
	assert.Equal(t, 30.0, n.Angle(AxisU))
	before := n.LocalMatrix()

	n.Rotate(2.5, AxisU)
	n.Rotate(2.5, AxisU)
	assert.Equal(t, 30.0, n.Angle(AxisU))
	assert.Equal(t, before, n.LocalMatrix())
}

func TestSetRotationRangeReclampsAndRejectsInverted(t *testing.T) {
	n := limb("stalk")
	n.SetCurrentAngle(50, AxisW)
	n.SetRotationRange(AxisW, -30, 30)
	assert.Equal(t, 30.0, n.Angle(AxisW))

	assert.Panics(t, func() { n.SetRotationRange(AxisW, 10, -10) })
}

func TestUnknownAxisPanics(t *testing.T) {
	n := limb("x")
	assert.Panics(t, func() { n.Rotate(1, Axis(3)) })
	assert.Panics(t, func() { n.SetCurrentAngle(1, Axis(-1)) })
}

func TestDefaultRangeUnbounded(t *testing.T) {
	n := limb("body")
	n.SetCurrentAngle(720, AxisV)
	assert.Equal(t, 720.0, n.Angle(AxisV))
}

func TestLocalMatrixOrder(t *testing.T) {
	n := NewNode("n", shape.Shape{Kind: shape.Cube}, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.5, -1, 2}, White)
	n.SetCurrentAngle(10, AxisU)
	n.SetCurrentAngle(20, AxisV)
	n.SetCurrentAngle(30, AxisW)

	want := mgl64.Translate3D(1, 2, 3).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(10))).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(20))).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(30))).
		Mul4(mgl64.Scale3D(0.5, -1, 2))
	assertNearMat(t, want, n.LocalMatrix())
}

func TestUThenVOrderSensitivity(t *testing.T) {
	n := limb("n")
	n.SetCurrentAngle(90, AxisU)
	n.SetCurrentAngle(90, AxisV)

	// R_U · R_V carries local +Z to +X; the reverse order would give -Y.
	p := mathutil.TransformPoint(n.JointMatrix(), mathutil.UnitZ)
	assertNear(t, mathutil.UnitX, p, "got %v", p)
}

func TestRotatingUKeepsPointOnUAxis(t *testing.T) {
	n := limb("n")
	n.SetCurrentAngle(37, AxisU)
	p := mathutil.TransformPoint(n.JointMatrix(), mgl64.Vec3{2, 0, 0})
	assertNear(t, mgl64.Vec3{2, 0, 0}, p)
}

func TestCustomAxis(t *testing.T) {
	n := limb("n")
	n.SetRotationAxis(AxisU, mgl64.Vec3{0, 0, 1})
	n.SetCurrentAngle(90, AxisU)
	p := mathutil.TransformPoint(n.JointMatrix(), mathutil.UnitX)
	assertNear(t, mathutil.UnitY, p)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, n.RotationAxis(AxisU))
}

func TestPlacementChangesInvalidateJoint(t *testing.T) {
	n := limb("n")
	n.SetCurrentAngle(90, AxisU)
	assertNear(t, mgl64.Vec3{}, mathutil.Origin(n.JointMatrix()))

	n.SetRotationAxis(AxisU, mgl64.Vec3{0, 0, 1})
	assertNear(t, mathutil.UnitY, mathutil.TransformPoint(n.JointMatrix(), mathutil.UnitX))

	n.SetPosition(mgl64.Vec3{1, 2, 3})
	assertNear(t, mgl64.Vec3{1, 2, 3}, mathutil.Origin(n.JointMatrix()))

	n.SetScale(mgl64.Vec3{2, 2, 2})
	assertNear(t, mgl64.Vec3{1, 4, 3}, mathutil.TransformPoint(n.LocalMatrix(), mathutil.UnitX))
}

func TestReset(t *testing.T) {
	n := limb("claw")
	n.SetDefaultAngles(5, 0, 0)
	n.Rotate(10, AxisU)
	n.Rotate(-4, AxisW)
	n.SetCurrentColor(Red)

	n.Reset(ResetColor)
	assert.Equal(t, White, n.Color())
	assert.Equal(t, 15.0, n.Angle(AxisU))

	n.SetCurrentColor(Blue)
	n.Reset()
	assert.Equal(t, White, n.Color())
	assert.Equal(t, [3]float64{5, 0, 0}, n.Angles())
}

func TestModelAppliesScaleAndPivot(t *testing.T) {
	g := NewGraph()
	n := NewNode("seg", shape.Shape{Kind: shape.Cylinder, Limb: true}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0.1, 0.1, 0.2}, White)
	_, err := g.Attach(g.Root(), n)
	require.NoError(t, err)
	g.Update(mgl64.Ident4())

	base := mathutil.TransformPoint(n.Model(), mgl64.Vec3{0, 0, -1})
	tip := mathutil.TransformPoint(n.Model(), mgl64.Vec3{0, 0, 1})
	assertNear(t, mgl64.Vec3{0, 0, 1}, base, "base %v", base)
	assertNear(t, mgl64.Vec3{0, 0, 1.4}, tip, "tip %v", tip)
}

func TestColorConversions(t *testing.T) {
	c := RGB255(172, 160, 113)
	nc := c.NRGBA()
	assert.Equal(t, uint8(172), nc.R)
	assert.Equal(t, uint8(113), nc.B)
	assert.Equal(t, float32(1), Red.Float4()[0])
	assert.Equal(t, "#aca071", c.Hex())

	parsed, err := ParseColor("#aca071")
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
	_, err = ParseColor("teal")
	assert.Error(t, err)
	_, err = ParseColor("zzzzzz")
	assert.Error(t, err)
}
