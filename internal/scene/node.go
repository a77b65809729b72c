package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"linkage-renderer/internal/mathutil"
	"linkage-renderer/internal/shape"
)

// Axis selects one of the three node-local rotation axes.
type Axis int

const (
	AxisU Axis = iota
	AxisV
	AxisW
)

// Axes lists U, V, W in application order.
var Axes = [3]Axis{AxisU, AxisV, AxisW}

func (a Axis) String() string {
	switch a {
	case AxisU:
		return "U"
	case AxisV:
		return "V"
	case AxisW:
		return "W"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

func (a Axis) check() {
	if a < AxisU || a > AxisW {
		panic(fmt.Sprintf("scene: invalid axis %d", int(a)))
	}
}

// Range is an inclusive rotation limit in degrees.
type Range struct {
	Min, Max float64
}

// Unbounded places no limit on an axis.
var Unbounded = Range{Min: math.Inf(-1), Max: math.Inf(1)}

// Clamp returns v limited to the range.
func (r Range) Clamp(v float64) float64 {
	return mathutil.ClampAngle(v, r.Min, r.Max)
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Attr names a resettable piece of node state.
type Attr int

const (
	ResetColor Attr = iota
	ResetAngles
)

// Node is one rigid part of the model. Placement, angles and color change
// through the methods so that range clamping and matrix caching stay
// consistent.
type Node struct {
	Name  string
	Shape shape.Shape
	// Mirrored marks the opposite-side counterpart of a bilateral pair.
	Mirrored bool

	position mgl64.Vec3
	scale    mgl64.Vec3
	axes     [3]mgl64.Vec3 // local U, V, W rotation axes
	ranges        [3]Range
	angles        [3]float64
	defaultAngles [3]float64
	color         Color
	defaultColor  Color

	id       ID
	parent   ID
	children []ID

	local mgl64.Mat4
	joint mgl64.Mat4
	world mgl64.Mat4
	dirty bool
}

// NewNode creates a detached node with unbounded ranges and the canonical axes.
func NewNode(name string, s shape.Shape, pos, scale mgl64.Vec3, c Color) *Node {
	return &Node{
		Name:         name,
		Shape:        s,
		position:     pos,
		scale:        scale,
		axes:         [3]mgl64.Vec3{mathutil.UnitX, mathutil.UnitY, mathutil.UnitZ},
		ranges:       [3]Range{Unbounded, Unbounded, Unbounded},
		color:        c,
		defaultColor: c,
		id:           Nil,
		parent:       Nil,
		world:        mgl64.Ident4(),
		dirty:        true,
	}
}

// ID returns the node handle, or Nil while the node is not in a graph.
func (n *Node) ID() ID { return n.id }

// Position returns the joint offset from the parent frame.
func (n *Node) Position() mgl64.Vec3 { return n.position }

// SetPosition moves the joint within the parent frame.
func (n *Node) SetPosition(p mgl64.Vec3) {
	n.position = p
	n.dirty = true
}

// Scale returns the geometry scale. It is not inherited by children.
func (n *Node) Scale() mgl64.Vec3 { return n.scale }

// SetScale resizes the node's own geometry.
func (n *Node) SetScale(s mgl64.Vec3) {
	n.scale = s
	n.dirty = true
}

// RotationAxis returns the local vector axis turns about.
func (n *Node) RotationAxis(axis Axis) mgl64.Vec3 {
	axis.check()
	return n.axes[axis]
}

// SetRotationAxis replaces the local vector for axis. v must be non-zero.
func (n *Node) SetRotationAxis(axis Axis, v mgl64.Vec3) {
	axis.check()
	n.axes[axis] = v
	n.dirty = true
}

// SetRotationRange limits future rotation on axis to [min, max] degrees and
// clamps the current angle into it.
func (n *Node) SetRotationRange(axis Axis, min, max float64) {
	axis.check()
	if min > max {
		panic(fmt.Sprintf("scene: node %q axis %v range min %v > max %v", n.Name, axis, min, max))
	}
	n.ranges[axis] = Range{Min: min, Max: max}
	n.setAngle(axis, n.angles[axis])
}

// RotationRange returns the limit on axis.
func (n *Node) RotationRange(axis Axis) Range {
	axis.check()
	return n.ranges[axis]
}

// Rotate adds delta degrees on axis, clamped to the axis range.
func (n *Node) Rotate(delta float64, axis Axis) {
	axis.check()
	n.setAngle(axis, n.angles[axis]+delta)
}

// SetCurrentAngle sets the absolute angle on axis, clamped to the axis range.
func (n *Node) SetCurrentAngle(value float64, axis Axis) {
	axis.check()
	n.setAngle(axis, value)
}

// SetDefaultAngles sets the rest orientation restored by Reset.
func (n *Node) SetDefaultAngles(u, v, w float64) {
	for i, a := range [3]float64{u, v, w} {
		n.defaultAngles[i] = n.ranges[i].Clamp(a)
		n.setAngle(Axis(i), a)
	}
}

func (n *Node) setAngle(axis Axis, value float64) {
	v := n.ranges[axis].Clamp(value)
	if v == n.angles[axis] {
		return
	}
	n.angles[axis] = v
	n.dirty = true
}

// Angle returns the current angle on axis in degrees.
func (n *Node) Angle(axis Axis) float64 {
	axis.check()
	return n.angles[axis]
}

// Angles returns the current U, V, W angles.
func (n *Node) Angles() [3]float64 { return n.angles }

// Color returns the current display color.
func (n *Node) Color() Color { return n.color }

// DefaultColor returns the construction-time color.
func (n *Node) DefaultColor() Color { return n.defaultColor }

// SetCurrentColor overrides the display color until reset.
func (n *Node) SetCurrentColor(c Color) { n.color = c }

// Reset restores the named attributes to their construction-time values.
// With no attributes every mutable attribute is restored.
func (n *Node) Reset(attrs ...Attr) {
	if len(attrs) == 0 {
		attrs = []Attr{ResetColor, ResetAngles}
	}
	for _, a := range attrs {
		switch a {
		case ResetColor:
			n.color = n.defaultColor
		case ResetAngles:
			for i := range n.angles {
				n.setAngle(Axis(i), n.defaultAngles[i])
			}
		default:
			panic(fmt.Sprintf("scene: unknown reset attribute %d", int(a)))
		}
	}
}

// JointMatrix is T(position) · R_U · R_V · R_W. Children are placed in this frame.
func (n *Node) JointMatrix() mgl64.Mat4 {
	if n.dirty {
		n.joint = mgl64.Translate3D(n.position[0], n.position[1], n.position[2]).
			Mul4(mathutil.AxisRotation(n.axes[AxisU], n.angles[AxisU])).
			Mul4(mathutil.AxisRotation(n.axes[AxisV], n.angles[AxisV])).
			Mul4(mathutil.AxisRotation(n.axes[AxisW], n.angles[AxisW]))
		n.local = n.joint.Mul4(mgl64.Scale3D(n.scale[0], n.scale[1], n.scale[2]))
		n.dirty = false
	}
	return n.joint
}

// LocalMatrix is T(position) · R_U · R_V · R_W · S(scale).
func (n *Node) LocalMatrix() mgl64.Mat4 {
	n.JointMatrix()
	return n.local
}

// World returns the joint frame in world space as of the last Graph.Update.
func (n *Node) World() mgl64.Mat4 { return n.world }

// Model returns the matrix that places the node's unit geometry in world space.
func (n *Node) Model() mgl64.Mat4 {
	return n.world.Mul4(mgl64.Scale3D(n.scale[0], n.scale[1], n.scale[2])).Mul4(n.Shape.Pivot())
}

// Parent returns the owning node, or Nil for the root and detached nodes.
func (n *Node) Parent() ID { return n.parent }

// Children returns the owned child handles in insertion order.
func (n *Node) Children() []ID {
	out := make([]ID, len(n.children))
	copy(out, n.children)
	return out
}
