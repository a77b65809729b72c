// Package shape builds the renderable primitives a scene node can carry.
//
// Every primitive is generated in unit space: radius 1 across local X/Y and
// spanning z in [-1, 1]. Limb shapes are shifted by Pivot so that z spans
// [0, 2] instead, which puts the rotation origin at the base of the segment.
package shape

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind selects the primitive geometry.
type Kind int

const (
	None Kind = iota // group node, nothing to draw
	Cube
	Cylinder
	Sphere
	Cone
)

var kindNames = [...]string{"none", "cube", "cylinder", "sphere", "cone"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every drawable kind.
var Kinds = []Kind{Cube, Cylinder, Sphere, Cone}

// Shape is the geometry attached to a scene node.
type Shape struct {
	Kind Kind
	Limb bool // limb geometry rotates about its base
}

// Drawable reports whether the shape produces geometry.
func (s Shape) Drawable() bool {
	return s.Kind != None
}

// Pivot returns the unit-space offset applied before the node scale.
func (s Shape) Pivot() mgl64.Mat4 {
	if !s.Limb {
		return mgl64.Ident4()
	}
	return mgl64.Translate3D(0, 0, 1)
}

func (s Shape) String() string {
	if s.Limb {
		return s.Kind.String() + "(limb)"
	}
	return s.Kind.String()
}
