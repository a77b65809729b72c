// Package creature defines the articulated crab: its part hierarchy, joint
// limits, palette and the table of recallable poses.
package creature

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/shape"
)

// Assembly is one independent instance of the creature.
type Assembly struct {
	Graph    *scene.Graph
	Registry *scene.Registry
	Poses    scene.PoseTable

	Model scene.ID // container for the crab parts
	Axes  scene.ID // world axes display aid, not selectable
}

// Order returns the part handles in canonical order.
func (a *Assembly) Order() []scene.ID { return a.Registry.Order() }

// Part returns the node registered under name.
func (a *Assembly) Part(name string) (*scene.Node, error) {
	id, err := a.Registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return a.Graph.Node(id)
}

// Names returns the registered part names in canonical order.
func Names() []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.name
	}
	return out
}

// Build constructs a fresh crab with every part at rest and world matrices
// already propagated.
func Build() (*Assembly, error) {
	g := scene.NewGraph()
	a := &Assembly{
		Graph:    g,
		Registry: scene.NewRegistry(),
		Poses:    Poses(),
	}

	var err error
	a.Model, err = g.Attach(g.Root(), scene.NewNode("model", shape.Shape{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, scene.White))
	if err != nil {
		return nil, errors.Wrap(err, "model container")
	}

	for _, p := range parts {
		parent := a.Model
		if p.parent != "" {
			parent, err = a.Registry.Lookup(p.parent)
			if err != nil {
				return nil, errors.Wrapf(err, "part %s", p.name)
			}
		}
		n := scene.NewNode(p.name, shape.Shape{Kind: p.kind, Limb: p.limb}, mgl64.Vec3(p.pos), mgl64.Vec3(p.scale), p.color)
		n.Mirrored = p.mirrored
		for _, axis := range scene.Axes {
			n.SetRotationRange(axis, p.ranges[axis].Min, p.ranges[axis].Max)
		}
		id, err := g.Attach(parent, n)
		if err != nil {
			return nil, errors.Wrapf(err, "part %s", p.name)
		}
		if err := a.Registry.Register(p.name, id); err != nil {
			return nil, err
		}
	}

	a.Axes, err = attachAxes(g)
	if err != nil {
		return nil, err
	}

	if err := a.Poses.Validate(a.Registry.Len()); err != nil {
		return nil, err
	}
	g.Update(mgl64.Ident4())
	return a, nil
}

// attachAxes adds the red, green and blue unit axes at (-1, -1, -1).
func attachAxes(g *scene.Graph) (scene.ID, error) {
	id, err := g.Attach(g.Root(), scene.NewNode("axes", shape.Shape{}, mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}, scene.White))
	if err != nil {
		return scene.Nil, errors.Wrap(err, "axes container")
	}
	rod := shape.Shape{Kind: shape.Cylinder, Limb: true}
	thin := mgl64.Vec3{0.02, 0.02, 0.5}
	for _, ax := range []struct {
		name    string
		color   scene.Color
		u, v, w float64
	}{
		{"x_axis", scene.Red, 0, 90, 0},
		{"y_axis", scene.Green, -90, 0, 0},
		{"z_axis", scene.Blue, 0, 0, 0},
	} {
		n := scene.NewNode(ax.name, rod, mgl64.Vec3{}, thin, ax.color)
		n.SetDefaultAngles(ax.u, ax.v, ax.w)
		if _, err := g.Attach(id, n); err != nil {
			return scene.Nil, errors.Wrapf(err, "axis %s", ax.name)
		}
	}
	return id, nil
}
