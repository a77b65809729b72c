// Package scene holds the transform hierarchy: nodes with constrained
// three-axis joints, the graph that propagates world matrices down the tree,
// the named registry of parts and the pose tables applied to it.
//
// Nodes live in an arena owned by Graph and are addressed by ID handles.
// Only parent-to-child edges are followed during traversal; the parent handle
// on each node is bookkeeping used to reject cycles and double ownership.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"linkage-renderer/internal/shape"
)

// ID addresses a node in a Graph.
type ID int

// Nil is the absent handle.
const Nil ID = -1

// Graph is a strict tree of nodes rooted at a shapeless container.
type Graph struct {
	nodes []*Node
	root  ID
}

// NewGraph creates a graph holding only the root container.
func NewGraph() *Graph {
	g := &Graph{}
	g.root = g.Add(NewNode("root", shape.Shape{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, White))
	return g
}

// Root returns the handle of the top-level container.
func (g *Graph) Root() ID { return g.root }

// Len returns the number of nodes in the arena, attached or not.
func (g *Graph) Len() int { return len(g.nodes) }

// Add places n in the arena, detached, and returns its handle.
func (g *Graph) Add(n *Node) ID {
	id := ID(len(g.nodes))
	n.id = id
	n.parent = Nil
	n.children = nil
	g.nodes = append(g.nodes, n)
	return id
}

// Node returns the node for id.
func (g *Graph) Node(id ID) (*Node, error) {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil, errors.Wrapf(ErrUnknownNode, "id %d", id)
	}
	return g.nodes[id], nil
}

// At returns the node for id and panics on an invalid handle.
func (g *Graph) At(id ID) *Node {
	n, err := g.Node(id)
	if err != nil {
		panic(err)
	}
	return n
}

// AddChild makes child an owned child of parent. The edge is rejected if it
// would give child a second owner, reparent the root, or close a cycle.
func (g *Graph) AddChild(parent, child ID) error {
	p, err := g.Node(parent)
	if err != nil {
		return errors.Wrap(err, "add child: parent")
	}
	c, err := g.Node(child)
	if err != nil {
		return errors.Wrap(err, "add child: child")
	}
	if child == g.root {
		return errors.Wrapf(ErrTopology, "root cannot be a child of %q", p.Name)
	}
	if c.parent != Nil {
		return errors.Wrapf(ErrTopology, "%q already owned by %q", c.Name, g.nodes[c.parent].Name)
	}
	for a := parent; a != Nil; a = g.nodes[a].parent {
		if a == child {
			return errors.Wrapf(ErrTopology, "adding %q under %q creates a cycle", c.Name, p.Name)
		}
	}
	p.children = append(p.children, child)
	c.parent = parent
	return nil
}

// Attach adds n to the arena and makes it a child of parent.
func (g *Graph) Attach(parent ID, n *Node) (ID, error) {
	id := g.Add(n)
	if err := g.AddChild(parent, id); err != nil {
		return Nil, err
	}
	return id, nil
}

// Walk visits every node reachable from the root in pre-order, children in
// insertion order. Returning false from fn skips that node's subtree.
// Walk returns the number of nodes visited.
func (g *Graph) Walk(fn func(n *Node, depth int) bool) int {
	return g.WalkFrom(g.root, fn)
}

// WalkFrom is Walk starting at id.
func (g *Graph) WalkFrom(id ID, fn func(n *Node, depth int) bool) int {
	type frame struct {
		id    ID
		depth int
	}
	if id < 0 || int(id) >= len(g.nodes) {
		return 0
	}
	visited := 0
	stack := []frame{{id, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := g.nodes[f.id]
		visited++
		if !fn(n, f.depth) {
			continue
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n.children[i], f.depth + 1})
		}
	}
	return visited
}

// Update recomputes every world matrix top-down from parentWorld.
// It must run before Draw whenever node state has changed.
func (g *Graph) Update(parentWorld mgl64.Mat4) {
	g.UpdateFrom(g.root, parentWorld)
}

// UpdateFrom recomputes world matrices for the subtree at id.
func (g *Graph) UpdateFrom(id ID, parentWorld mgl64.Mat4) {
	type frame struct {
		id     ID
		parent mgl64.Mat4
	}
	if id < 0 || int(id) >= len(g.nodes) {
		return
	}
	stack := []frame{{id, parentWorld}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := g.nodes[f.id]
		n.world = f.parent.Mul4(n.JointMatrix())
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n.children[i], n.world})
		}
	}
}

// Draw submits every reachable node with geometry to r in traversal order
// and returns the number of nodes visited.
func (g *Graph) Draw(r Renderer) int {
	return g.Walk(func(n *Node, _ int) bool {
		if n.Shape.Drawable() {
			r.Submit(DrawCall{
				ID:    n.id,
				Name:  n.Name,
				Shape: n.Shape,
				Model: n.Model(),
				Color: n.color,
			})
		}
		return true
	})
}
