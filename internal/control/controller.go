// Package control implements the selection and pose controller: the
// multi-part selection set, the active rotation axis shared by that
// selection, and the pose cursor. Every mutating operation propagates world
// matrices before it returns, so the next draw always sees its effect.
package control

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"linkage-renderer/internal/scene"
)

// DefaultStep is the angle change, in degrees, of one increase or decrease.
const DefaultStep = 2.5

// Highlight is the selection color for each active axis.
var Highlight = [3]scene.Color{scene.Red, scene.Green, scene.Blue}

// Mode is the controller state.
type Mode int

const (
	Idle Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "idle"
}

// Controller owns the editing state for one assembly. It is not safe for
// concurrent use; the goroutine that draws the graph must also drive this.
type Controller struct {
	graph  *scene.Graph
	reg    *scene.Registry
	poses  scene.PoseTable
	member map[scene.ID]bool

	selected []scene.ID
	axis     scene.Axis
	cursor   int

	// Step is the magnitude of ApplyDelta in degrees.
	Step float64
}

// New creates a controller over graph. Every pose must cover the registry.
func New(graph *scene.Graph, reg *scene.Registry, poses scene.PoseTable) (*Controller, error) {
	if err := poses.Validate(reg.Len()); err != nil {
		return nil, err
	}
	c := &Controller{
		graph:  graph,
		reg:    reg,
		poses:  poses,
		member: make(map[scene.ID]bool, reg.Len()),
		cursor: -1,
		Step:   DefaultStep,
	}
	for i, id := range reg.Order() {
		if _, err := graph.Node(id); err != nil {
			return nil, errors.Wrapf(err, "registry entry %d (%s)", i, reg.Name(i))
		}
		c.member[id] = true
	}
	return c, nil
}

// Mode reports Editing while anything is selected.
func (c *Controller) Mode() Mode {
	if len(c.selected) > 0 {
		return Editing
	}
	return Idle
}

// Axis returns the active rotation axis.
func (c *Controller) Axis() scene.Axis { return c.axis }

// Selected returns the selection in the order parts were added.
func (c *Controller) Selected() []scene.ID {
	return append([]scene.ID(nil), c.selected...)
}

// IsSelected reports whether id is in the selection.
func (c *Controller) IsSelected(id scene.ID) bool {
	return c.indexOf(id) >= 0
}

// PoseCursor returns the index of the last applied pose, or -1.
func (c *Controller) PoseCursor() int { return c.cursor }

// Poses returns the pose table.
func (c *Controller) Poses() scene.PoseTable { return c.poses }

func (c *Controller) indexOf(id scene.ID) int {
	for i, s := range c.selected {
		if s == id {
			return i
		}
	}
	return -1
}

// ToggleSelect adds id to the selection and paints it with the active axis
// color, or removes it and restores its default color.
func (c *Controller) ToggleSelect(id scene.ID) error {
	if !c.member[id] {
		return errors.Wrapf(scene.ErrUnknownComponent, "id %d", id)
	}
	n := c.graph.At(id)
	if i := c.indexOf(id); i >= 0 {
		c.selected = append(c.selected[:i], c.selected[i+1:]...)
		n.Reset(scene.ResetColor)
	} else {
		c.selected = append(c.selected, id)
		n.SetCurrentColor(Highlight[c.axis])
	}
	c.refresh()
	return nil
}

// ToggleSelectName is ToggleSelect by registered name.
func (c *Controller) ToggleSelectName(name string) error {
	id, err := c.reg.Lookup(name)
	if err != nil {
		return err
	}
	return c.ToggleSelect(id)
}

// CycleAxis moves the active axis by dir (positive or negative) modulo 3 and
// repaints the selection. Zero does nothing.
func (c *Controller) CycleAxis(dir int) {
	if dir == 0 {
		return
	}
	step := 1
	if dir < 0 {
		step = 2
	}
	c.axis = scene.Axis((int(c.axis) + step) % 3)
	for _, id := range c.selected {
		c.graph.At(id).SetCurrentColor(Highlight[c.axis])
	}
	c.refresh()
}

// ApplyDelta rotates every selected part by sign*Step on the active axis.
// Mirrored parts turn the opposite way.
func (c *Controller) ApplyDelta(sign int) {
	if sign == 0 || len(c.selected) == 0 {
		return
	}
	delta := c.Step
	if sign < 0 {
		delta = -delta
	}
	for _, id := range c.selected {
		n := c.graph.At(id)
		if n.Mirrored {
			n.Rotate(-delta, c.axis)
		} else {
			n.Rotate(delta, c.axis)
		}
	}
	c.refresh()
}

// ClearSelection restores every selected part's color, empties the
// selection and returns the active axis to U.
func (c *Controller) ClearSelection() {
	for _, id := range c.selected {
		c.graph.At(id).Reset(scene.ResetColor)
	}
	c.selected = c.selected[:0]
	c.axis = scene.AxisU
	c.refresh()
}

// ApplyPose sets every registered part to pose index, taken modulo the table
// length. A malformed pose leaves the graph untouched.
func (c *Controller) ApplyPose(index int) error {
	if len(c.poses) == 0 {
		return errors.Wrap(scene.ErrMalformedPose, "empty pose table")
	}
	i := index % len(c.poses)
	if i < 0 {
		i += len(c.poses)
	}
	if err := scene.ApplyPose(c.graph, c.reg.Order(), c.poses[i].Angles); err != nil {
		return errors.Wrapf(err, "pose %d (%s)", i, c.poses[i].Name)
	}
	c.cursor = i
	c.refresh()
	return nil
}

// NextPose applies the pose after the current cursor.
func (c *Controller) NextPose() error {
	return c.ApplyPose(c.cursor + 1)
}

// ResetAll restores every node's color and angles, clears the selection,
// and rewinds the axis and pose cursor.
func (c *Controller) ResetAll() {
	c.graph.Walk(func(n *scene.Node, _ int) bool {
		n.Reset()
		return true
	})
	c.selected = c.selected[:0]
	c.axis = scene.AxisU
	c.cursor = -1
	c.refresh()
}

func (c *Controller) refresh() {
	c.graph.Update(mgl64.Ident4())
}
