package control

import (
	"fmt"

	"github.com/pkg/errors"

	"linkage-renderer/internal/scene"
)

// Op enumerates the controller commands.
type Op int

const (
	// OpToggle toggles Command.ID.
	OpToggle Op = iota
	OpAxisNext
	OpAxisPrev
	OpIncrease
	OpDecrease
	OpClear
	// OpPose applies Command.Index.
	OpPose
	OpNextPose
	OpResetAll
)

var opNames = [...]string{"toggle", "axis-next", "axis-prev", "increase", "decrease", "clear", "pose", "next-pose", "reset-all"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opNames[o]
}

// Command is one discrete request to the controller.
type Command struct {
	Op    Op
	ID    scene.ID
	Index int
}

// Apply runs cmd. On return the graph has been updated.
func (c *Controller) Apply(cmd Command) error {
	switch cmd.Op {
	case OpToggle:
		return c.ToggleSelect(cmd.ID)
	case OpAxisNext:
		c.CycleAxis(1)
	case OpAxisPrev:
		c.CycleAxis(-1)
	case OpIncrease:
		c.ApplyDelta(1)
	case OpDecrease:
		c.ApplyDelta(-1)
	case OpClear:
		c.ClearSelection()
	case OpPose:
		return c.ApplyPose(cmd.Index)
	case OpNextPose:
		return c.NextPose()
	case OpResetAll:
		c.ResetAll()
	default:
		return errors.Errorf("unknown command %v", cmd.Op)
	}
	return nil
}

// State is a read-only snapshot of the controller for display.
type State struct {
	Mode     string   `json:"mode"`
	Axis     string   `json:"axis"`
	Selected []string `json:"selected"`
	Pose     int      `json:"pose"`
	PoseName string   `json:"poseName,omitempty"`
}

// Snapshot captures the current state with part names resolved.
func (c *Controller) Snapshot() State {
	s := State{
		Mode:     c.Mode().String(),
		Axis:     c.axis.String(),
		Selected: make([]string, 0, len(c.selected)),
		Pose:     c.cursor,
	}
	for _, id := range c.selected {
		s.Selected = append(s.Selected, c.graph.At(id).Name)
	}
	if c.cursor >= 0 {
		s.PoseName = c.poses[c.cursor].Name
	}
	return s
}
