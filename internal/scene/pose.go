package scene

import "github.com/pkg/errors"

// Pose holds one U, V, W angle triple (degrees) per component, in the
// registry's canonical order.
type Pose [][3]float64

// NamedPose is a pose with a display name.
type NamedPose struct {
	Name   string
	Angles Pose
}

// PoseTable is the ordered list of recallable poses.
type PoseTable []NamedPose

// Validate checks that every pose covers exactly n components.
func (t PoseTable) Validate(n int) error {
	for i, p := range t {
		if len(p.Angles) != n {
			return errors.Wrapf(ErrMalformedPose, "pose %d (%s) has %d entries, want %d", i, p.Name, len(p.Angles), n)
		}
	}
	return nil
}

// ApplyPose sets all three angles of every node in order from p. The pose is
// checked against order before any node is touched. Angles are clamped to
// each node's ranges like any other absolute set.
func ApplyPose(g *Graph, order []ID, p Pose) error {
	if len(p) != len(order) {
		return errors.Wrapf(ErrMalformedPose, "%d entries for %d components", len(p), len(order))
	}
	nodes := make([]*Node, len(order))
	for i, id := range order {
		n, err := g.Node(id)
		if err != nil {
			return errors.Wrapf(err, "pose entry %d", i)
		}
		nodes[i] = n
	}
	for i, n := range nodes {
		for _, axis := range Axes {
			n.SetCurrentAngle(p[i][axis], axis)
		}
	}
	return nil
}

// CapturePose records the current angles of the nodes in order.
func CapturePose(g *Graph, order []ID) (Pose, error) {
	p := make(Pose, len(order))
	for i, id := range order {
		n, err := g.Node(id)
		if err != nil {
			return nil, errors.Wrapf(err, "pose entry %d", i)
		}
		p[i] = n.Angles()
	}
	return p, nil
}
