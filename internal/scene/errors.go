package scene

import "github.com/pkg/errors"

var (
	// ErrUnknownNode is returned for a handle that does not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")
	// ErrTopology is returned when an edge would break the strict tree shape.
	ErrTopology = errors.New("invalid topology")
	// ErrUnknownComponent is returned for an identifier missing from the registry.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrDuplicateName is returned when a registry name is used twice.
	ErrDuplicateName = errors.New("duplicate component name")
	// ErrMalformedPose is returned when a pose does not cover the canonical sequence.
	ErrMalformedPose = errors.New("malformed pose")
)
