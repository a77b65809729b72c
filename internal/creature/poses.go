package creature

import "linkage-renderer/internal/scene"

// Poses returns a fresh copy of the crab's pose table. Each row follows the
// canonical part order returned by Names.
func Poses() scene.PoseTable {
	out := make(scene.PoseTable, len(poseTable))
	for i, p := range poseTable {
		out[i] = scene.NamedPose{Name: p.Name, Angles: append(scene.Pose(nil), p.Angles...)}
	}
	return out
}

// Rows: body, left claw (5), right claw (5), stalks and eyes (4), left legs
// then feet (6), right legs then feet (6).
var poseTable = scene.PoseTable{
	{Name: "wave", Angles: scene.Pose{
		{0, 0, 0},
		{-30, 0, 0}, {-15, 0, 0}, {-15, 0, 0}, {0, 0, 0}, {0, 0, 0},
		{-30, 0, 0}, {-15, 0, 0}, {-15, 0, 0}, {0, 0, 0}, {0, 0, 0},
		{30, 30, 30}, {0, 0, 0}, {-30, -30, -30}, {0, 0, 0},
		{30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0},
		{-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0},
	}},
	{Name: "grab", Angles: scene.Pose{
		{0, 0, 0},
		{0, 45, 0}, {0, 15, 0}, {0, 15, 0}, {15, 0, 0}, {-15, 0, 0},
		{0, -45, 0}, {0, -15, 0}, {0, -15, 0}, {-15, 0, 0}, {15, 0, 0},
		{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},
		{30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0},
		{-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0},
	}},
	{Name: "jump", Angles: scene.Pose{
		{0, 0, 0},
		{-30, 0, 0}, {-15, 0, 0}, {-15, 0, 0}, {0, 0, 0}, {0, 0, 0},
		{30, 0, 0}, {15, 0, 0}, {15, 0, 0}, {0, 0, 0}, {0, 0, 0},
		{-30, -30, -30}, {0, 0, 0}, {30, 30, 30}, {0, 0, 0},
		{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0},
		{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0},
	}},
	{Name: "both-down", Angles: scene.Pose{
		{0, 0, 0},
		{30, 0, 0}, {15, 0, 0}, {15, 0, 0}, {7, 0, 0}, {-7, 0, 0},
		{-30, 0, 0}, {-15, 0, 0}, {-15, 0, 0}, {-7, 0, 0}, {7, 0, 0},
		{30, 0, 30}, {0, 0, 0}, {-30, 0, -30}, {0, 0, 0},
		{30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0},
		{-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0},
	}},
	{Name: "up-down-down", Angles: scene.Pose{
		{0, 0, 0},
		{-30, 0, 0}, {15, 0, 0}, {15, 0, 0}, {15, 0, 0}, {-15, 0, 0},
		{30, 0, 0}, {-15, 0, 0}, {-15, 0, 0}, {-15, 0, 0}, {15, 0, 0},
		{0, -30, 0}, {0, 0, 0}, {0, 30, 0}, {0, 0, 0},
		{30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0},
		{-30, 0, 0}, {-30, 0, 0}, {-30, 0, 0}, {30, 0, 0}, {30, 0, 0}, {30, 0, 0},
	}},
}
