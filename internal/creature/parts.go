package creature

import (
	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/shape"
)

// Palette sampled from the reference crab.
var (
	BodyColor   = scene.RGB255(172, 160, 113)
	LegColor    = scene.RGB255(185, 154, 74)
	PincerColor = scene.RGB255(221, 210, 226)
	StalkColor  = scene.RGB255(182, 170, 123)
	EyeColor    = scene.Black
)

type part struct {
	name     string
	parent   string // empty: attached to the model container
	kind     shape.Kind
	limb     bool
	pos      [3]float64
	scale    [3]float64
	color    scene.Color
	ranges   [3]scene.Range
	mirrored bool
}

var free = [3]scene.Range{scene.Unbounded, scene.Unbounded, scene.Unbounded}

func rng(umin, umax, vmin, vmax, wmin, wmax float64) [3]scene.Range {
	return [3]scene.Range{{Min: umin, Max: umax}, {Min: vmin, Max: vmax}, {Min: wmin, Max: wmax}}
}

// parts lists the crab in canonical order. Parents always precede children.
// Suffix 1 is the left side, suffix 2 the right; right-side parts carry
// negated scale and offsets so their geometry mirrors across the body.
var parts = []part{
	{name: "body", kind: shape.Sphere, pos: [3]float64{0, 0, 0}, scale: [3]float64{1, 1, 2}, color: BodyColor, ranges: free},

	{name: "arm1", parent: "body", kind: shape.Cylinder, limb: true, pos: [3]float64{0, 0, 1.90}, scale: [3]float64{0.1, 0.1, 0.2}, color: BodyColor, ranges: rng(-30, 30, 0, 45, -15, 15)},
	{name: "backarm1", parent: "arm1", kind: shape.Cylinder, limb: true, pos: [3]float64{0, 0, 0.4}, scale: [3]float64{0.2, 0.2, 0.3}, color: LegColor, ranges: rng(-15, 15, 0, 15, -15, 15)},
	{name: "forearm1", parent: "backarm1", kind: shape.Cylinder, limb: true, pos: [3]float64{0, 0, 0.5}, scale: [3]float64{0.3, 0.3, 0.4}, color: LegColor, ranges: rng(-15, 15, 0, 15, -15, 15)},
	{name: "top_pincer1", parent: "forearm1", kind: shape.Cone, limb: true, pos: [3]float64{0, 0.15, 0.7}, scale: [3]float64{0.3, 0.1, 0.3}, color: PincerColor, ranges: rng(0, 15, 0, 0, 0, 0)},
	{name: "bot_pincer1", parent: "forearm1", kind: shape.Cone, limb: true, pos: [3]float64{0, -0.15, 0.7}, scale: [3]float64{0.3, 0.1, 0.3}, color: PincerColor, ranges: rng(-15, 0, 0, 0, 0, 0)},

	{name: "arm2", parent: "body", kind: shape.Cylinder, limb: true, pos: [3]float64{0, 0, -1.80}, scale: [3]float64{-0.1, -0.1, -0.2}, color: BodyColor, ranges: rng(-30, 30, -45, 0, -15, 15), mirrored: true},
	{name: "backarm2", parent: "arm2", kind: shape.Cylinder, limb: true, pos: [3]float64{0, 0, -0.4}, scale: [3]float64{-0.2, -0.2, -0.3}, color: LegColor, ranges: rng(-15, 15, -15, 0, -15, 15), mirrored: true},
	{name: "forearm2", parent: "backarm2", kind: shape.Cylinder, limb: true, pos: [3]float64{0, 0, -0.5}, scale: [3]float64{-0.3, -0.3, -0.4}, color: LegColor, ranges: rng(-15, 15, -15, 0, -15, 15), mirrored: true},
	{name: "top_pincer2", parent: "forearm2", kind: shape.Cone, limb: true, pos: [3]float64{0, 0.15, -0.7}, scale: [3]float64{-0.3, -0.1, -0.3}, color: PincerColor, ranges: rng(-15, 0, 0, 0, 0, 0), mirrored: true},
	{name: "bot_pincer2", parent: "forearm2", kind: shape.Cone, limb: true, pos: [3]float64{0, -0.15, -0.7}, scale: [3]float64{-0.3, -0.1, -0.3}, color: PincerColor, ranges: rng(0, 15, 0, 0, 0, 0), mirrored: true},

	{name: "stalk1", parent: "body", kind: shape.Cylinder, limb: true, pos: [3]float64{0, 0.9, 0.75}, scale: [3]float64{0.1, 0.3, 0.1}, color: StalkColor, ranges: rng(-30, 30, -30, 30, -30, 30)},
	{name: "eye1", parent: "stalk1", kind: shape.Sphere, pos: [3]float64{0, 0.3, 0}, scale: [3]float64{0.2, 0.2, 0.2}, color: EyeColor, ranges: free},
	{name: "stalk2", parent: "body", kind: shape.Cylinder, limb: true, pos: [3]float64{0, 0.9, -0.75}, scale: [3]float64{-0.1, -0.3, -0.1}, color: StalkColor, ranges: rng(-30, 30, -30, 30, -30, 30), mirrored: true},
	{name: "eye2", parent: "stalk2", kind: shape.Sphere, pos: [3]float64{0, 0.3, 0}, scale: [3]float64{0.2, 0.2, 0.2}, color: EyeColor, ranges: free, mirrored: true},

	{name: "fleg1", parent: "body", kind: shape.Cylinder, limb: true, pos: [3]float64{0.4, -0.6, 1.3}, scale: [3]float64{0.1, 0.1, 0.4}, color: LegColor, ranges: rng(0, 30, -15, 15, -15, 15)},
	{name: "sleg1", parent: "body", kind: shape.Cylinder, limb: true, pos: [3]float64{0, -0.6, 1.4}, scale: [3]float64{0.1, 0.1, 0.4}, color: LegColor, ranges: rng(0, 30, -15, 15, -15, 15)},
	{name: "tleg1", parent: "body", kind: shape.Cylinder, limb: true, pos: [3]float64{-0.4, -0.6, 1.3}, scale: [3]float64{0.1, 0.1, 0.4}, color: LegColor, ranges: rng(0, 30, -15, 15, -15, 15)},
	{name: "ffoot1", parent: "fleg1", kind: shape.Cone, limb: true, pos: [3]float64{0, 0, 0.7}, scale: [3]float64{0.1, 0.1, 0.3}, color: LegColor, ranges: rng(-30, 30, -15, 15, -15, 15)},
	{name: "sfoot1", parent: "sleg1", kind: shape.Cone, limb: true, pos: [3]float64{0, 0, 0.7}, scale: [3]float64{0.1, 0.1, 0.3}, color: LegColor, ranges: rng(-30, 30, -15, 15, -15, 15)},
	{name: "tfoot1", parent: "tleg1", kind: shape.Cone, limb: true, pos: [3]float64{0, 0, 0.7}, scale: [3]float64{0.1, 0.1, 0.3}, color: LegColor, ranges: rng(-30, 30, -15, 15, -15, 15)},

	{name: "fleg2", parent: "body", kind: shape.Cylinder, limb: true, pos: [3]float64{0.4, -0.6, -1.3}, scale: [3]float64{-0.1, -0.1, -0.4}, color: LegColor, ranges: rng(-30, 0, -15, 15, -15, 15), mirrored: true},
	{name: "sleg2", parent: "body", kind: shape.Cylinder, limb: true, pos: [3]float64{0, -0.6, -1.4}, scale: [3]float64{-0.1, -0.1, -0.4}, color: LegColor, ranges: rng(-30, 0, -15, 15, -15, 15), mirrored: true},
	{name: "tleg2", parent: "body", kind: shape.Cylinder, limb: true, pos: [3]float64{-0.4, -0.6, -1.3}, scale: [3]float64{-0.1, -0.1, -0.4}, color: LegColor, ranges: rng(-30, 0, -15, 15, -15, 15), mirrored: true},
	{name: "ffoot2", parent: "fleg2", kind: shape.Cone, limb: true, pos: [3]float64{0, 0, -0.7}, scale: [3]float64{-0.1, -0.1, -0.3}, color: LegColor, ranges: rng(-30, 30, -15, 15, -15, 15), mirrored: true},
	{name: "sfoot2", parent: "sleg2", kind: shape.Cone, limb: true, pos: [3]float64{0, 0, -0.7}, scale: [3]float64{-0.1, -0.1, -0.3}, color: LegColor, ranges: rng(-30, 30, -15, 15, -15, 15), mirrored: true},
	{name: "tfoot2", parent: "tleg2", kind: shape.Cone, limb: true, pos: [3]float64{0, 0, -0.7}, scale: [3]float64{-0.1, -0.1, -0.3}, color: LegColor, ranges: rng(-30, 30, -15, 15, -15, 15), mirrored: true},
}
