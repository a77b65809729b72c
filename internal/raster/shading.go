package raster

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Lamp is a directional light in eye space. Dir points toward the light.
type Lamp struct {
	Dir      mgl64.Vec3
	Diffuse  float64
	Specular float64
}

// Shading is a two-sided Blinn-Phong model evaluated once per face.
type Shading struct {
	Ambient   float64
	Lamps     []Lamp
	Shininess float64
	Exposure  float64
}

// DefaultShading pairs a key lamp from the upper right with a dim headlight,
// so faces turned away from the key still read.
func DefaultShading() Shading {
	return Shading{
		Ambient: 0.35,
		Lamps: []Lamp{
			{Dir: mgl64.Vec3{0.55, 0.7, 0.45}.Normalize(), Diffuse: 0.7, Specular: 0.3},
			{Dir: mgl64.Vec3{0, 0, 1}, Diffuse: 0.35},
		},
		Shininess: 16,
		Exposure:  1,
	}
}

// Intensity returns the light reaching a face with unit normal n, seen along
// the unit vector toEye. The normal is flipped to face the eye.
func (s *Shading) Intensity(n, toEye mgl64.Vec3) float64 {
	if n.Dot(toEye) < 0 {
		n = n.Mul(-1)
	}
	sum := s.Ambient
	for _, l := range s.Lamps {
		d := n.Dot(l.Dir)
		if d <= 0 {
			continue
		}
		sum += d * l.Diffuse
		if h := l.Dir.Add(toEye); l.Specular > 0 && h.Len() > 1e-9 {
			sum += math.Pow(math.Max(0, n.Dot(h.Normalize())), s.Shininess) * l.Specular
		}
	}
	return sum
}

// Shade lights an sRGB face color: decode to linear, scale, ACES tone map,
// re-encode. Alpha passes through.
func (s *Shading) Shade(c color.NRGBA, intensity float64) color.NRGBA {
	k := intensity * s.Exposure
	tone := func(v uint8) uint8 {
		return clamp255(math.Pow(aces(srgbToLinear[v]*k), 1/2.2) * 255)
	}
	return color.NRGBA{R: tone(c.R), G: tone(c.G), B: tone(c.B), A: c.A}
}

var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math.Pow(float64(i)/255, 2.2)
	}
}

// aces is the Narkowicz fit of the ACES filmic curve.
func aces(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
