package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Color is an sRGB triple in [0, 1].
type Color [3]float64

// RGB255 builds a Color from 8-bit channels.
func RGB255(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// Common colors.
var (
	Black     = Color{0, 0, 0}
	White     = Color{1, 1, 1}
	Red       = Color{1, 0, 0}
	Green     = Color{0, 1, 0}
	Blue      = Color{0, 0, 1}
	BlueGreen = Color{0, 0.5, 0.5}
)

// NRGBA converts to an opaque 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: 255}
}

// Float4 returns the color with alpha 1, as glTF base colors expect.
func (c Color) Float4() [4]float32 {
	return [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), 1}
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// ParseColor reads #rrggbb or rrggbb.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, errors.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(err, "color %q", s)
	}
	return RGB255(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
