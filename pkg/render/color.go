package render

import (
	"image/color"
	"math"
)

// Color is a packed 24-bit color stored in bitmap byte order: blue, green,
// red.
type Color [3]byte

// Colors for convenience
var (
	Black = EncodeColor(0, 0, 0)
	White = EncodeColor(1, 1, 1)
)

// EncodeColor packs normalized channels into a Color. Each channel is scaled
// by 255 and truncated. Inputs are not clamped: callers must keep them in
// [0, 1] or accept wrapped bytes. NaN encodes as 0.
func EncodeColor(r, g, b float64) Color {
	return Color{channel(b), channel(g), channel(r)}
}

func channel(v float64) byte {
	if math.IsNaN(v) {
		return 0
	}
	return byte(int(v * 255))
}

// R returns the red byte.
func (c Color) R() uint8 { return c[2] }

// G returns the green byte.
func (c Color) G() uint8 { return c[1] }

// B returns the blue byte.
func (c Color) B() uint8 { return c[0] }

// Sum returns R+G+B, a cheap brightness measure.
func (c Color) Sum() int {
	return int(c[0]) + int(c[1]) + int(c[2])
}

// ToRGBA converts the color to an opaque color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 255}
}

// RGB creates a color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{b, g, r}
}

// ColorFromRGBA converts any color.Color, dropping alpha.
func ColorFromRGBA(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	// RGBA returns 16-bit values, scale to 8-bit
	return Color{uint8(b >> 8), uint8(g >> 8), uint8(r >> 8)}
}
