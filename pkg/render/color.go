package render

import (
	"image/color"
	"math"
)

// Color is the 8-bit color stored in a Framebuffer.
type Color = color.RGBA

// Common colors.
var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// Hex creates an opaque color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

// ColorF is a linear RGB color with unbounded float channels. Shading works in
// ColorF and converts to Color only when writing a pixel.
type ColorF struct {
	R, G, B float64
}

// Add returns the channel-wise sum.
func (c ColorF) Add(o ColorF) ColorF {
	return ColorF{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the channel-wise product.
func (c ColorF) Mul(o ColorF) ColorF {
	return ColorF{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale multiplies every channel by s.
func (c ColorF) Scale(s float64) ColorF {
	return ColorF{c.R * s, c.G * s, c.B * s}
}

// AddScalar adds s to every channel.
func (c ColorF) AddScalar(s float64) ColorF {
	return ColorF{c.R + s, c.G + s, c.B + s}
}

// Max returns the largest channel.
func (c ColorF) Max() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// MaxToOne scales all channels down by the largest one when it exceeds 1,
// keeping the ratios between channels and therefore the hue.
func (c ColorF) MaxToOne() ColorF {
	if m := c.Max(); m > 1 {
		return ColorF{c.R / m, c.G / m, c.B / m}
	}
	return c
}

// RGBA converts to an opaque 8-bit color. Channels are expected in [0, 1];
// values outside are clamped.
func (c ColorF) RGBA() Color {
	return Color{toByte(c.R), toByte(c.G), toByte(c.B), 255}
}

func toByte(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v * 255)
	}
}

// ColorFFrom converts an 8-bit color to normalized RGB.
func ColorFFrom(c Color) ColorF {
	return ColorF{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}
