package gfx

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Color is a compact 8-bit-per-channel RGBA color (4 bytes).
// It is the color representation stored inside packed object records.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromRGBA32 unpacks a 0xRRGGBBAA value into a Color.
// FromRGBA32(c.ToRGBA32()) == c for all 2^32 values.
func FromRGBA32(rgba uint32) Color {
	return Color{
		R: uint8(rgba >> 24),
		G: uint8(rgba >> 16),
		B: uint8(rgba >> 8),
		A: uint8(rgba),
	}
}

// ToRGBA32 packs the color into a 0xRRGGBBAA value.
func (c Color) ToRGBA32() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// Color converts to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ByName resolves an SVG 1.1 color name ("red", "steelblue", ...).
// The boolean reports whether the name is known.
func ByName(name string) (Color, bool) {
	c, ok := colornames.Map[name]
	if !ok {
		return Color{}, false
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, true
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Transparent = RGBA(0, 0, 0, 0)
)
