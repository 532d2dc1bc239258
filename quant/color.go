// Package quant reduces RGB rasters to small fixed palettes. It implements
// the three reduction primitives used by the converter: palette blending,
// flat nearest-color quantization, and in-place error diffusion with a
// six-tap kernel.
package quant

import (
	"image/color"
	"math"
)

// Color is an 8-bit RGB triple, the only pixel type the reduction routines
// operate on. Alpha does not exist at this layer.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// ColorModel converts arbitrary colors to Color, discarding alpha.
var ColorModel color.Model = color.ModelFunc(colorModel)

func colorModel(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return Color{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// FromColor is the typed variant of ColorModel.Convert.
func FromColor(c color.Color) Color {
	return colorModel(c).(Color)
}

// clamp8 saturates v to [0, 255]. Values in between round half away from
// zero; that rule is part of the output contract of Blend and Diffuse.
func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
