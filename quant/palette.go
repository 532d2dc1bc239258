package quant

import (
	"errors"
	"image/color"
	"math"
)

// Errors reported by the reduction routines. All of them indicate a broken
// caller contract; nothing in this package fails for any other reason.
var (
	// ErrEmptyPalette is returned when an operation needs at least one
	// palette entry and got none.
	ErrEmptyPalette = errors.New("quant: empty palette")
	// ErrPaletteLength is returned by Blend when the two palettes do not
	// pair up entry for entry.
	ErrPaletteLength = errors.New("quant: palette length mismatch")
)

// Palette is an ordered list of colors. The order is observable: ties in
// the nearest-color search go to the earliest entry, so reordering a
// palette can change which of two equidistant entries wins.
type Palette []Color

// Index returns the position of the entry closest to c, measured by
// squared distance in RGB space. The first entry at the minimum distance
// wins. An empty palette has no closest entry; Index returns -1.
func (p Palette) Index(c Color) int {
	best, bestDist := -1, math.MaxInt
	for i, v := range p {
		d := dist2(c, v)
		if d < bestDist {
			if d == 0 {
				return i
			}
			best, bestDist = i, d
		}
	}
	return best
}

// Nearest returns the entry closest to c, resolving ties in favor of the
// earliest entry.
func (p Palette) Nearest(c Color) (Color, error) {
	if len(p) == 0 {
		return Color{}, ErrEmptyPalette
	}
	return p[p.Index(c)], nil
}

// nearest is the unchecked hot-path variant for palettes already known to
// be non-empty.
func (p Palette) nearest(c Color) Color {
	return p[p.Index(c)]
}

// ColorPalette converts p for use with the standard image encoders and the
// filter libraries.
func (p Palette) ColorPalette() color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	return out
}

// FromColors builds a Palette from standard colors, discarding alpha.
func FromColors(cols []color.Color) Palette {
	out := make(Palette, len(cols))
	for i, c := range cols {
		out[i] = FromColor(c)
	}
	return out
}

func dist2(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
