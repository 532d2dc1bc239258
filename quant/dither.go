package quant

import "image"

// The diffusion kernel. Every tap receives exactly 1/8 of the quantization
// error, so 6/8 of it is redistributed in total and the remaining quarter
// is dropped. Taps only ever point at pixels the scan has not reached yet:
//
//	.  X  1  1
//	1  1  1  .
//	.  1  .  .
//
// X is the current pixel, the left column is x-1.
var diffusionTaps = [6]image.Point{
	{X: 1, Y: 0},
	{X: 2, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: 0, Y: 2},
}

const diffusionDivisor = 8

// Diffuse replaces every pixel of r with its nearest palette entry, in
// place, spreading each pixel's quantization error over the taps above.
// The raster is walked top to bottom, left to right; later pixels see the
// adjustments written by earlier ones, so the scan order is part of the
// output contract and a given raster is never split across goroutines.
//
// The palette is checked before the first write: on error r is untouched.
func Diffuse(r *Raster, p Palette) error {
	if len(p) == 0 {
		return ErrEmptyPalette
	}
	b := r.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			old := r.RGBAt(x, y)
			next := p.nearest(old)
			r.SetRGB(x, y, next)
			for _, tap := range diffusionTaps {
				spreadError(r, x+tap.X, y+tap.Y, old, next)
			}
		}
	}
	return nil
}

// spreadError adds 1/8 of the (old - next) error to the pixel at (x, y),
// on top of whatever value is stored there right now. Taps outside the
// bounds are dropped; channels saturate instead of wrapping.
func spreadError(r *Raster, x, y int, old, next Color) {
	if !(image.Point{X: x, Y: y}).In(r.Rect) {
		return
	}
	cur := r.RGBAt(x, y)
	r.SetRGB(x, y, Color{
		R: clamp8(float64(cur.R) + (float64(old.R)-float64(next.R))/diffusionDivisor),
		G: clamp8(float64(cur.G) + (float64(old.G)-float64(next.G))/diffusionDivisor),
		B: clamp8(float64(cur.B) + (float64(old.B)-float64(next.B))/diffusionDivisor),
	})
}
