package quant

import (
	"image"
	"image/color"
	"image/draw"
)

// Raster is a mutable RGB pixel grid over flat owned storage. It implements
// image.Image and draw.Image, so the standard codecs and the filter
// libraries can read from and draw into it directly.
type Raster struct {
	// Pix holds the pixels in R, G, B order. The pixel at (x, y) starts at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent
	// pixels.
	Stride int
	// Rect is the raster's bounds.
	Rect image.Rectangle
}

// NewRaster returns a zeroed (black) raster with the given dimensions and
// its origin at (0, 0).
func NewRaster(w, h int) *Raster {
	return &Raster{
		Pix:    make([]uint8, 3*w*h),
		Stride: 3 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// FromImage copies img into a fresh raster, normalizing the origin to
// (0, 0) and discarding alpha.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r.SetRGB(x, y, FromColor(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return r
}

// Clone returns a raster with the same geometry and a copy of the pixels.
func (r *Raster) Clone() *Raster {
	out := &Raster{
		Pix:    make([]uint8, len(r.Pix)),
		Stride: r.Stride,
		Rect:   r.Rect,
	}
	copy(out.Pix, r.Pix)
	return out
}

func (r *Raster) ColorModel() color.Model { return ColorModel }

func (r *Raster) Bounds() image.Rectangle { return r.Rect }

func (r *Raster) At(x, y int) color.Color {
	return r.RGBAt(x, y)
}

// RGBAt is the typed variant of At. Reads outside the bounds return the
// zero Color.
func (r *Raster) RGBAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}).In(r.Rect) {
		return Color{}
	}
	i := r.PixOffset(x, y)
	return Color{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2]}
}

func (r *Raster) Set(x, y int, c color.Color) {
	r.SetRGB(x, y, FromColor(c))
}

// SetRGB writes c at (x, y). Writes outside the bounds are dropped.
func (r *Raster) SetRGB(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}).In(r.Rect) {
		return
	}
	i := r.PixOffset(x, y)
	r.Pix[i] = c.R
	r.Pix[i+1] = c.G
	r.Pix[i+2] = c.B
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (r *Raster) PixOffset(x, y int) int {
	return (y-r.Rect.Min.Y)*r.Stride + (x-r.Rect.Min.X)*3
}

var (
	_ image.Image = (*Raster)(nil)
	_ draw.Image  = (*Raster)(nil)
)
