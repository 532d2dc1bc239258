package quant

// Quantize maps every pixel of r to its nearest palette entry and returns
// the result as a new raster with the same geometry; r itself is not
// modified. Pixels are independent here, so the output does not depend on
// any scan order.
func Quantize(r *Raster, p Palette) (*Raster, error) {
	if len(p) == 0 {
		return nil, ErrEmptyPalette
	}
	out := &Raster{
		Pix:    make([]uint8, len(r.Pix)),
		Stride: r.Stride,
		Rect:   r.Rect,
	}
	b := r.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetRGB(x, y, p.nearest(r.RGBAt(x, y)))
		}
	}
	return out, nil
}
