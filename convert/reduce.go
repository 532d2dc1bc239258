package convert

import (
	"fmt"
	"image"

	"epdconv/quant"

	"github.com/makeworld-the-better-one/dither/v2"
)

// diffusionMatrices maps the --algo names onto the library kernels. The
// default "diffuse" is not here; that one is the in-house kernel in
// package quant.
var diffusionMatrices = map[string]dither.ErrorDiffusionMatrix{
	"floyd-steinberg":       dither.FloydSteinberg,
	"false-floyd-steinberg": dither.FalseFloydSteinberg,
	"jarvis-judice-ninke":   dither.JarvisJudiceNinke,
	"atkinson":              dither.Atkinson,
	"stucki":                dither.Stucki,
	"burkes":                dither.Burkes,
	"sierra":                dither.Sierra,
	"sierra-lite":           dither.SierraLite,
}

// reduce maps every pixel of r onto pal: a flat nearest-color pass by
// default, the in-house error diffusion with --dither, or one of the
// library kernels with --dither --algo=<name>. Flat quantization leaves r
// untouched; the diffusion paths may reuse its storage.
func (c *CLICmd) reduce(r *quant.Raster, pal quant.Palette) (image.Image, error) {
	if !c.Dither {
		out, err := quant.Quantize(r, pal)
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	if c.Algo == "diffuse" {
		if err := quant.Diffuse(r, pal); err != nil {
			return nil, err
		}
		return r, nil
	}

	m, ok := diffusionMatrices[c.Algo]
	if !ok {
		return nil, fmt.Errorf("unknown dithering algorithm: %s", c.Algo)
	}
	d := dither.NewDitherer(pal.ColorPalette())
	d.Serpentine = c.Serpentine
	d.Matrix = dither.ErrorDiffusionStrength(m, float32(c.Strength))
	return d.Dither(r), nil
}

// toPaletted indexes img into pal for the indexed-color encoders. Every
// pixel coming out of reduce is already a palette color, so the lookup is
// exact.
func toPaletted(img image.Image, pal quant.Palette) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal.ColorPalette())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := quant.FromColor(img.At(b.Min.X+x, b.Min.Y+y))
			out.SetColorIndex(x, y, uint8(pal.Index(c)))
		}
	}
	return out
}
