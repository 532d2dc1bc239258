package convert

import (
	"image"
	"image/color"
	"log/slog"

	"epdconv/quant"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
)

// Images with a mean channel brightness below this pad onto black instead
// of white.
const darkThreshold = 100

// targetSize returns the panel dimensions for one image. The flags name
// the landscape layout; portrait swaps them, and auto follows the source
// aspect, counting squares as landscape.
func targetSize(orientation string, width, height int, src image.Rectangle) (int, int) {
	portrait := orientation == "portrait"
	if orientation == "auto" {
		portrait = src.Dx() < src.Dy()
	}
	if portrait {
		return height, width
	}
	return width, height
}

// resizeToPanel scales img to exactly width by height. Fit mode crops the
// overflowing dimension; pad mode letterboxes onto a solid background.
func (c *CLICmd) resizeToPanel(logger *slog.Logger, img image.Image, width, height int) image.Image {
	if b := img.Bounds(); b.Dx() == width && b.Dy() == height {
		return img
	}

	logger.Debug("resizing", "width", width, "height", height, "mode", c.Mode)
	if c.Mode == "fit" {
		return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	}

	bg := c.padBackground(logger, img)
	canvas := imaging.New(width, height, color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff})
	return imaging.PasteCenter(canvas, imaging.Fit(img, width, height, imaging.Lanczos))
}

// padBackground picks the letterbox color: the flag override when given,
// otherwise white, or black for dark images.
func (c *CLICmd) padBackground(logger *slog.Logger, img image.Image) quant.Color {
	if c.padColorSet {
		return c.padColor
	}

	brightness := meanBrightness(img)
	dark := brightness < darkThreshold
	logger.Debug("brightness", "mean", brightness, "dark", dark)
	if dark {
		return quant.Color{}
	}
	return quant.Color{R: 255, G: 255, B: 255}
}

// meanBrightness averages the R, G and B histogram means.
func meanBrightness(img image.Image) float64 {
	h := histogram.NewRGBAHistogram(img)
	return (histMean(h.R) + histMean(h.G) + histMean(h.B)) / 3
}

func histMean(h histogram.Histogram) float64 {
	var sum, total int
	for value, count := range h.Bins {
		sum += value * count
		total += count
	}
	if total == 0 {
		return 0
	}
	return float64(sum) / float64(total)
}

// blurImage applies a Gaussian pre-blur with the given sigma.
func blurImage(img image.Image, sigma float64) image.Image {
	g := gift.New(gift.GaussianBlur(float32(sigma)))
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}
