// Package palette provides the built-in e-paper palettes and a RIFF PAL
// codec for loading and saving custom ones.
package palette

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"epdconv/quant"
)

// The built-in palettes. Seven-color sets follow the panel ink order:
// black, white, green, blue, red, yellow, orange.
var (
	// BW is the hard black and white pair.
	BW = quant.Palette{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}

	// BWSoft narrows the pair to 16 and 235.
	BWSoft = quant.Palette{{R: 16, G: 16, B: 16}, {R: 235, G: 235, B: 235}}

	// Vivid holds the nominal primaries the panel vendor names.
	Vivid = quant.Palette{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 255, G: 0, B: 0},
		{R: 255, G: 255, B: 0},
		{R: 255, G: 128, B: 0},
	}

	// Saturated is the datasheet ink set with hard black and white
	// endpoints. It is the blend counterpart to Vivid.
	Saturated = quant.Palette{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 45, G: 101, B: 67},
		{R: 63, G: 62, B: 105},
		{R: 144, G: 61, B: 63},
		{R: 167, G: 161, B: 72},
		{R: 157, G: 83, B: 65},
	}

	// Datasheet is the ink set exactly as the panel datasheet lists it.
	Datasheet = quant.Palette{
		{R: 50, G: 39, B: 56},
		{R: 173, G: 173, B: 173},
		{R: 45, G: 101, B: 67},
		{R: 63, G: 62, B: 105},
		{R: 144, G: 61, B: 63},
		{R: 167, G: 161, B: 72},
		{R: 157, G: 83, B: 65},
	}

	// Photo was sampled from a photograph of a lit panel.
	Photo = quant.Palette{
		{R: 42, G: 45, B: 63},
		{R: 227, G: 227, B: 227},
		{R: 77, G: 111, B: 86},
		{R: 57, G: 69, B: 107},
		{R: 168, G: 85, B: 81},
		{R: 222, G: 206, B: 95},
		{R: 195, G: 104, B: 86},
	}

	// Classic is the older hand-tuned ink set.
	Classic = quant.Palette{
		{R: 57, G: 48, B: 57},
		{R: 255, G: 255, B: 255},
		{R: 58, G: 91, B: 70},
		{R: 61, G: 59, B: 94},
		{R: 156, G: 72, B: 75},
		{R: 208, G: 190, B: 71},
		{R: 177, G: 106, B: 73},
	}

	// Tuned25 adjusts the Classic blue for blends around 25% saturation.
	Tuned25 = quant.Palette{
		{R: 57, G: 48, B: 57},
		{R: 255, G: 255, B: 255},
		{R: 58, G: 91, B: 70},
		{R: 25, G: 70, B: 100},
		{R: 156, G: 72, B: 75},
		{R: 208, G: 190, B: 71},
		{R: 177, G: 106, B: 73},
	}

	// Tuned50 adjusts the Classic blue for blends around 50% saturation.
	Tuned50 = quant.Palette{
		{R: 57, G: 48, B: 57},
		{R: 255, G: 255, B: 255},
		{R: 58, G: 91, B: 70},
		{R: 39, G: 66, B: 98},
		{R: 156, G: 72, B: 75},
		{R: 208, G: 190, B: 71},
		{R: 177, G: 106, B: 73},
	}

	// Measured was read back from a driven panel with a color probe. It is
	// the default palette for error diffusion.
	Measured = quant.Palette{
		{R: 0x0C, G: 0x0C, B: 0x0E},
		{R: 0xD2, G: 0xD2, B: 0xD0},
		{R: 0x1E, G: 0x60, B: 0x1F},
		{R: 0x1D, G: 0x1E, B: 0xAA},
		{R: 0x8C, G: 0x1B, B: 0x1D},
		{R: 0xD3, G: 0xC9, B: 0x3D},
		{R: 0xC1, G: 0x71, B: 0x2A},
	}

	// Gray16 is a 16-step ramp for grayscale panels.
	Gray16 = grayRamp(16)
)

var named = map[string]quant.Palette{
	"bw":        BW,
	"bw-soft":   BWSoft,
	"vivid":     Vivid,
	"saturated": Saturated,
	"datasheet": Datasheet,
	"photo":     Photo,
	"classic":   Classic,
	"tuned25":   Tuned25,
	"tuned50":   Tuned50,
	"measured":  Measured,
	"gray16":    Gray16,
}

// Names returns the built-in palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadPalette resolves name against the built-in registry first, then
// falls back to reading it as a RIFF PAL file. Files holding several
// palettes contribute their first one.
func LoadPalette(name string) (quant.Palette, error) {
	if pal, ok := named[name]; ok {
		return pal, nil
	}

	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("unknown palette %q (built-ins: %s)", name, strings.Join(Names(), ", "))
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette file: %w", err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}
	if len(pals) == 0 {
		return nil, fmt.Errorf("no palettes in %q", name)
	}
	return pals[0], nil
}

func grayRamp(steps int) quant.Palette {
	out := make(quant.Palette, steps)
	for i := range out {
		y := uint8(i * 255 / (steps - 1))
		out[i] = quant.Color{R: y, G: y, B: y}
	}
	return out
}
